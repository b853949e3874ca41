package controllers

import (
	"context"

	"github.com/datallboy/ytweb/internal/domain"
)

// JobScheduler is the slice of engine.Manager the controllers use.
type JobScheduler interface {
	Schedule(req domain.DownloadRequest) string
	Query(ctx context.Context, id string) domain.DownloadJob
	Active() int
	Len() int
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type InfoRequest struct {
	URL string `json:"url"`
}

type DownloadResponse struct {
	Success    bool   `json:"success"`
	DownloadID string `json:"download_id"`
}

type UpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Jobs   int    `json:"jobs"`
	Active int    `json:"active"`
}
