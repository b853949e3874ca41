package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/datallboy/ytweb/internal/app"
	"github.com/datallboy/ytweb/internal/domain"
	"github.com/labstack/echo/v5"
)

type DownloadController struct {
	App  *app.Context
	Jobs JobScheduler
}

// HandleDownload schedules a download and returns before any work starts.
func (ctrl *DownloadController) HandleDownload(c *echo.Context) error {
	var req domain.DownloadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	req.URL = strings.TrimSpace(req.URL)
	req.FormatID = strings.TrimSpace(req.FormatID)
	if req.URL == "" || req.FormatID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required parameters"})
	}

	id := ctrl.Jobs.Schedule(req)
	ctrl.App.Logger.Info("[%s] Queued %s (format %s, convert %t)", id, req.URL, req.FormatID, req.ConvertToMP3)

	return c.JSON(http.StatusOK, DownloadResponse{Success: true, DownloadID: id})
}

// HandleStatus returns the current snapshot, or {"status":"not_found"}.
func (ctrl *DownloadController) HandleStatus(c *echo.Context) error {
	job := ctrl.Jobs.Query(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, job)
}

// HandleHistory lists finished downloads, newest first. Without a store it is
// always an empty list.
func (ctrl *DownloadController) HandleHistory(c *echo.Context) error {
	records := make([]*domain.DownloadRecord, 0)

	if ctrl.App.Store == nil {
		return c.JSON(http.StatusOK, records)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
		}
		limit = n
	}

	list, err := ctrl.App.Store.ListDownloads(c.Request().Context(), limit)
	if err != nil {
		ctrl.App.Logger.Error("Failed to list history: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load history"})
	}
	if list != nil {
		records = list
	}

	return c.JSON(http.StatusOK, records)
}

func (ctrl *DownloadController) HandleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Jobs:   ctrl.Jobs.Len(),
		Active: ctrl.Jobs.Active(),
	})
}
