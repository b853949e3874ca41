package controllers

import (
	"net/http"
	"strings"

	"github.com/datallboy/ytweb/internal/app"
	"github.com/labstack/echo/v5"
)

type MediaController struct {
	App *app.Context
}

// HandleInfo describes a URL. It blocks on yt-dlp for up to the info timeout.
func (ctrl *MediaController) HandleInfo(c *echo.Context) error {
	var req InfoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "URL is required"})
	}

	info, err := ctrl.App.Tool.Fetch(c.Request().Context(), url)
	if err != nil {
		ctrl.App.Logger.Warn("Info lookup for %s failed: %v", url, err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, info)
}

// HandleUpdate asks yt-dlp to update itself.
func (ctrl *MediaController) HandleUpdate(c *echo.Context) error {
	msg, err := ctrl.App.Tool.Update(c.Request().Context())
	if err != nil {
		ctrl.App.Logger.Error("yt-dlp update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, UpdateResponse{Success: false, Message: err.Error()})
	}

	ctrl.App.Logger.Info("yt-dlp update: %s", msg)
	return c.JSON(http.StatusOK, UpdateResponse{Success: true, Message: msg})
}
