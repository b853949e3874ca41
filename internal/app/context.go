package app

import (
	"context"

	"github.com/datallboy/ytweb/internal/domain"
	"github.com/datallboy/ytweb/internal/infra/config"
	"github.com/datallboy/ytweb/internal/infra/logger"
	"github.com/datallboy/ytweb/internal/layout"
)

// MediaTool is what the engine and the API need from yt-dlp.
// It allows them to run without importing the ytdlp package.
type MediaTool interface {
	Fetch(ctx context.Context, url string) (*domain.MediaInfo, error)
	Download(ctx context.Context, inv domain.ToolInvocation, onLine func(string)) error
	Update(ctx context.Context) (string, error)
}

// HistoryStore persists finished downloads. GetDownload returns (nil, nil)
// for unknown ids.
type HistoryStore interface {
	SaveDownload(ctx context.Context, rec *domain.DownloadRecord) error
	GetDownload(ctx context.Context, id string) (*domain.DownloadRecord, error)
	ListDownloads(ctx context.Context, limit int) ([]*domain.DownloadRecord, error)
}

// Context hold the core environment and shared resources for ytweb.
// It acts as the "Single Source of Truth" for the application state.
type Context struct {
	Config *config.Config
	Logger *logger.Logger
	Layout *layout.Layout

	Tool  MediaTool
	Store HistoryStore // nil when history is disabled
}

// NewContext initializes the base environment.
func NewContext(cfg *config.Config, log *logger.Logger) *Context {
	return &Context{
		Config: cfg,
		Logger: log,
		Layout: layout.New(cfg.Download.Root),
	}
}
