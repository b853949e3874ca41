package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/datallboy/ytweb/internal/api"
	"github.com/datallboy/ytweb/internal/engine"
	"github.com/datallboy/ytweb/internal/platform"
	"github.com/labstack/echo/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx)
		},
	}
}

func runServe(parent context.Context, cc *commandContext) error {
	appCtx, cleanup, err := cc.bootstrap(true)
	defer cleanup()
	if err != nil {
		return err
	}
	cfg := appCtx.Config
	log := appCtx.Logger

	report, err := platform.ValidateDependencies(platform.Dependencies{
		Tool:   cfg.Tool.Binary,
		FFmpeg: cfg.Tool.FFmpegBinary,
	})
	if err != nil {
		return err
	}
	if !report.FFmpegAvailable() {
		log.Warn("ffmpeg not found, format merging and MP3 conversion will fail")
	}

	if err := appCtx.Layout.Lock(); err != nil {
		return err
	}
	defer appCtx.Layout.Unlock()

	jobs := engine.NewManager(appCtx, engine.NewRegistry())

	e := echo.New()
	api.RegisterRoutes(e, appCtx, jobs)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.Handler(e, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          stdlog.New(log, "http: ", 0),
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Using %s, downloads go to %s", report.ToolPath, appCtx.Layout.Root)
		log.Info("Web UI listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		jobs.StartJanitor(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP shutdown: %v", err)
		}
		if n := jobs.Active(); n > 0 {
			log.Warn("Waiting up to %s for %d running downloads", shutdownGrace, n)
			if err := jobs.Wait(shutdownCtx); err != nil {
				log.Warn("Exiting with %d downloads still running", jobs.Active())
			}
		}
		return nil
	})

	return g.Wait()
}
