package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/datallboy/ytweb/internal/domain"
	"github.com/datallboy/ytweb/internal/engine"
	"github.com/datallboy/ytweb/internal/platform"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var mp3 bool
	var id string

	cmd := &cobra.Command{
		Use:   "download <url> <format-id>",
		Short: "Download one format without starting the web UI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, ctx, domain.DownloadRequest{
				ID:           id,
				URL:          args[0],
				FormatID:     args[1],
				ConvertToMP3: mp3,
			})
		},
	}

	cmd.Flags().BoolVar(&mp3, "mp3", false, "Convert audio-only formats to MP3")
	cmd.Flags().StringVar(&id, "id", "", "Download id to record in history (default: generated)")
	return cmd
}

func runDownload(cmd *cobra.Command, cc *commandContext, req domain.DownloadRequest) error {
	appCtx, cleanup, err := cc.bootstrap(false)
	defer cleanup()
	if err != nil {
		return err
	}

	if _, err := platform.ValidateDependencies(platform.Dependencies{Tool: appCtx.Config.Tool.Binary}); err != nil {
		return err
	}

	if err := appCtx.Layout.Lock(); err != nil {
		return err
	}
	defer appCtx.Layout.Unlock()

	out := cmd.OutOrStdout()
	jobs := engine.NewManager(appCtx, engine.NewRegistry())

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	id := jobs.Schedule(req)
	fmt.Fprintf(out, "Download %s started\n", id)

	progressCtx, stopProgress := context.WithCancel(context.Background())
	progressDone := make(chan struct{})
	if isTerminal(out) {
		go func() {
			defer close(progressDone)
			jobs.StartCLIProgress(progressCtx, id, out)
		}()
	} else {
		close(progressDone)
	}

	waitErr := jobs.Wait(sigCtx)
	stopProgress()
	<-progressDone

	if waitErr != nil {
		// the yt-dlp child shares our process group and sees the same signal
		return fmt.Errorf("interrupted: %w", waitErr)
	}

	job := jobs.Query(context.Background(), id)
	if job.Status == domain.StatusFailed {
		return fmt.Errorf("download %s failed: %s", id, job.Message)
	}

	fmt.Fprintf(out, "Download %s %s\n", id, job.Status)
	return nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
