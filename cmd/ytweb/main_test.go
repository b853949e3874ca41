package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	want := []string{"serve", "info", "download", "update", "history"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q missing (%v)", name, err)
		}
	}

	for _, flag := range []string{"config", "log-level"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func writeConfig(t *testing.T, driver string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	content := "download:\n  root: " + filepath.Join(dir, "media") + "\n" +
		"log:\n  path: " + filepath.Join(dir, "logs", "ytweb.log") + "\n  include_stdout: false\n" +
		"store:\n  driver: " + driver + "\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHistoryCommand(t *testing.T) {
	t.Run("disabled store", func(t *testing.T) {
		path := writeConfig(t, "none")
		_, err := execute(t, "--config", path, "history")
		if err == nil || !strings.Contains(err.Error(), "history is disabled") {
			t.Fatalf("expected disabled error, got %v", err)
		}
	})

	t.Run("empty sqlite history", func(t *testing.T) {
		path := writeConfig(t, "sqlite")
		out, err := execute(t, "--config", path, "history")
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if !strings.Contains(out, "No downloads recorded yet.") {
			t.Errorf("unexpected output %q", out)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), "media", ".ytweb", "history.db")); err != nil {
			t.Errorf("expected sqlite file under the download root: %v", err)
		}
	})
}

func TestMissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := execute(t, "--config", "missing.yaml", "history"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestRenderMediaInfo(t *testing.T) {
	dur := 125.4
	size := int64(3_400_000)
	abr := 129.5
	info := &domain.MediaInfo{
		Title:    "Clip",
		Uploader: "someone",
		Duration: &dur,
		Formats: []domain.Format{
			{FormatID: "140", Ext: "m4a", Type: domain.FormatAudio, Quality: "medium", Filesize: &size, ABR: &abr},
			{FormatID: "137", Ext: "mp4", Type: domain.FormatVideo, Quality: "1080p", Resolution: "1920x1080"},
		},
	}

	var buf bytes.Buffer
	renderMediaInfo(&buf, info)
	out := buf.String()

	for _, want := range []string{"Title:    Clip", "Duration: 2m5s", "140", "3.4 MB", "130k", "1920x1080", "?"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	renderHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No downloads") {
		t.Errorf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	renderHistory(&buf, []*domain.DownloadRecord{{
		ID:         "abc",
		URL:        "https://example.com/v",
		FormatID:   "18",
		Status:     domain.StatusFailed,
		Progress:   42,
		Message:    "download failed (exit code 1)",
		FinishedAt: time.Now().Add(-time.Hour),
	}})
	out := buf.String()
	for _, want := range []string{"abc", "https://example.com/v", "failed", "42.0%", "exit code 1", "ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
}
