package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdir moves into a scratch dir so a developer's config.yaml or .env never leaks in.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr() != "localhost:5000" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Tool.Binary != "yt-dlp" {
		t.Errorf("unexpected tool binary %q", cfg.Tool.Binary)
	}
	if cfg.Tool.InfoTimeout != 30*time.Second {
		t.Errorf("unexpected info timeout %s", cfg.Tool.InfoTimeout)
	}
	if cfg.Tool.InfoCacheTTL != 5*time.Minute {
		t.Errorf("unexpected info cache ttl %s", cfg.Tool.InfoCacheTTL)
	}
	if cfg.Jobs.Retention != 24*time.Hour {
		t.Errorf("unexpected retention %s", cfg.Jobs.Retention)
	}
	if cfg.Store.Driver != StoreDriverSQLite {
		t.Errorf("unexpected store driver %q", cfg.Store.Driver)
	}
	if !strings.HasSuffix(cfg.Store.SQLitePath, "history.db") {
		t.Errorf("expected derived sqlite path, got %q", cfg.Store.SQLitePath)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "ytweb.yaml")
	content := `
server:
  port: "9090"
download:
  root: /srv/media
  max_concurrent: 2
jobs:
  retention: 1h
store:
  driver: none
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("YTWEB_SERVER_HOST", "0.0.0.0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Download.Root != "/srv/media" || cfg.Download.MaxConcurrent != 2 {
		t.Errorf("unexpected download config %+v", cfg.Download)
	}
	if cfg.Jobs.Retention != time.Hour {
		t.Errorf("unexpected retention %s", cfg.Jobs.Retention)
	}
	if cfg.Store.Driver != StoreDriverNone {
		t.Errorf("unexpected store driver %q", cfg.Store.Driver)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t)
	if _, err := Load("nope.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "negative concurrency becomes unlimited",
			cfg: Config{
				Server:   ServerConfig{Port: "5000"},
				Tool:     ToolConfig{Binary: "yt-dlp"},
				Download: DownloadConfig{MaxConcurrent: -3},
			},
		},
		{
			name: "postgres requires dsn",
			cfg: Config{
				Server: ServerConfig{Port: "5000"},
				Tool:   ToolConfig{Binary: "yt-dlp"},
				Store:  StoreConfig{Driver: "postgres"},
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Server: ServerConfig{Port: "5000"},
				Tool:   ToolConfig{Binary: "yt-dlp"},
				Store:  StoreConfig{Driver: "mysql"},
			},
			wantErr: true,
		},
		{
			name: "negative retention",
			cfg: Config{
				Server: ServerConfig{Port: "5000"},
				Tool:   ToolConfig{Binary: "yt-dlp"},
				Jobs:   JobsConfig{Retention: -time.Minute},
			},
			wantErr: true,
		},
		{
			name:    "missing binary",
			cfg:     Config{Server: ServerConfig{Port: "5000"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.cfg.Download.MaxConcurrent < 0 {
				t.Errorf("expected concurrency normalised, got %d", tt.cfg.Download.MaxConcurrent)
			}
		})
	}
}
