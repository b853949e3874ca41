package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Download DownloadConfig `mapstructure:"download" yaml:"download"`
	Tool     ToolConfig     `mapstructure:"tool" yaml:"tool"`
	Jobs     JobsConfig     `mapstructure:"jobs" yaml:"jobs"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           string   `mapstructure:"port" yaml:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type DownloadConfig struct {
	Root          string `mapstructure:"root" yaml:"root"`
	MaxConcurrent int    `mapstructure:"max_concurrent" yaml:"max_concurrent"`
	AudioFormat   string `mapstructure:"audio_format" yaml:"audio_format"`
}

type ToolConfig struct {
	Binary        string        `mapstructure:"binary" yaml:"binary"`
	FFmpegBinary  string        `mapstructure:"ffmpeg_binary" yaml:"ffmpeg_binary"`
	InfoTimeout   time.Duration `mapstructure:"info_timeout" yaml:"info_timeout"`
	UpdateTimeout time.Duration `mapstructure:"update_timeout" yaml:"update_timeout"`
	InfoCacheTTL  time.Duration `mapstructure:"info_cache_ttl" yaml:"info_cache_ttl"` // 0 disables
}

type JobsConfig struct {
	Retention     time.Duration `mapstructure:"retention" yaml:"retention"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"driver" yaml:"driver"` // sqlite, postgres or none
	SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`
}

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverNone     = "none"
)

// Addr is the listen address for the web UI.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Load reads config from an optional yaml file, a .env file and YTWEB_* variables.
// An empty path means "config.yaml if present"; defaults cover every key.
func Load(path string) (*Config, error) {
	// .env is optional, real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("download.root", "./youtubestuff")
	v.SetDefault("download.max_concurrent", 0)
	v.SetDefault("download.audio_format", "mp3")
	v.SetDefault("tool.binary", "yt-dlp")
	v.SetDefault("tool.ffmpeg_binary", "ffmpeg")
	v.SetDefault("tool.info_timeout", "30s")
	v.SetDefault("tool.update_timeout", "2m")
	v.SetDefault("tool.info_cache_ttl", "5m")
	v.SetDefault("jobs.retention", "24h")
	v.SetDefault("jobs.sweep_interval", "10m")
	v.SetDefault("log.path", "ytweb.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)
	v.SetDefault("store.driver", StoreDriverSQLite)
	v.SetDefault("store.sqlite_path", "")
	v.SetDefault("store.postgres_dsn", "")

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// Support Environment Variables
	v.SetEnvPrefix("YTWEB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}

	if strings.TrimSpace(c.Tool.Binary) == "" {
		return errors.New("tool binary is required")
	}

	if c.Download.Root == "" {
		c.Download.Root = "./youtubestuff"
	}

	if c.Download.MaxConcurrent < 0 {
		fmt.Println("Warning: download.max_concurrent is negative, treating as unlimited")
		c.Download.MaxConcurrent = 0
	}

	if c.Download.AudioFormat == "" {
		c.Download.AudioFormat = "mp3"
	}

	if c.Tool.InfoTimeout <= 0 {
		c.Tool.InfoTimeout = 30 * time.Second
	}

	if c.Tool.UpdateTimeout <= 0 {
		c.Tool.UpdateTimeout = 2 * time.Minute
	}

	if c.Tool.InfoCacheTTL < 0 {
		c.Tool.InfoCacheTTL = 0
	}

	if c.Jobs.Retention < 0 {
		return fmt.Errorf("jobs.retention must not be negative (got %s)", c.Jobs.Retention)
	}

	if c.Jobs.SweepInterval <= 0 {
		c.Jobs.SweepInterval = 10 * time.Minute
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "", StoreDriverNone:
		c.Store.Driver = StoreDriverNone
	case StoreDriverSQLite:
		if c.Store.SQLitePath == "" {
			c.Store.SQLitePath = c.Download.Root + "/.ytweb/history.db"
		}
	case StoreDriverPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn is required when store.driver is postgres")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	return nil
}
