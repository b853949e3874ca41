package main

import (
	"fmt"

	"github.com/datallboy/ytweb/internal/app"
	"github.com/datallboy/ytweb/internal/cache"
	"github.com/datallboy/ytweb/internal/infra/config"
	"github.com/datallboy/ytweb/internal/infra/logger"
	"github.com/datallboy/ytweb/internal/store"
	"github.com/datallboy/ytweb/internal/ytdlp"
)

// commandContext carries the global flags and lazily loaded config.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg *config.Config
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if *c.logLevelFlag != "" {
		cfg.Log.Level = *c.logLevelFlag
	}

	c.cfg = cfg
	return cfg, nil
}

// bootstrap builds the shared app.Context. withStdout mirrors log lines to
// the terminal; one-shot commands turn it off so their own output stays clean.
// The returned cleanup must always be called.
func (c *commandContext) bootstrap(withStdout bool) (*app.Context, func(), error) {
	noop := func() {}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, noop, err
	}

	log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), withStdout && cfg.Log.IncludeStdout)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open log file: %w", err)
	}

	appCtx := app.NewContext(cfg, log)

	if err := appCtx.Layout.Prepare(); err != nil {
		return nil, noop, err
	}

	tool, err := ytdlp.New(cfg.Tool.Binary, cfg.Tool.InfoTimeout, ytdlp.WithUpdateTimeout(cfg.Tool.UpdateTimeout))
	if err != nil {
		return nil, noop, err
	}
	appCtx.Tool = tool
	if ttl := cfg.Tool.InfoCacheTTL; ttl > 0 {
		appCtx.Tool = cache.NewCachedTool(tool, ttl)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open history store: %w", err)
	}
	if st == nil {
		return appCtx, noop, nil
	}

	// only assign a live store, a typed nil would defeat the nil checks
	appCtx.Store = st
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn("Failed to close history store: %v", err)
		}
	}
	return appCtx, cleanup, nil
}
