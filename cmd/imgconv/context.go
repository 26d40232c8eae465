package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"imgconv/internal/config"
	"imgconv/internal/history"
	"imgconv/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// ensureLogger builds the process logger once. Logging failures degrade to a
// no-op logger so a bad log path never blocks a conversion.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withHistory opens the batch journal for the duration of fn.
func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the configuration (set history.enabled = true)")
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// rememberDestination records the destination directory for the next run.
// Only an existing config file is updated; nothing is created implicitly.
func (c *commandContext) rememberDestination(destDir string) {
	cfg, err := c.ensureConfig()
	if err != nil || !c.configExists {
		return
	}
	if cfg.Paths.LastUsedDir == destDir {
		return
	}
	cfg.Paths.LastUsedDir = destDir
	if err := cfg.Save(c.configPath); err != nil {
		c.ensureLogger().Warn("persist last used directory", slog.String("error", err.Error()))
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
