package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bookfetch/internal/catalog"
	"bookfetch/internal/config"
	"bookfetch/internal/logging"
)

type commandContext struct {
	languageFlag *string
	topicFlag    *string
	configFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(languageFlag, topicFlag, configFlag *string) *commandContext {
	return &commandContext{
		languageFlag: languageFlag,
		topicFlag:    topicFlag,
		configFlag:   configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

// identity resolves the catalog to operate on: explicit flags win, then the
// persisted defaults document, then the English all-disciplines catalog.
func (c *commandContext) identity() (catalog.Identity, error) {
	defaultsPath, err := config.DefaultsFilePath()
	if err != nil {
		return catalog.Identity{}, err
	}
	return catalog.ResolveIdentity(defaultsPath, c.flagValue(c.languageFlag), c.flagValue(c.topicFlag))
}

// openCatalog builds the catalog selected by the language and topic flags.
func (c *commandContext) openCatalog() (*catalog.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	id, err := c.identity()
	if err != nil {
		return nil, err
	}
	return catalog.New(cfg, id, catalog.WithLogger(logger))
}

// openAllCatalogs builds every registered catalog.
func (c *commandContext) openAllCatalogs() ([]*catalog.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return catalog.All(cfg, catalog.WithLogger(logger))
}

// destDir resolves the download destination: the flag value, then the
// configured download directory, then the working directory.
func (c *commandContext) destDir(flagValue string) (string, error) {
	if dest := strings.TrimSpace(flagValue); dest != "" {
		return config.ExpandPath(dest)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Paths.DownloadDir != "" {
		return cfg.Paths.DownloadDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
