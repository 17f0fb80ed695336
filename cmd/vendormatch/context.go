package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vendormatch/internal/catalog"
	"vendormatch/internal/config"
	"vendormatch/internal/logging"
	"vendormatch/internal/mapping"
	"vendormatch/internal/matching"
	"vendormatch/internal/similarity"
	"vendormatch/internal/stats"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
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

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// services bundles the components a subcommand may need. The store is opened
// per command invocation and closed by withServices once the callback returns.
type services struct {
	cfg        *config.Config
	store      *catalog.Store
	manager    *mapping.Manager
	matcher    *matching.Matcher
	aggregator *stats.Aggregator
}

func (c *commandContext) withServices(fn func(*services) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := cliLogger(cfg)
	oracle := similarity.NewDiceOracle(cfg.Matching.FuzzyThreshold)

	svc := &services{
		cfg:        cfg,
		store:      store,
		manager:    mapping.NewManager(store, logger),
		matcher:    matching.New(store, oracle, cfg, logger),
		aggregator: stats.NewAggregator(store, logger),
	}
	return fn(svc)
}

// cliLogger keeps command output clean: component logs go to the log file
// only, never to the terminal the tables are printed on.
func cliLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.NewFileOnly(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
