package cmd

import (
	"fmt"
	"os"

	"github.com/chisel-ui/chisel/internal/config"
	"github.com/chisel-ui/chisel/internal/logging"
	"github.com/chisel-ui/chisel/internal/styles"
)

// setup loads configuration and builds the logger and styling catalog every
// command starts from.
func setup() (*config.Config, logging.Logger, *styles.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})

	catalog := styles.Default()
	if cfg.Catalog.Path != "" {
		catalog, err = styles.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading catalog overlay: %w", err)
		}
	}
	return cfg, logger, catalog, nil
}
