package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is looked up in the working directory when --config
// is not given.
const DefaultConfigFile = ".fgdiff.toml"

// DefaultDBPath is where comparison history is stored when neither the
// config file nor --db names a path.
const DefaultDBPath = "fgdiff.db"

// Config holds file-based defaults. Flags override config values.
type Config struct {
	DBPath   string `toml:"db_path"`
	OldLabel string `toml:"old_label"`
	NewLabel string `toml:"new_label"`
	Format   string `toml:"format"`
}

// LoadConfig reads a TOML config file. A missing file at the default
// path is not an error; a missing file at an explicit path is.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Format != "" && !isValidFormat(cfg.Format) {
		return nil, fmt.Errorf("config %s: invalid format %q: must be one of %v", path, cfg.Format, ValidFormats)
	}
	return cfg, nil
}
