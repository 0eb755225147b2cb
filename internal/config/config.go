// Package config resolves the runtime configuration from the environment
// (a .env file is autoloaded by main) with sane defaults; command-line
// flags override on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	appName              = "recycler"
	defaultDataDirectory = ".recycler"
	defaultPageSize      = 10
	defaultRows          = 500
)

type Config struct {
	// PageSize is records per fetched page; the view pool holds twice this.
	PageSize int
	// Rows to seed into an empty database.
	Rows int
	// DataDir holds the database and logs.
	DataDir string
	// Demo switches to the generated in-memory source.
	Demo bool
	// Debug enables verbose logging.
	Debug bool
}

func Load() Config {
	cfg := Config{
		PageSize: defaultPageSize,
		Rows:     defaultRows,
		DataDir:  defaultDataDirectory,
	}
	if v := os.Getenv("RECYCLER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if n, err := strconv.Atoi(os.Getenv("RECYCLER_PAGE_SIZE")); err == nil {
		cfg.PageSize = n
	}
	if n, err := strconv.Atoi(os.Getenv("RECYCLER_ROWS")); err == nil {
		cfg.Rows = n
	}
	if ok, err := strconv.ParseBool(os.Getenv("RECYCLER_DEMO")); err == nil {
		cfg.Demo = ok
	}
	if ok, err := strconv.ParseBool(os.Getenv("RECYCLER_DEBUG")); err == nil {
		cfg.Debug = ok
	}
	return cfg
}

func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("config: page size must be positive, got %d", c.PageSize)
	}
	if c.Rows < 0 {
		return fmt.Errorf("config: rows must not be negative, got %d", c.Rows)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data directory must not be empty")
	}
	return nil
}

func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, appName+".db")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "logs", appName+".log")
}
