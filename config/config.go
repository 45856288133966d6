// Package config loads the settings the storage engine needs at startup:
// where data lives on disk, how big a page is, and how many pages the
// cache is allowed to pin at once.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/luigitni/relcore/storage"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables for a single engine instance.
type Config struct {
	// DataDir is the directory that holds the engine's on-disk data.
	DataDir string `yaml:"data_dir"`

	// PageSize is the size in bytes of every page handed to the slotted
	// page layer. storage.Page is sized at storage.PageSize; a configured
	// value that disagrees with it is rejected rather than silently
	// truncated.
	PageSize int `yaml:"page_size"`

	// CacheCapacity is the number of pages the cache is allowed to hold
	// pinned at once.
	CacheCapacity int `yaml:"cache_capacity"`
}

// Default returns the configuration used when no config file is supplied.
func Default() Config {
	return Config{
		DataDir:       "./data",
		PageSize:      storage.PageSize,
		CacheCapacity: 500,
	}
}

// Load reads a YAML document from r over top of Default, so a partial
// file only overrides the fields it sets.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalidConfig)
	}
	if c.PageSize != storage.PageSize {
		return fmt.Errorf("%w: page_size must be %d, got %d", ErrInvalidConfig, storage.PageSize, c.PageSize)
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("%w: cache_capacity must be positive, got %d", ErrInvalidConfig, c.CacheCapacity)
	}
	return nil
}
