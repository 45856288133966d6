package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadPartialOverridesDefault(t *testing.T) {
	cfg, err := Load(strings.NewReader("data_dir: /var/lib/relcore\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/relcore" {
		t.Fatalf("expected overridden data_dir, got %q", cfg.DataDir)
	}
	if cfg.CacheCapacity != Default().CacheCapacity {
		t.Fatalf("expected default cache_capacity to survive, got %d", cfg.CacheCapacity)
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	_, err := Load(strings.NewReader("page_size: 123\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadRejectsZeroCacheCapacity(t *testing.T) {
	_, err := Load(strings.NewReader("cache_capacity: 0\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
