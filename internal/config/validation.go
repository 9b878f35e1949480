package config

import (
	"fmt"

	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/codec/lp"
	"github.com/LeJamon/goBinkit/internal/codec/pattern"
	"github.com/LeJamon/goBinkit/internal/compression"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if _, err := endian.ParseOrder(config.Endian); err != nil {
		return fmt.Errorf("endian: %w", err)
	}

	if err := config.LP.Validate(); err != nil {
		return fmt.Errorf("lp validation failed: %w", err)
	}
	if err := config.CString.Validate(); err != nil {
		return fmt.Errorf("cstr validation failed: %w", err)
	}
	if err := config.Scan.Validate(); err != nil {
		return fmt.Errorf("scan validation failed: %w", err)
	}

	if err := config.Cache.Validate(); err != nil {
		return fmt.Errorf("cache validation failed: %w", err)
	}

	if _, err := pattern.ParseFormat(config.Output.Format); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}
	if _, err := config.LogLevel(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}

	if config.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", config.Workers)
	}

	return nil
}

// Validate performs validation on the LP configuration
func (l *LPConfig) Validate() error {
	if !lp.Width(l.Width).Valid() || l.Width > 64 {
		return fmt.Errorf("width must be 8, 16, 32 or 64, got %d", l.Width)
	}
	if !compression.IsAvailable(l.Compression) {
		return fmt.Errorf("unknown compression %q (available: %v)", l.Compression, compression.Available())
	}
	if l.Level < 0 || l.Level > 22 {
		return fmt.Errorf("level must be between 0 and 22, got %d", l.Level)
	}
	return nil
}

// Validate performs validation on the C string configuration
func (c *CStringConfig) Validate() error {
	if c.MaxLen < 1 {
		return fmt.Errorf("max_len must be at least 1, got %d", c.MaxLen)
	}
	return nil
}

// Validate performs validation on the scan configuration
func (s *ScanConfig) Validate() error {
	if s.Width != 32 && s.Width != 64 {
		return fmt.Errorf("width must be 32 or 64, got %d", s.Width)
	}
	if s.Limit != 0 && s.Limit <= s.Skip {
		return fmt.Errorf("limit %d must be past skip %d", s.Limit, s.Skip)
	}
	return nil
}

// Validate performs validation on the cache configuration
func (c *CacheConfig) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", c.Size)
	}
	return nil
}
