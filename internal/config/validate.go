package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConvert() error {
	if c.Convert.JPEGQuality < 1 || c.Convert.JPEGQuality > 100 {
		return fmt.Errorf("convert.jpeg_quality must be between 1 and 100, got %d", c.Convert.JPEGQuality)
	}
	if c.Convert.WebPQuality < 1 || c.Convert.WebPQuality > 100 {
		return fmt.Errorf("convert.webp_quality must be between 1 and 100, got %d", c.Convert.WebPQuality)
	}
	if c.Convert.PDFDPI < 1 {
		return fmt.Errorf("convert.pdf_dpi must be positive, got %d", c.Convert.PDFDPI)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
