package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateURLs(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLookup() error {
	if c.Lookup.ExclusionHeaderRows < 0 || c.Lookup.MappingHeaderRows < 0 {
		return errors.New("lookup.exclusion_header_rows and mapping_header_rows must be non-negative")
	}
	return nil
}

func (c *Config) validateURLs() error {
	if !strings.Contains(c.URLs.EditTemplate, Placeholder) {
		return fmt.Errorf("urls.edit_template must contain %q", Placeholder)
	}
	if !strings.Contains(c.URLs.StorefrontTemplate, Placeholder) {
		return fmt.Errorf("urls.storefront_template must contain %q", Placeholder)
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := c.Search
	if s.BatchSize > s.MaxIdentifiers {
		return fmt.Errorf("search.batch_size (%d) must not exceed search.max_identifiers (%d)", s.BatchSize, s.MaxIdentifiers)
	}
	if s.WaitPerTab < 0 || s.WaitBase < 0 || s.WaitDiscount < 0 {
		return errors.New("search.wait_per_tab, wait_base and wait_discount must be non-negative")
	}
	if s.WaitThreshold < 0 {
		return errors.New("search.wait_threshold must be non-negative")
	}
	if s.WaitFloor < 0 {
		return errors.New("search.wait_floor must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
