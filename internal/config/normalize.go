package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLookup()
	c.normalizeURLs()
	c.normalizeBrowser()
	c.normalizeSearch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ExclusionFile, err = expandPath(strings.TrimSpace(c.Paths.ExclusionFile)); err != nil {
		return fmt.Errorf("paths.exclusion_file: %w", err)
	}
	if c.Paths.MappingFile, err = expandPath(strings.TrimSpace(c.Paths.MappingFile)); err != nil {
		return fmt.Errorf("paths.mapping_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLookup() {
	c.Lookup.Sheet = strings.TrimSpace(c.Lookup.Sheet)
	c.Lookup.ExclusionTable = strings.TrimSpace(c.Lookup.ExclusionTable)
	if c.Lookup.ExclusionTable == "" {
		c.Lookup.ExclusionTable = defaultExclusionTable
	}
	c.Lookup.MappingTable = strings.TrimSpace(c.Lookup.MappingTable)
	if c.Lookup.MappingTable == "" {
		c.Lookup.MappingTable = defaultMappingTable
	}
}

func (c *Config) normalizeURLs() {
	c.URLs.EditTemplate = strings.TrimSpace(c.URLs.EditTemplate)
	if c.URLs.EditTemplate == "" {
		c.URLs.EditTemplate = defaultEditTemplate
	}
	c.URLs.StorefrontTemplate = strings.TrimSpace(c.URLs.StorefrontTemplate)
	if c.URLs.StorefrontTemplate == "" {
		c.URLs.StorefrontTemplate = defaultStorefrontTemplate
	}
}

func (c *Config) normalizeBrowser() {
	c.Browser.Binary = strings.TrimSpace(c.Browser.Binary)
	c.Browser.TitleKeyword = strings.TrimSpace(c.Browser.TitleKeyword)
	if c.Browser.TitleKeyword == "" {
		c.Browser.TitleKeyword = defaultTitleKeyword
	}
	c.Browser.NewWindowFlag = strings.TrimSpace(c.Browser.NewWindowFlag)
	if c.Browser.NewWindowFlag == "" {
		c.Browser.NewWindowFlag = defaultNewWindowFlag
	}
	c.Browser.ProcessName = strings.TrimSpace(c.Browser.ProcessName)
	if c.Browser.ProcessName == "" {
		c.Browser.ProcessName = defaultProcessName
	}
}

func (c *Config) normalizeSearch() {
	s := &c.Search
	if s.BatchSize <= 0 {
		s.BatchSize = defaultBatchSize
	}
	if s.MaxIdentifiers <= 0 {
		s.MaxIdentifiers = defaultMaxIdentifiers
	}
	if s.BackspacePresses < 0 {
		s.BackspacePresses = 0
	}
	s.WindowTag = strings.TrimSpace(s.WindowTag)
	if s.WindowTag == "" {
		s.WindowTag = defaultWindowTag
	}
	if s.SettleSeconds < 0 {
		s.SettleSeconds = 0
	}
	if s.PollAttempts <= 0 {
		s.PollAttempts = defaultPollAttempts
	}
	if s.PollIntervalMS <= 0 {
		s.PollIntervalMS = defaultPollIntervalMS
	}
	if s.ActivateDelayMS < 0 {
		s.ActivateDelayMS = 0
	}
	if s.BatchPauseSeconds < 0 {
		s.BatchPauseSeconds = 0
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("TABBATCH_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
