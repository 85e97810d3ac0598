package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	ExclusionFile string `toml:"exclusion_file"`
	MappingFile   string `toml:"mapping_file"`
	LogDir        string `toml:"log_dir"`
	LockFile      string `toml:"lock_file"`
}

// Lookup contains format hints for the lookup tables.
type Lookup struct {
	// Sheet selects the worksheet for .xlsx sources. Empty means the first sheet.
	Sheet string `toml:"sheet"`
	// ExclusionTable and MappingTable name the tables read from SQLite sources.
	ExclusionTable string `toml:"exclusion_table"`
	MappingTable   string `toml:"mapping_table"`
	// ExclusionHeaderRows and MappingHeaderRows count the leading rows of
	// csv, tsv and xlsx sources skipped before data. SQLite sources ignore them.
	ExclusionHeaderRows int `toml:"exclusion_header_rows"`
	MappingHeaderRows   int `toml:"mapping_header_rows"`
}

// URLs contains the outbound URL templates. "{}" is replaced by the identifier.
type URLs struct {
	EditTemplate       string `toml:"edit_template"`
	StorefrontTemplate string `toml:"storefront_template"`
}

// Browser contains browser resolution and window matching settings.
type Browser struct {
	Binary        string `toml:"binary"`
	TitleKeyword  string `toml:"title_keyword"`
	NewWindowFlag string `toml:"new_window_flag"`
	// ProcessName selects browser processes on Windows and macOS.
	ProcessName string `toml:"process_name"`
}

// Search contains batching limits and the timing constants of the
// search-and-tag workflow.
type Search struct {
	BatchSize         int     `toml:"batch_size"`
	MaxIdentifiers    int     `toml:"max_identifiers"`
	BackspacePresses  int     `toml:"backspace_presses"`
	WindowTag         string  `toml:"window_tag"`
	SettleSeconds     int     `toml:"settle_seconds"`
	PollAttempts      int     `toml:"poll_attempts"`
	PollIntervalMS    int     `toml:"poll_interval_ms"`
	ActivateDelayMS   int     `toml:"activate_delay_ms"`
	BatchPauseSeconds int     `toml:"batch_pause_seconds"`
	WaitPerTab        float64 `toml:"wait_per_tab"`
	WaitBase          float64 `toml:"wait_base"`
	WaitThreshold     int     `toml:"wait_threshold"`
	WaitDiscount      float64 `toml:"wait_discount"`
	WaitFloor         int     `toml:"wait_floor"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File enables the log file inside paths.log_dir.
	File bool `toml:"file"`
}

// Config encapsulates all configuration values for tabbatch.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Lookup  Lookup  `toml:"lookup"`
	URLs    URLs    `toml:"urls"`
	Browser Browser `toml:"browser"`
	Search  Search  `toml:"search"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath returns the explicit path when one is given. Otherwise it
// returns the first existing candidate among the user config file and
// ./tabbatch.toml, falling back to the user config location.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		case err != nil:
			return "", false, fmt.Errorf("stat config: %w", err)
		case info.IsDir():
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	var fallback string
	for _, candidate := range []string{defaultConfigPath, projectConfigFile} {
		expanded, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if fallback == "" {
			fallback = expanded
		}
		if info, err := os.Stat(expanded); err == nil && !info.IsDir() {
			return expanded, true, nil
		}
	}
	return fallback, false, nil
}

// EnsureDirectories creates the log directory and the lock file's parent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, filepath.Dir(c.Paths.LockFile)} {
		if strings.TrimSpace(dir) == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SettleDelay is the pause between launching the browser and the first window poll.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Search.SettleSeconds) * time.Second
}

// PollInterval is the delay between window polls.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Search.PollIntervalMS) * time.Millisecond
}

// ActivateDelay is the pause after focusing the located window.
func (c *Config) ActivateDelay() time.Duration {
	return time.Duration(c.Search.ActivateDelayMS) * time.Millisecond
}

// BatchPause is the pause between two search batches.
func (c *Config) BatchPause() time.Duration {
	return time.Duration(c.Search.BatchPauseSeconds) * time.Second
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
