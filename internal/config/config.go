package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given explicitly.
const DefaultPath = "profilekit.yaml"

// Config is the complete profilekit configuration. Every value a run depends
// on is carried here and passed down explicitly.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	GitHub   GitHubConfig   `yaml:"github"`
	Health   HealthConfig   `yaml:"health"`
	Research ResearchConfig `yaml:"research"`
	Sections SectionsConfig `yaml:"sections"`
	Widgets  WidgetsConfig  `yaml:"widgets"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Git      GitConfig      `yaml:"git"`
}

// DocumentConfig points at the markdown file being maintained.
type DocumentConfig struct {
	Path string `yaml:"path"`
}

// GitHubConfig configures the account statistics provider.
type GitHubConfig struct {
	Username string        `yaml:"username"`
	APIURL   string        `yaml:"api_url,omitempty"`
	Token    string        `yaml:"token,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// HealthConfig selects where system health values come from.
type HealthConfig struct {
	Source HealthSource `yaml:"source"`
	// Seed makes the random source reproducible; 0 seeds from the clock.
	Seed   uint64            `yaml:"seed,omitempty"`
	Static map[string]string `yaml:"static,omitempty"`
}

// ResearchConfig locates hand-authored research data.
type ResearchConfig struct {
	// DataFile is a YAML research data set; empty uses the built-in data.
	DataFile      string `yaml:"data_file,omitempty"`
	ActivityOrg   string `yaml:"activity_org"`
	MaxActivities int    `yaml:"max_activities"`
}

// SectionConfig describes how one heading-bounded section is found and,
// when missing, where it is inserted.
type SectionConfig struct {
	Heading        string         `yaml:"heading"`
	Anchor         string         `yaml:"anchor,omitempty"`
	AnchorPosition AnchorPosition `yaml:"anchor_position,omitempty"`
	AnchorScope    string         `yaml:"anchor_scope,omitempty"`
}

// SectionsConfig holds the locators for every generated section.
type SectionsConfig struct {
	Metrics  SectionConfig `yaml:"metrics"`
	Research SectionConfig `yaml:"research"`
	// Activity is the name used in the <!--START_SECTION:name--> markers.
	Activity string `yaml:"activity"`
}

// WidgetConfig is one externally hosted README widget.
type WidgetConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// WidgetsConfig configures the widget reachability probe.
type WidgetsConfig struct {
	Timeout time.Duration  `yaml:"timeout,omitempty"`
	Extra   []WidgetConfig `yaml:"extra,omitempty"`
	// DisableDefaults drops the stock GitHub profile widgets from the probe set.
	DisableDefaults bool `yaml:"disable_defaults,omitempty"`
	// Discover adds <img> sources found in the document to the probe set.
	Discover bool `yaml:"discover"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig configures run metrics export.
type MetricsConfig struct {
	// TextfilePath, when set, receives Prometheus text-format metrics after each run.
	TextfilePath string `yaml:"textfile_path,omitempty"`
}

// ScheduleConfig configures the long-running schedule command.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
	// WatchResearch re-runs the update when the research data file changes.
	WatchResearch bool          `yaml:"watch_research"`
	Debounce      time.Duration `yaml:"debounce,omitempty"`
}

// GitConfig configures committing the updated document.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
	Message     string `yaml:"message"`
}

// Load reads, expands, defaults and validates the configuration at path.
//
// When path is empty DefaultPath is tried and, if it does not exist, built-in
// defaults are used. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", path).Build()
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, expanding ${VAR} references from the
// environment, then applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration value").Fatal().Build()
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	// Defaults never fail on an empty config.
	_ = applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).Build()
	}

	example := Default()
	example.GitHub.Token = "${GITHUB_TOKEN}"
	example.Research.DataFile = "research.yaml"
	example.Widgets.Discover = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			Fatal().WithContext("path", path).Build()
	}
	return nil
}
