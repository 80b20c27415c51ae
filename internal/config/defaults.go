package config

import (
	"fmt"
	"time"
)

// Built-in defaults reproduce the profile this tool was written for.
const (
	DefaultDocumentPath    = "README.md"
	DefaultUsername        = "jane-alesi"
	DefaultGitHubAPIURL    = "https://api.github.com"
	DefaultGitHubTimeout   = 10 * time.Second
	DefaultWidgetTimeout   = 5 * time.Second
	DefaultActivityOrg     = "satware-ai"
	DefaultMaxActivities   = 5
	DefaultScheduleEvery   = 6 * time.Hour
	DefaultWatchDebounce   = 2 * time.Second
	DefaultMetricsHeading  = "### 📊 Real-Time System Metrics"
	DefaultMetricsAnchor   = "---\n\n## 👥 Alesi Family Ecosystem"
	DefaultResearchHeading = "### 🔬 Current Research Status"
	DefaultResearchAnchor  = "\n</details>"
	DefaultResearchScope   = "### Performance Achievements"
	DefaultActivitySection = "activity"
	DefaultCommitMessage   = "docs: update profile sections"
	DefaultAuthorName      = "profilekit"
	DefaultAuthorEmail     = "profilekit@users.noreply.github.com"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&DocumentDefaultApplier{},
		&GitHubDefaultApplier{},
		&HealthDefaultApplier{},
		&ResearchDefaultApplier{},
		&SectionsDefaultApplier{},
		&WidgetsDefaultApplier{},
		&LoggingDefaultApplier{},
		&ScheduleDefaultApplier{},
		&GitDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}

// DocumentDefaultApplier handles document defaults.
type DocumentDefaultApplier struct{}

func (DocumentDefaultApplier) Domain() string { return "document" }

func (DocumentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Document.Path == "" {
		cfg.Document.Path = DefaultDocumentPath
	}
	return nil
}

// GitHubDefaultApplier handles GitHub provider defaults.
type GitHubDefaultApplier struct{}

func (GitHubDefaultApplier) Domain() string { return "github" }

func (GitHubDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.GitHub.Username == "" {
		cfg.GitHub.Username = DefaultUsername
	}
	if cfg.GitHub.APIURL == "" {
		cfg.GitHub.APIURL = DefaultGitHubAPIURL
	}
	if cfg.GitHub.Timeout <= 0 {
		cfg.GitHub.Timeout = DefaultGitHubTimeout
	}
	return nil
}

// HealthDefaultApplier handles health source defaults.
type HealthDefaultApplier struct{}

func (HealthDefaultApplier) Domain() string { return "health" }

func (HealthDefaultApplier) ApplyDefaults(cfg *Config) error {
	src, err := healthSourceNormalizer.NormalizeWithError(string(cfg.Health.Source))
	if err != nil {
		return err
	}
	cfg.Health.Source = src
	return nil
}

// ResearchDefaultApplier handles research data defaults.
type ResearchDefaultApplier struct{}

func (ResearchDefaultApplier) Domain() string { return "research" }

func (ResearchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Research.ActivityOrg == "" {
		cfg.Research.ActivityOrg = DefaultActivityOrg
	}
	if cfg.Research.MaxActivities <= 0 {
		cfg.Research.MaxActivities = DefaultMaxActivities
	}
	return nil
}

// SectionsDefaultApplier handles section locator defaults.
type SectionsDefaultApplier struct{}

func (SectionsDefaultApplier) Domain() string { return "sections" }

func (SectionsDefaultApplier) ApplyDefaults(cfg *Config) error {
	m := &cfg.Sections.Metrics
	if m.Heading == "" {
		m.Heading = DefaultMetricsHeading
		if m.Anchor == "" {
			m.Anchor = DefaultMetricsAnchor
			m.AnchorPosition = AnchorBefore
		}
	}
	r := &cfg.Sections.Research
	if r.Heading == "" {
		r.Heading = DefaultResearchHeading
		if r.Anchor == "" {
			r.Anchor = DefaultResearchAnchor
			r.AnchorPosition = AnchorAfter
			r.AnchorScope = DefaultResearchScope
		}
	}
	for _, s := range []*SectionConfig{m, r} {
		pos, err := anchorPositionNormalizer.NormalizeWithError(string(s.AnchorPosition))
		if err != nil {
			return fmt.Errorf("section %q: %w", s.Heading, err)
		}
		s.AnchorPosition = pos
	}
	if cfg.Sections.Activity == "" {
		cfg.Sections.Activity = DefaultActivitySection
	}
	return nil
}

// WidgetsDefaultApplier handles widget probe defaults.
type WidgetsDefaultApplier struct{}

func (WidgetsDefaultApplier) Domain() string { return "widgets" }

func (WidgetsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Widgets.Timeout <= 0 {
		cfg.Widgets.Timeout = DefaultWidgetTimeout
	}
	return nil
}

// LoggingDefaultApplier normalizes logging settings.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

// ScheduleDefaultApplier handles schedule defaults.
type ScheduleDefaultApplier struct{}

func (ScheduleDefaultApplier) Domain() string { return "schedule" }

func (ScheduleDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Schedule.Interval <= 0 {
		cfg.Schedule.Interval = DefaultScheduleEvery
	}
	if cfg.Schedule.Debounce <= 0 {
		cfg.Schedule.Debounce = DefaultWatchDebounce
	}
	return nil
}

// GitDefaultApplier handles commit defaults.
type GitDefaultApplier struct{}

func (GitDefaultApplier) Domain() string { return "git" }

func (GitDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Git.AuthorName == "" {
		cfg.Git.AuthorName = DefaultAuthorName
	}
	if cfg.Git.AuthorEmail == "" {
		cfg.Git.AuthorEmail = DefaultAuthorEmail
	}
	if cfg.Git.Message == "" {
		cfg.Git.Message = DefaultCommitMessage
	}
	return nil
}
