package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

// ValidateConfig checks a defaulted configuration for values no run could use.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateDocument(); err != nil {
		return err
	}
	if err := cv.validateGitHub(); err != nil {
		return err
	}
	if err := cv.validateSections(); err != nil {
		return err
	}
	if err := cv.validateWidgets(); err != nil {
		return err
	}
	return cv.validateSchedule()
}

func (cv *configurationValidator) validateDocument() error {
	if strings.TrimSpace(cv.config.Document.Path) == "" {
		return ferrors.ValidationError("document path is required").WithContext("field", "document.path").Build()
	}
	return nil
}

func (cv *configurationValidator) validateGitHub() error {
	gh := cv.config.GitHub
	if strings.TrimSpace(gh.Username) == "" {
		return ferrors.ValidationError("github username is required").WithContext("field", "github.username").Build()
	}
	if err := validateHTTPURL(gh.APIURL); err != nil {
		return ferrors.ValidationError(fmt.Sprintf("invalid github api_url: %v", err)).
			WithContext("field", "github.api_url").Build()
	}
	return nil
}

func (cv *configurationValidator) validateSections() error {
	s := cv.config.Sections
	if s.Metrics.Heading == s.Research.Heading {
		return ferrors.ValidationError("metrics and research sections must use different headings").
			WithContext("field", "sections").Build()
	}
	if strings.ContainsAny(s.Activity, " \t\n") || strings.Contains(s.Activity, "--") {
		return ferrors.ValidationError("activity section name must be a single token without '--'").
			WithContext("field", "sections.activity").Build()
	}
	return nil
}

func (cv *configurationValidator) validateWidgets() error {
	seen := make(map[string]struct{}, len(cv.config.Widgets.Extra))
	for i, w := range cv.config.Widgets.Extra {
		field := fmt.Sprintf("widgets.extra[%d]", i)
		if w.Name == "" {
			return ferrors.ValidationError("widget name is required").WithContext("field", field).Build()
		}
		if _, dup := seen[w.Name]; dup {
			return ferrors.ValidationError(fmt.Sprintf("duplicate widget name %q", w.Name)).WithContext("field", field).Build()
		}
		seen[w.Name] = struct{}{}
		if err := validateHTTPURL(w.URL); err != nil {
			return ferrors.ValidationError(fmt.Sprintf("invalid widget url: %v", err)).WithContext("field", field).Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateSchedule() error {
	if cv.config.Schedule.Interval < time.Minute {
		return ferrors.ValidationError("schedule interval must be at least 1m").
			WithContext("field", "schedule.interval").Build()
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
