// Package research holds the hand-authored research data shown on the profile
// and renders it into the research status section and the activity list.
package research

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

//go:embed default_research.yaml
var defaultData []byte

// Data is the complete research data set.
type Data struct {
	ActiveProjects     []Project     `yaml:"active_projects"`
	RecentAchievements []Achievement `yaml:"recent_achievements"`
	Innovations        []Innovation  `yaml:"innovations"`
	Publications       []Publication `yaml:"publications"`
}

// Project is an ongoing research project.
type Project struct {
	Title    string `yaml:"title"`
	Status   string `yaml:"status"`
	Progress string `yaml:"progress"`
}

// Achievement is a completed milestone.
type Achievement struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date"`
	Impact string `yaml:"impact"`
}

// Innovation is a technique and its measured effect.
type Innovation struct {
	Name        string `yaml:"name"`
	Improvement string `yaml:"improvement"`
	Status      string `yaml:"status"`
}

// Publication is a paper somewhere in the publishing pipeline.
type Publication struct {
	Title  string `yaml:"title"`
	Status string `yaml:"status"`
}

// Default returns the built-in data set.
func Default() *Data {
	d, err := Parse(defaultData)
	if err != nil {
		panic("research: invalid built-in data: " + err.Error())
	}
	return d
}

// Load reads a data set from path. An empty path returns Default().
func Load(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read research data").
			WithContext("path", path).
			Build()
	}
	d, err := Parse(raw)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return d, nil
}

// Parse decodes and validates a YAML data set. Unknown keys are rejected.
func Parse(raw []byte) (*Data, error) {
	var d Data
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "failed to parse research data").Build()
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks that every entry carries the fields the renderers need.
func (d *Data) Validate() error {
	for i, p := range d.ActiveProjects {
		if p.Title == "" || p.Status == "" {
			return ferrors.ValidationError("research project needs a title and a status").
				WithContext("index", i).
				Build()
		}
	}
	for i, a := range d.RecentAchievements {
		if a.Title == "" {
			return ferrors.ValidationError("research achievement needs a title").WithContext("index", i).Build()
		}
	}
	for i, in := range d.Innovations {
		if in.Name == "" {
			return ferrors.ValidationError("innovation needs a name").WithContext("index", i).Build()
		}
	}
	for i, p := range d.Publications {
		if p.Title == "" {
			return ferrors.ValidationError("publication needs a title").WithContext("index", i).Build()
		}
	}
	return nil
}

// DefaultYAML returns the built-in data set in its YAML form, suitable as a
// starting point for a custom data file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultData...)
}
