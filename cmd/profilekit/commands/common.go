package commands

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/profilekit/internal/config"
)

// Global carries process-wide dependencies shared by every command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

// NewGlobal returns the dependencies of a real process.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout, Stderr: os.Stderr, Now: time.Now}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (profilekit.yaml is used when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Metrics  MetricsCmd  `cmd:"" help:"Refresh the system metrics section and check widget health"`
	Research ResearchCmd `cmd:"" help:"Refresh the research status section and the activity list"`
	Update   UpdateCmd   `cmd:"" help:"Refresh every generated section in one pass"`
	Widgets  WidgetsCmd  `cmd:"" help:"Check that the images embedded in the document respond"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration and research data file"`
	Schedule ScheduleCmd `cmd:"" help:"Keep the document updated on an interval and when research data changes"`
}

// AfterApply runs after flag parsing; sets up logging until a configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig loads the configuration and switches logging to its settings.
func (c *CLI) LoadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logging.NewLogger(g.Stderr, c.Verbose))
	return cfg, nil
}

// UpdateFlags are shared by the commands that rewrite the document.
type UpdateFlags struct {
	Document string `short:"d" help:"Document to update (overrides document.path)" type:"path"`
	Commit   bool   `help:"Commit the document with git when it changed"`
}

func (f UpdateFlags) apply(cfg *config.Config) {
	if f.Document != "" {
		cfg.Document.Path = f.Document
	}
}
