package commands

import (
	"errors"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/profilekit/internal/config"
	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/research"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing files"`
	Output string `short:"o" name:"output" help:"Directory to write profilekit.yaml and research.yaml into" type:"path"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfgPath := root.Config
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, config.DefaultPath)
	}
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	return RunInit(g, cfgPath, i.Force)
}

// RunInit writes the example configuration and, next to it, the research
// data file it references.
func RunInit(g *Global, configPath string, force bool) error {
	a := &app{g: g}
	a.printf("Initializing profilekit\n")
	a.printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		a.printf("Initialization failed\n")
		return err
	}

	dataPath := filepath.Join(filepath.Dir(configPath), "research.yaml")
	if _, err := os.Stat(dataPath); err == nil && !force {
		a.printf("Keeping existing research data %s\n", dataPath)
	} else if err == nil || errors.Is(err, os.ErrNotExist) {
		a.printf("Writing research data to %s\n", dataPath)
		if err := os.WriteFile(dataPath, research.DefaultYAML(), 0o644); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write research data").
				WithContext("path", dataPath).Build()
		}
	}
	a.printf("initialized successfully\n")
	return nil
}
