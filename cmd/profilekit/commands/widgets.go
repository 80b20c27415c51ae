package commands

import (
	"context"
	"fmt"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/observability"
)

// WidgetsCmd implements the 'widgets' command.
type WidgetsCmd struct {
	Document string `short:"d" help:"Document to scan for embedded images (overrides document.path)" type:"path"`
	Strict   bool   `help:"Exit non-zero when any widget is not healthy"`
}

func (w *WidgetsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if w.Document != "" {
		cfg.Document.Path = w.Document
	}
	a := newApp(cfg, g)

	statuses := a.probeWidgets(observability.WithCommand(context.Background(), "widgets"))
	a.printWidgets(statuses)

	if !w.Strict {
		return nil
	}
	unhealthy := 0
	for _, s := range statuses {
		if !s.OK() {
			unhealthy++
		}
	}
	if unhealthy > 0 {
		return ferrors.UpstreamError(fmt.Sprintf("%d of %d widgets are not healthy", unhealthy, len(statuses))).Build()
	}
	return nil
}
