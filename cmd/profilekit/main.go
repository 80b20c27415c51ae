package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/profilekit/cmd/profilekit/commands"
	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("profilekit"),
		kong.Description("Keep the generated sections of a markdown profile README up to date."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(commands.NewGlobal()); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
