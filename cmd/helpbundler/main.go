package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/helpbundler/cmd/helpbundler/commands"
	"git.home.luguber.info/inful/helpbundler/internal/version"
)

func main() {
	// Load .env if present; production deployments set real env vars.
	_ = godotenv.Load()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("helpbundler"),
		kong.Description("Compile Markdown documentation into a self-contained HTML bundle."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
