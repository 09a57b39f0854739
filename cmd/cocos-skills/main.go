package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/libovin/cocos-skills/cmd/cocos-skills/commands"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}

	ctx := kong.Parse(&cli,
		kong.Name("cocos-skills"),
		kong.Description("Build and save Cocos Creator prefabs through the editor HTTP bridge."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := ctx.Run(global, &cli)
	global.Close()
	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
