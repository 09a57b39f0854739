package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/libovin/cocos-skills/internal/blueprint"
	"github.com/libovin/cocos-skills/internal/logfields"
)

// PrefabWatchCmd rebuilds a blueprint on every change until interrupted.
type PrefabWatchCmd struct {
	Blueprint string `arg:"" type:"existingfile" help:"Blueprint YAML file"`
	URL       string `name:"url" help:"Destination asset URL"`
}

func (c *PrefabWatchCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := g.Client()
	rebuild := func(ctx context.Context, bp *blueprint.Blueprint) error {
		return buildBlueprint(ctx, g, client, bp, c.URL, false)
	}

	// Publish the current state once before waiting for changes.
	bp, err := blueprint.Load(c.Blueprint)
	if err != nil {
		return err
	}
	if err := rebuild(ctx, bp); err != nil {
		slog.Error("Initial build failed; waiting for changes", logfields.Path(c.Blueprint), logfields.Error(err))
	}

	w, err := blueprint.NewWatcher(c.Blueprint, blueprint.DefaultDebounce, rebuild)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
