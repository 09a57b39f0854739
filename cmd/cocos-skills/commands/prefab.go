package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/libovin/cocos-skills/internal/blueprint"
	"github.com/libovin/cocos-skills/internal/eventstore"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/logfields"
	"github.com/libovin/cocos-skills/internal/prefab"
)

// PrefabCmd groups the prefab subcommands.
type PrefabCmd struct {
	Build  PrefabBuildCmd  `cmd:"" help:"Build a prefab from a YAML blueprint and save it"`
	Preset PrefabPresetCmd `cmd:"" help:"Create a prefab from a built-in preset"`
	Watch  PrefabWatchCmd  `cmd:"" help:"Rebuild and save a blueprint whenever it changes"`
}

// PrefabBuildCmd builds one blueprint.
type PrefabBuildCmd struct {
	Blueprint string `arg:"" type:"existingfile" help:"Blueprint YAML file"`
	URL       string `name:"url" help:"Destination asset URL (default: blueprint path or db://assets/prefabs/<name>.prefab)"`
	DryRun    bool   `name:"dry-run" help:"Print the prefab JSON instead of saving it"`
}

func (c *PrefabBuildCmd) Run(g *Global, _ *CLI) error {
	bp, err := blueprint.Load(c.Blueprint)
	if err != nil {
		return err
	}
	ctx, cancel := g.requestContext()
	defer cancel()
	return buildBlueprint(ctx, g, g.Client(), bp, c.URL, c.DryRun)
}

// PrefabPresetCmd creates one of the built-in prefab shapes.
type PrefabPresetCmd struct {
	Kind     string  `arg:"" enum:"empty,sprite,label,button" help:"Preset kind (empty, sprite, label, button)"`
	Name     string  `name:"name" required:"" help:"Prefab name"`
	URL      string  `name:"url" help:"Destination asset URL (default: db://assets/prefabs/<name>.prefab)"`
	Width    float64 `name:"width" help:"Width (default: 100, button 150)"`
	Height   float64 `name:"height" help:"Height (default: 100, button 50)"`
	Text     string  `name:"text" default:"Label" help:"Label text"`
	FontSize int     `name:"font-size" default:"40" help:"Label font size"`
	DryRun   bool    `name:"dry-run" help:"Print the prefab JSON instead of saving it"`
}

func (c *PrefabPresetCmd) Run(g *Global, _ *CLI) error {
	b, err := c.builder(g)
	if err != nil {
		return err
	}
	url := c.URL
	if url == "" {
		url = (&blueprint.Blueprint{Name: c.Name}).DefaultPath()
	}
	ctx, cancel := g.requestContext()
	defer cancel()
	return publish(ctx, g, g.Client(), b, url, c.DryRun)
}

func (c *PrefabPresetCmd) builder(g *Global) (*prefab.Builder, error) {
	opts := builderOptions(g)
	size := func(defW, defH float64) (float64, float64) {
		w, h := c.Width, c.Height
		if w == 0 {
			w = defW
		}
		if h == 0 {
			h = defH
		}
		return w, h
	}
	switch c.Kind {
	case "empty":
		return prefab.EmptyPrefab(c.Name, opts...), nil
	case "sprite":
		w, h := size(100, 100)
		return prefab.SpritePrefab(c.Name, w, h, nil, opts...), nil
	case "label":
		return prefab.LabelPrefab(c.Name, c.Text, c.FontSize, opts...), nil
	case "button":
		w, h := size(150, 50)
		return prefab.ButtonPrefab(c.Name, w, h, opts...), nil
	default:
		return nil, errors.ValidationError(fmt.Sprintf("unknown preset %q", c.Kind)).Build()
	}
}

func builderOptions(g *Global) []prefab.Option {
	opts := []prefab.Option{prefab.WithRecorder(g.Recorder)}
	if g.Config != nil {
		opts = append(opts, prefab.WithLayer(g.Config.Layer))
	}
	return opts
}

// buildBlueprint builds bp and publishes it to url, or to the blueprint's own
// destination when url is empty.
func buildBlueprint(ctx context.Context, g *Global, t prefab.Transport, bp *blueprint.Blueprint, url string, dryRun bool) error {
	if bp.Layer == 0 && g.Config != nil {
		bp.Layer = blueprint.Layer(g.Config.Layer)
	}
	b, err := bp.Build(prefab.WithRecorder(g.Recorder))
	if err != nil {
		return err
	}
	if url == "" {
		url = bp.DefaultPath()
	}
	return publish(ctx, g, t, b, url, dryRun)
}

// publish saves b at url, or prints it on a dry run, and records the attempt
// in the save history.
func publish(ctx context.Context, g *Global, t prefab.Transport, b *prefab.Builder, url string, dryRun bool) error {
	if dryRun {
		data, err := b.Bytes()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(g.Out, string(data))
		return err
	}

	res, err := b.Save(ctx, t, url)
	recordHistory(ctx, g, res, err)
	if err != nil {
		return err
	}

	if res.Refreshed {
		_, err = fmt.Fprintf(g.Out, "Saved %s (%d items)\n", res.Path, res.Items)
	} else {
		_, err = fmt.Fprintf(g.Out, "Saved %s (%d items, refresh failed)\n", res.Path, res.Items)
	}
	return err
}

func recordHistory(ctx context.Context, g *Global, res prefab.SaveResult, saveErr error) {
	store, err := g.OpenHistory()
	if err != nil {
		slog.Warn("Save history unavailable", logfields.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer func() { _ = store.Close() }()

	p := eventstore.SavePayload{
		RequestedPath: res.RequestedPath,
		ResolvedPath:  res.Path,
		Items:         res.Items,
		Success:       saveErr == nil,
	}
	if saveErr != nil {
		p.Error = saveErr.Error()
	}
	meta := map[string]string{"server_url": g.ServerURL}
	if err := eventstore.RecordSave(context.WithoutCancel(ctx), store, res.RequestedPath, p, meta); err != nil {
		slog.Warn("Failed to record save", logfields.DocumentID(res.RequestedPath), logfields.Error(err))
	}
}
