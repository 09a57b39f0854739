package commands

import (
	"encoding/json"
	"fmt"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// HealthCmd checks that the editor bridge answers.
type HealthCmd struct {
	Modules bool `name:"modules" help:"Also list the modules the bridge exposes"`
}

func (c *HealthCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := g.requestContext()
	defer cancel()
	client := g.Client()

	resp, err := client.Health(ctx)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.EditorError("editor bridge reported unhealthy").
			WithContext("server_url", client.BaseURL()).
			WithContext("editor_error", resp.Error).
			Build()
	}
	if _, err := fmt.Fprintf(g.Out, "Editor bridge at %s is healthy\n", client.BaseURL()); err != nil {
		return err
	}
	if resp.HasData() {
		var pretty any
		if err := json.Unmarshal(resp.Data, &pretty); err == nil {
			data, _ := json.MarshalIndent(pretty, "", "  ")
			_, _ = fmt.Fprintln(g.Out, string(data))
		}
	}

	if !c.Modules {
		return nil
	}
	modules, err := client.Modules(ctx)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if _, err := fmt.Fprintln(g.Out, m); err != nil {
			return err
		}
	}
	return nil
}
