package commands

import (
	"encoding/json"
	"fmt"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// ExecCmd sends an arbitrary editor message.
type ExecCmd struct {
	Module string   `arg:"" help:"Editor module (e.g. scene, asset-db)"`
	Action string   `arg:"" help:"Action name (e.g. query-node-tree)"`
	Params []string `arg:"" optional:"" help:"Parameters; each is parsed as JSON when valid, otherwise sent as a string"`
}

func (c *ExecCmd) Run(g *Global, _ *CLI) error {
	ctx, cancel := g.requestContext()
	defer cancel()

	resp, err := g.Client().Execute(ctx, c.Module, c.Action, parseParams(c.Params)...)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return errors.InternalError("failed to encode response").WithCause(err).Build()
	}
	if _, err := fmt.Fprintln(g.Out, string(out)); err != nil {
		return err
	}
	if !resp.Success {
		return errors.EditorError("editor rejected request").
			WithContext("module", c.Module).
			WithContext("action", c.Action).
			WithContext("editor_error", resp.Error).
			Build()
	}
	return nil
}

// parseParams decodes each argument as JSON, keeping it as a plain string
// when it is not valid JSON.
func parseParams(args []string) []any {
	params := make([]any, 0, len(args))
	for _, a := range args {
		var v any
		if err := json.Unmarshal([]byte(a), &v); err == nil {
			params = append(params, v)
			continue
		}
		params = append(params, a)
	}
	return params
}
