package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/libovin/cocos-skills/internal/eventstore"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// HistoryCmd lists recent prefab saves.
type HistoryCmd struct {
	Hours   int  `name:"hours" default:"24" help:"How far back to look"`
	Summary bool `name:"summary" help:"Show one line per prefab instead of every attempt"`
}

func (c *HistoryCmd) Run(g *Global, _ *CLI) error {
	if c.Hours <= 0 {
		return errors.ValidationError("--hours must be positive").Build()
	}
	store, err := g.OpenHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.ConfigError("save history is disabled (history_db is empty)").Build()
	}
	defer func() { _ = store.Close() }()

	end := time.Now()
	events, err := store.GetRange(context.Background(), end.Add(-time.Duration(c.Hours)*time.Hour), end)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	if c.Summary {
		summaries, err := eventstore.SummarizeSaves(events)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(tw, "LAST ATTEMPT\tPREFAB\tATTEMPTS\tFAILURES\tLAST RESULT")
		for _, s := range summaries {
			result := "ok"
			if !s.LastSuccess {
				result = "failed: " + s.LastError
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				s.LastAttempt.Format(time.DateTime), s.LastPath, s.Attempts, s.Failures, result)
		}
		return tw.Flush()
	}

	_, _ = fmt.Fprintln(tw, "TIME\tEVENT\tPATH\tITEMS\tERROR")
	for _, e := range events {
		p, err := eventstore.DecodeSavePayload(e)
		if err != nil {
			return err
		}
		path := p.ResolvedPath
		if path == "" {
			path = p.RequestedPath
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			e.Timestamp().Format(time.DateTime), e.Type(), path, p.Items, p.Error)
	}
	return tw.Flush()
}
