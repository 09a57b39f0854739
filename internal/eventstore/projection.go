// Package eventstore keeps an append-only history of prefab save attempts.
package eventstore

import (
	"slices"
	"time"
)

// SaveSummary is a read model of all save attempts for one document.
type SaveSummary struct {
	DocumentID   string    `json:"document_id"`
	Attempts     int       `json:"attempts"`
	Failures     int       `json:"failures"`
	LastPath     string    `json:"last_path,omitempty"`
	LastSuccess  bool      `json:"last_success"`
	LastError    string    `json:"last_error,omitempty"`
	LastAttempt  time.Time `json:"last_attempt"`
	LastItems    int       `json:"last_items"`
	FirstAttempt time.Time `json:"first_attempt"`
}

// SummarizeSaves folds save events into one summary per document, most
// recently attempted first. Events of other types are ignored.
func SummarizeSaves(events []Event) ([]SaveSummary, error) {
	byDoc := make(map[string]*SaveSummary)
	for _, e := range events {
		if e.Type() != EventPrefabSaved && e.Type() != EventPrefabSaveFailed {
			continue
		}
		p, err := DecodeSavePayload(e)
		if err != nil {
			return nil, err
		}
		s, ok := byDoc[e.DocumentID()]
		if !ok {
			s = &SaveSummary{DocumentID: e.DocumentID(), FirstAttempt: e.Timestamp()}
			byDoc[e.DocumentID()] = s
		}
		s.Attempts++
		if !p.Success {
			s.Failures++
		}
		s.LastSuccess = p.Success
		s.LastError = p.Error
		s.LastItems = p.Items
		s.LastAttempt = e.Timestamp()
		s.LastPath = p.ResolvedPath
		if s.LastPath == "" {
			s.LastPath = p.RequestedPath
		}
	}

	out := make([]SaveSummary, 0, len(byDoc))
	for _, s := range byDoc {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b SaveSummary) int {
		if c := b.LastAttempt.Compare(a.LastAttempt); c != 0 {
			return c
		}
		if a.DocumentID < b.DocumentID {
			return -1
		}
		if a.DocumentID > b.DocumentID {
			return 1
		}
		return 0
	})
	return out, nil
}
