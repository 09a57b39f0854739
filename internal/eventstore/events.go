package eventstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// Save event types.
const (
	EventPrefabSaved      = "PrefabSaved"
	EventPrefabSaveFailed = "PrefabSaveFailed"
)

// SavePayload records one save attempt.
type SavePayload struct {
	RequestedPath string `json:"requested_path"`
	ResolvedPath  string `json:"resolved_path,omitempty"`
	Items         int    `json:"items"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

// NewSaveEvent builds a PrefabSaved or PrefabSaveFailed event depending on
// p.Success.
func NewSaveEvent(documentID string, p SavePayload) (*BaseEvent, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.EventStoreError("failed to marshal save payload").
			WithCause(err).
			WithContext("document_id", documentID).
			Build()
	}
	eventType := EventPrefabSaved
	if !p.Success {
		eventType = EventPrefabSaveFailed
	}
	return &BaseEvent{
		EventDocumentID: documentID,
		EventType:       eventType,
		EventTimestamp:  time.Now(),
		EventPayload:    payload,
	}, nil
}

// RecordSave appends a save event for documentID.
func RecordSave(ctx context.Context, store Store, documentID string, p SavePayload, metadata map[string]string) error {
	e, err := NewSaveEvent(documentID, p)
	if err != nil {
		return err
	}
	return store.Append(ctx, e.DocumentID(), e.Type(), e.Payload(), metadata)
}

// DecodeSavePayload reads the payload of a save event.
func DecodeSavePayload(e Event) (SavePayload, error) {
	var p SavePayload
	if err := json.Unmarshal(e.Payload(), &p); err != nil {
		return SavePayload{}, wrap(ErrUnmarshalPayloadFailed, err)
	}
	return p, nil
}
