package eventstore

import (
	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// Sentinel errors for history store operations. Returned errors carry the
// underlying cause and match these with errors.Is.
var (
	// ErrDatabaseOpenFailed indicates the SQLite database could not be opened.
	ErrDatabaseOpenFailed = errors.EventStoreError("could not open event store database").Build()

	// ErrInitializeSchemaFailed indicates the database schema could not be initialized.
	ErrInitializeSchemaFailed = errors.EventStoreError("failed to initialize event store schema").Build()

	// ErrEventAppendFailed indicates appending an event failed.
	ErrEventAppendFailed = errors.EventStoreError("failed to append event to store").Build()

	// ErrEventQueryFailed indicates querying events failed.
	ErrEventQueryFailed = errors.EventStoreError("failed to query events from store").Build()

	// ErrEventScanFailed indicates scanning event rows failed.
	ErrEventScanFailed = errors.EventStoreError("failed to scan event rows").Build()

	// ErrMarshalPayloadFailed indicates JSON marshaling of event payload failed.
	ErrMarshalPayloadFailed = errors.EventStoreError("failed to marshal event payload").Build()

	// ErrUnmarshalPayloadFailed indicates JSON unmarshaling of event payload failed.
	ErrUnmarshalPayloadFailed = errors.EventStoreError("failed to unmarshal event payload").Build()
)

func wrap(sentinel *errors.ClassifiedError, cause error) error {
	return errors.WrapError(cause, sentinel.Category(), sentinel.Message()).Build()
}
