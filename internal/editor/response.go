package editor

import (
	"bytes"
	"encoding/json"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// Response is the envelope every bridge endpoint returns.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// HasData reports whether the response carries a non-null data payload.
func (r Response) HasData() bool {
	trimmed := bytes.TrimSpace(r.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// DecodeData unmarshals the data payload into v.
func (r Response) DecodeData(v any) error {
	if !r.HasData() {
		return errors.NotFoundError("response has no data").Build()
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.WrapError(err, errors.CategoryEditor, "failed to decode response data").Build()
	}
	return nil
}

// Failed returns a failed Response carrying msg, used by callers that need to
// report a local failure in the same shape the bridge uses.
func Failed(msg string) Response {
	return Response{Success: false, Error: msg}
}
