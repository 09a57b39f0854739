package metrics

import "time"

// SaveOutcome enumerates the result categories of a prefab save.
type SaveOutcome string

const (
	SaveSuccess        SaveOutcome = "success"
	SaveWriteFailed    SaveOutcome = "write_failed"
	SaveRefreshFailed  SaveOutcome = "refresh_failed"
	SaveStructuralFail SaveOutcome = "structural_error"
)

// Recorder defines observability hooks for editor requests and prefab saves.
type Recorder interface {
	ObserveRequestDuration(module, action string, d time.Duration, success bool)
	IncSaveOutcome(outcome SaveOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequestDuration(string, string, time.Duration, bool) {}
func (NoopRecorder) IncSaveOutcome(SaveOutcome)                                 {}
