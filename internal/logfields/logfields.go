package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath         = "path"
	KeyResolvedPath = "resolved_path"
	KeyModule       = "module"
	KeyAction       = "action"
	KeyComponent    = "component"
	KeyItems        = "items"
	KeyDocumentID   = "document_id"
	KeyServerURL    = "server_url"
	KeyStatus       = "status"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func ResolvedPath(p string) slog.Attr { return slog.String(KeyResolvedPath, p) }
func Module(m string) slog.Attr       { return slog.String(KeyModule, m) }
func Action(a string) slog.Attr       { return slog.String(KeyAction, a) }
func Component(c string) slog.Attr    { return slog.String(KeyComponent, c) }
func Items(n int) slog.Attr           { return slog.Int(KeyItems, n) }
func DocumentID(id string) slog.Attr  { return slog.String(KeyDocumentID, id) }
func ServerURL(u string) slog.Attr    { return slog.String(KeyServerURL, u) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
