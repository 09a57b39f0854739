package prefab

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/libovin/cocos-skills/internal/editor"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/logfields"
	"github.com/libovin/cocos-skills/internal/metrics"
)

// Transport sends one editor message. *editor.Client satisfies it.
type Transport interface {
	Execute(ctx context.Context, module, action string, params ...any) (editor.Response, error)
}

const assetDB = "asset-db"

// SaveResult describes a completed Save.
type SaveResult struct {
	// RequestedPath is the path the caller asked for.
	RequestedPath string
	// Path is the path the document was written to.
	Path string
	// Items is the number of records written.
	Items int
	// Response is the editor's answer to the write request.
	Response editor.Response
	// Refreshed reports whether the follow-up refresh succeeded.
	Refreshed bool
}

// Save writes the document into the editor's asset database at path. The
// editor is first asked for a free path; if it cannot provide one the
// requested path is used as is. A rejected write is returned as an error and
// skips the refresh. A failed refresh is only logged.
func (b *Builder) Save(ctx context.Context, t Transport, path string) (SaveResult, error) {
	result := SaveResult{RequestedPath: path, Path: path}
	if b.err != nil {
		b.recorder.IncSaveOutcome(metrics.SaveStructuralFail)
		return result, b.err
	}

	result.Path = resolvePath(ctx, t, path)

	content, err := b.Bytes()
	if err != nil {
		b.recorder.IncSaveOutcome(metrics.SaveStructuralFail)
		return result, err
	}
	result.Items = b.Len()

	resp, err := t.Execute(ctx, assetDB, "create-asset", result.Path, string(content))
	if err != nil {
		b.recorder.IncSaveOutcome(metrics.SaveWriteFailed)
		return result, err
	}
	result.Response = resp
	if !resp.Success {
		b.recorder.IncSaveOutcome(metrics.SaveWriteFailed)
		return result, errors.EditorError("editor rejected prefab write").
			WithContext("path", result.Path).
			WithContext("editor_error", resp.Error).
			Build()
	}

	refresh, err := t.Execute(ctx, assetDB, "refresh-asset", result.Path)
	switch {
	case err != nil:
		slog.Warn("Prefab written but refresh failed", logfields.ResolvedPath(result.Path), logfields.Error(err))
	case !refresh.Success:
		slog.Warn("Prefab written but refresh was rejected", logfields.ResolvedPath(result.Path), slog.String("editor_error", refresh.Error))
	default:
		result.Refreshed = true
	}
	if result.Refreshed {
		b.recorder.IncSaveOutcome(metrics.SaveSuccess)
	} else {
		b.recorder.IncSaveOutcome(metrics.SaveRefreshFailed)
	}

	slog.Info("Prefab saved",
		logfields.Path(path),
		logfields.ResolvedPath(result.Path),
		logfields.Items(result.Items))
	return result, nil
}

// resolvePath asks the editor for an unused path near path. Any failure falls
// back to path.
func resolvePath(ctx context.Context, t Transport, path string) string {
	resp, err := t.Execute(ctx, assetDB, "generate-available-url", path)
	if err != nil {
		slog.Debug("Could not resolve available path", logfields.Path(path), logfields.Error(err))
		return path
	}
	if !resp.Success || !resp.HasData() {
		slog.Debug("Editor did not provide an available path", logfields.Path(path), slog.String("editor_error", resp.Error))
		return path
	}
	if resolved := availableURL(resp.Data); resolved != "" {
		return resolved
	}
	return path
}

// availableURL accepts either a bare string or an object carrying the path.
func availableURL(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var obj struct {
		AvailableURL string `json:"availableUrl"`
		URL          string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.AvailableURL != "" {
			return obj.AvailableURL
		}
		return obj.URL
	}
	return ""
}
