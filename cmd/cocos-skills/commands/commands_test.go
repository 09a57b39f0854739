package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libovin/cocos-skills/internal/blueprint"
	"github.com/libovin/cocos-skills/internal/config"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/metrics"
	"github.com/libovin/cocos-skills/internal/prefab"
)

// fakeEditor records bridge calls and answers from a table keyed by action.
type fakeEditor struct {
	mu      sync.Mutex
	actions []string
	params  [][]json.RawMessage
	answers map[string]map[string]any
}

func (f *fakeEditor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	var body struct {
		Params []json.RawMessage `json:"params"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.actions = append(f.actions, action)
	f.params = append(f.params, body.Params)
	answer, ok := f.answers[action]
	f.mu.Unlock()
	if !ok {
		answer = map[string]any{"success": true}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(answer)
}

func newGlobal(t *testing.T, serverURL string) (*Global, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.HistoryDB = filepath.Join(t.TempDir(), "history.db")
	out := &bytes.Buffer{}
	return &Global{Config: cfg, ServerURL: serverURL, Recorder: metrics.NoopRecorder{}, Out: out}, out
}

func TestPresetDryRun(t *testing.T) {
	g, out := newGlobal(t, "http://127.0.0.1:1")
	cmd := &PrefabPresetCmd{Kind: "button", Name: "Play", Text: "Label", FontSize: 40, DryRun: true}
	require.NoError(t, cmd.Run(g, nil))

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc, 9)
	require.Equal(t, "cc.Button", doc[4]["__type__"])
	size := doc[2]["_contentSize"].(map[string]any)
	require.Equal(t, 150.0, size["width"])
	require.Equal(t, 50.0, size["height"])
}

func TestPresetBuilderSizes(t *testing.T) {
	g, _ := newGlobal(t, "")
	b, err := (&PrefabPresetCmd{Kind: "sprite", Name: "S", Width: 64}).builder(g)
	require.NoError(t, err)
	require.Equal(t, prefab.Size{Width: 64, Height: 100}, b.Items()[2].(*prefab.UITransform).ContentSize)

	b, err = (&PrefabPresetCmd{Kind: "label", Name: "L", Text: "Hi", FontSize: 18}).builder(g)
	require.NoError(t, err)
	require.Equal(t, "Hi", b.Items()[3].(*prefab.Label).String)

	_, err = (&PrefabPresetCmd{Kind: "particle", Name: "P"}).builder(g)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestBuildBlueprintSavesAndRecords(t *testing.T) {
	fe := &fakeEditor{answers: map[string]map[string]any{
		"generate-available-url": {"success": true, "data": "db://assets/prefabs/Box-001.prefab"},
	}}
	srv := httptest.NewServer(fe)
	defer srv.Close()

	g, out := newGlobal(t, srv.URL)
	g.Config.Layer = prefab.Layer2D
	bp, err := blueprint.Parse([]byte("name: Box\ncomponents:\n  - type: transform\n  - type: sprite\n"))
	require.NoError(t, err)

	require.NoError(t, buildBlueprint(context.Background(), g, g.Client(), bp, "", false))
	require.Equal(t, []string{"generate-available-url", "create-asset", "refresh-asset"}, fe.actions)
	require.JSONEq(t, `"db://assets/prefabs/Box.prefab"`, string(fe.params[0][0]))
	require.JSONEq(t, `"db://assets/prefabs/Box-001.prefab"`, string(fe.params[1][0]))
	require.Contains(t, out.String(), "Saved db://assets/prefabs/Box-001.prefab (7 items)")

	var content string
	require.NoError(t, json.Unmarshal(fe.params[1][1], &content))
	require.Contains(t, content, `"_layer": 33554432`)

	out.Reset()
	require.NoError(t, (&HistoryCmd{Hours: 1}).Run(g, nil))
	require.Contains(t, out.String(), "PrefabSaved")
	require.Contains(t, out.String(), "db://assets/prefabs/Box-001.prefab")
}

func TestPublishWriteFailureRecorded(t *testing.T) {
	fe := &fakeEditor{answers: map[string]map[string]any{
		"create-asset": {"success": false, "error": "read-only"},
	}}
	srv := httptest.NewServer(fe)
	defer srv.Close()

	g, out := newGlobal(t, srv.URL)
	err := publish(context.Background(), g, g.Client(), prefab.EmptyPrefab("E"), "db://assets/E.prefab", false)
	require.True(t, errors.HasCategory(err, errors.CategoryEditor))
	require.Equal(t, []string{"generate-available-url", "create-asset"}, fe.actions)

	require.NoError(t, (&HistoryCmd{Hours: 1, Summary: true}).Run(g, nil))
	require.Contains(t, out.String(), "failed:")
	require.Contains(t, out.String(), "db://assets/E.prefab")
}

func TestHistoryDisabled(t *testing.T) {
	g, _ := newGlobal(t, "")
	g.Config.HistoryDB = ""
	err := (&HistoryCmd{Hours: 24}).Run(g, nil)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestExec(t *testing.T) {
	fe := &fakeEditor{answers: map[string]map[string]any{
		"query-node":  {"success": true, "data": map[string]any{"name": "Canvas"}},
		"query-dirty": {"success": false, "error": "scene not open"},
	}}
	srv := httptest.NewServer(fe)
	defer srv.Close()
	g, out := newGlobal(t, srv.URL)

	require.NoError(t, (&ExecCmd{Module: "scene", Action: "query-node", Params: []string{"abc-uuid", `{"deep":true}`, "3"}}).Run(g, nil))
	require.Contains(t, out.String(), `"name": "Canvas"`)
	require.JSONEq(t, `"abc-uuid"`, string(fe.params[0][0]))
	require.JSONEq(t, `{"deep":true}`, string(fe.params[0][1]))
	require.JSONEq(t, `3`, string(fe.params[0][2]))

	err := (&ExecCmd{Module: "scene", Action: "query-dirty"}).Run(g, nil)
	require.True(t, errors.HasCategory(err, errors.CategoryEditor))
}

func TestParseParams(t *testing.T) {
	got := parseParams([]string{"db://assets/a.prefab", "true", "[1,2]", "null", "{broken"})
	require.Equal(t, []any{"db://assets/a.prefab", true, []any{1.0, 2.0}, nil, "{broken"}, got)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/server/health":
			_, _ = w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`))
		case "/api/modules":
			_, _ = w.Write([]byte(`{"success":true,"data":["scene","asset-db"]}`))
		}
	}))
	defer srv.Close()
	g, out := newGlobal(t, srv.URL)

	require.NoError(t, (&HealthCmd{Modules: true}).Run(g, nil))
	require.Contains(t, out.String(), "is healthy")
	require.Contains(t, out.String(), "asset-db")
}
