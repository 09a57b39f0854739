package prefab

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libovin/cocos-skills/internal/editor"
	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/metrics"
)

type call struct {
	action string
	params []any
}

// fakeTransport answers asset-db actions from a table.
type fakeTransport struct {
	calls     []call
	responses map[string]editor.Response
	errs      map[string]error
}

func (f *fakeTransport) Execute(_ context.Context, module, action string, params ...any) (editor.Response, error) {
	if module != "asset-db" {
		return editor.Response{}, errors.ValidationError("unexpected module").Build()
	}
	f.calls = append(f.calls, call{action, params})
	if err := f.errs[action]; err != nil {
		return editor.Response{}, err
	}
	if resp, ok := f.responses[action]; ok {
		return resp, nil
	}
	return editor.Response{Success: true}, nil
}

func (f *fakeTransport) actions() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.action
	}
	return out
}

type outcomeRecorder struct{ outcomes []metrics.SaveOutcome }

func (r *outcomeRecorder) ObserveRequestDuration(string, string, time.Duration, bool) {}
func (r *outcomeRecorder) IncSaveOutcome(o metrics.SaveOutcome) {
	r.outcomes = append(r.outcomes, o)
}

func raw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

const boxPath = "db://assets/prefabs/Box.prefab"

func TestSave_ResolvedPath(t *testing.T) {
	tests := []struct {
		name string
		data json.RawMessage
		want string
	}{
		{"bare string", raw("db://assets/prefabs/Box-001.prefab"), "db://assets/prefabs/Box-001.prefab"},
		{"object", raw(map[string]string{"availableUrl": "db://assets/prefabs/Box-002.prefab"}), "db://assets/prefabs/Box-002.prefab"},
		{"null data", nil, boxPath},
		{"unexpected shape", raw(42), boxPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{responses: map[string]editor.Response{
				"generate-available-url": {Success: true, Data: tt.data},
				"create-asset":           {Success: true, Data: raw(map[string]string{"uuid": "u1"})},
			}}
			res, err := newBox().Save(context.Background(), tr, boxPath)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Path)
			require.Equal(t, boxPath, res.RequestedPath)
			require.Equal(t, []string{"generate-available-url", "create-asset", "refresh-asset"}, tr.actions())
			require.Equal(t, []any{boxPath}, tr.calls[0].params)
			require.Equal(t, tt.want, tr.calls[1].params[0])
			require.Equal(t, []any{tt.want}, tr.calls[2].params)
			require.True(t, res.Refreshed)
			require.True(t, res.Response.Success)
			require.Equal(t, 7, res.Items)
		})
	}
}

func TestSave_WritesSerializedDocument(t *testing.T) {
	tr := &fakeTransport{}
	b := newBox()
	_, err := b.Save(context.Background(), tr, boxPath)
	require.NoError(t, err)

	content, ok := tr.calls[1].params[1].(string)
	require.True(t, ok)
	expected, err := b.Bytes()
	require.NoError(t, err)
	require.Equal(t, string(expected), content)
	require.Len(t, decode(t, []byte(content)), 7)
	require.Equal(t, StateSerialized, b.State())
}

func TestSave_ResolveFailureFallsBack(t *testing.T) {
	for name, tr := range map[string]*fakeTransport{
		"rejected":    {responses: map[string]editor.Response{"generate-available-url": editor.Failed("no")}},
		"unreachable": {errs: map[string]error{"generate-available-url": errors.NetworkError("down").Build()}},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := newBox().Save(context.Background(), tr, boxPath)
			require.NoError(t, err)
			require.Equal(t, boxPath, res.Path)
			require.Equal(t, boxPath, tr.calls[1].params[0])
		})
	}
}

func TestSave_WriteFailureSkipsRefresh(t *testing.T) {
	rec := &outcomeRecorder{}
	tr := &fakeTransport{responses: map[string]editor.Response{"create-asset": editor.Failed("disk full")}}
	res, err := New("Box", WithIDSource(sequentialIDs()), WithRecorder(rec)).
		AddTransform(DefaultTransform()).
		Save(context.Background(), tr, boxPath)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryEditor))
	require.False(t, res.Response.Success)
	require.Equal(t, "disk full", res.Response.Error)
	require.Equal(t, []string{"generate-available-url", "create-asset"}, tr.actions())
	require.Equal(t, []metrics.SaveOutcome{metrics.SaveWriteFailed}, rec.outcomes)
}

func TestSave_WriteTransportError(t *testing.T) {
	tr := &fakeTransport{errs: map[string]error{"create-asset": errors.NetworkError("down").Build()}}
	_, err := newBox().Save(context.Background(), tr, boxPath)
	require.True(t, errors.HasCategory(err, errors.CategoryNetwork))
	require.Equal(t, []string{"generate-available-url", "create-asset"}, tr.actions())
}

func TestSave_RefreshFailureIsNotFatal(t *testing.T) {
	rec := &outcomeRecorder{}
	tr := &fakeTransport{responses: map[string]editor.Response{"refresh-asset": editor.Failed("busy")}}
	res, err := New("Box", WithIDSource(sequentialIDs()), WithRecorder(rec)).
		AddTransform(DefaultTransform()).
		Save(context.Background(), tr, boxPath)
	require.NoError(t, err)
	require.True(t, res.Response.Success)
	require.False(t, res.Refreshed)
	require.Equal(t, []metrics.SaveOutcome{metrics.SaveRefreshFailed}, rec.outcomes)
}

func TestSave_StructuralErrorSendsNothing(t *testing.T) {
	rec := &outcomeRecorder{}
	b := New("Box", WithIDSource(sequentialIDs()), WithRecorder(rec)).AddTransform(DefaultTransform())
	require.NoError(t, b.Finalize())
	b.AddSprite(SpriteOptions{})

	tr := &fakeTransport{}
	_, err := b.Save(context.Background(), tr, boxPath)
	require.True(t, errors.HasCategory(err, errors.CategoryDocument))
	require.Empty(t, tr.calls)
	require.Equal(t, []metrics.SaveOutcome{metrics.SaveStructuralFail}, rec.outcomes)
}

func TestSave_TwiceWritesSameDocument(t *testing.T) {
	b := newBox()
	tr := &fakeTransport{}
	_, err := b.Save(context.Background(), tr, boxPath)
	require.NoError(t, err)
	_, err = b.Save(context.Background(), tr, boxPath)
	require.NoError(t, err)
	require.Equal(t, tr.calls[1].params[1], tr.calls[4].params[1])
}
