package prefab

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
)

// sequentialIDs yields id-0, id-1, ...
func sequentialIDs() IDSource {
	n := 0
	return IDSourceFunc(func() string {
		id := fmt.Sprintf("id-%d", n)
		n++
		return id
	})
}

func newBox() *Builder {
	t := DefaultTransform()
	t.Width, t.Height = 80, 80
	return New("Box", WithIDSource(sequentialIDs())).
		AddTransform(t).
		AddSprite(SpriteOptions{})
}

func decode(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var doc []map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func refOf(t *testing.T, v any) int {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected reference object, got %T", v)
	id, ok := m["__id__"].(float64)
	require.True(t, ok)
	return int(id)
}

func TestBuilder_BoxLayout(t *testing.T) {
	b := newBox()
	require.Equal(t, 4, b.Len())
	require.NoError(t, b.Finalize())

	items := b.Items()
	require.Len(t, items, 7)
	wantTypes := []string{TypePrefab, TypeNode, TypeUITransform, TypeSprite, TypeCompPrefabInfo, TypeCompPrefabInfo, TypePrefabInfo}
	for i, it := range items {
		require.Equal(t, wantTypes[i], it.TypeName(), "item %d", i)
	}

	node := items[1].(*Node)
	require.Equal(t, []Ref{2, 3}, node.Components)
	require.Equal(t, Ref(6), node.Prefab)
	require.Equal(t, Ref(4), items[2].(Component).PrefabRef())
	require.Equal(t, Ref(5), items[3].(Component).PrefabRef())

	info := items[6].(*PrefabInfo)
	require.Equal(t, Ref(1), info.Root)
	require.Equal(t, Ref(0), info.Asset)
	require.Equal(t, "id-2", info.FileID)
	require.Equal(t, "id-0", items[4].(*CompPrefabInfo).FileID)
}

func TestBuilder_SerializedShape(t *testing.T) {
	data, err := newBox().Bytes()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"__type__\": \"cc.Prefab\""))
	require.False(t, strings.HasSuffix(string(data), "\n"))

	doc := decode(t, data)
	require.Len(t, doc, 7)

	asset := doc[0]
	require.Equal(t, "Box", asset["_name"])
	require.Equal(t, 1, refOf(t, asset["data"]))
	require.Equal(t, map[string]any{}, asset["__editorExtras__"])

	node := doc[1]
	require.Equal(t, "Box", node["_name"])
	require.Nil(t, node["_parent"])
	require.Equal(t, []any{}, node["_children"])
	require.Equal(t, float64(LayerUI), node["_layer"])
	require.Equal(t, 6, refOf(t, node["_prefab"]))

	transform := doc[2]
	require.Equal(t, 1, refOf(t, transform["node"]))
	require.Equal(t, 4, refOf(t, transform["__prefab"]))
	size := transform["_contentSize"].(map[string]any)
	require.Equal(t, "cc.Size", size["__type__"])
	require.Equal(t, float64(80), size["width"])

	sprite := doc[3]
	require.Nil(t, sprite["_spriteFrame"])
	require.Equal(t, float64(255), sprite["_color"].(map[string]any)["r"])

	info := doc[6]
	require.Nil(t, info["instance"])
	require.Nil(t, info["targetOverrides"])
	require.Nil(t, info["nestedPrefabInstanceRoots"])
}

func TestBuilder_ComponentHeaderOrder(t *testing.T) {
	data, err := New("Hdr", WithIDSource(sequentialIDs())).AddButton().Bytes()
	require.NoError(t, err)
	s := string(data)
	s = s[strings.Index(s, `"__type__": "cc.Button"`):]
	order := []string{`"__type__"`, `"_name"`, `"_objFlags"`, `"__editorExtras__"`, `"node"`, `"_enabled"`, `"__prefab"`, `"_clickEvents"`, `"_target"`, `"_id"`}
	pos := 0
	for _, key := range order {
		idx := strings.Index(s[pos:], key)
		require.GreaterOrEqual(t, idx, 0, "missing %s", key)
		pos += idx + len(key)
	}
}

func TestBuilder_NonASCIIVerbatim(t *testing.T) {
	l := DefaultLabel()
	l.Text = "开始游戏 <OK> & go"
	data, err := New("按钮", WithIDSource(sequentialIDs())).AddLabel(l).Bytes()
	require.NoError(t, err)
	require.Contains(t, string(data), `"_string": "开始游戏 <OK> & go"`)
	require.Contains(t, string(data), `"_name": "按钮"`)
}

func TestBuilder_FinalizeIdempotent(t *testing.T) {
	b := newBox()
	require.NoError(t, b.Finalize())
	first, err := b.Bytes()
	require.NoError(t, err)
	require.NoError(t, b.Finalize())
	second, err := b.Bytes()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 7, b.Len())
	require.Equal(t, StateSerialized, b.State())
}

func TestBuilder_AddAfterFinalizeRejected(t *testing.T) {
	b := newBox()
	require.NoError(t, b.Finalize())
	before := b.Len()

	b.AddButton()
	require.Equal(t, before, b.Len())
	require.Error(t, b.Err())
	require.True(t, errors.HasCategory(b.Err(), errors.CategoryDocument))
	require.ErrorIs(t, b.Err(), ErrFinalized)

	require.ErrorIs(t, b.Finalize(), b.Err())
	_, err := b.Bytes()
	require.Error(t, err)

	// later adds keep the first error
	first := b.Err()
	b.AddLabel(DefaultLabel())
	require.Same(t, first, b.Err())
}

func TestBuilder_ReferencesResolve(t *testing.T) {
	builds := map[string]*Builder{
		"empty":      New("Empty", WithIDSource(sequentialIDs())),
		"box":        newBox(),
		"everything": New("All", WithIDSource(sequentialIDs())).AddTransform(DefaultTransform()).AddWidget(DefaultWidget()).AddSprite(SpriteOptions{SpriteFrame: "abc@f9941"}).AddLabel(DefaultLabel()).AddButton(),
	}
	for name, b := range builds {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Finalize())
			items := b.Items()
			require.IsType(t, &Asset{}, items[0])
			require.IsType(t, &Node{}, items[1])
			require.IsType(t, &PrefabInfo{}, items[len(items)-1])

			seen := map[string]bool{}
			for i, it := range items {
				for _, r := range it.Refs() {
					require.GreaterOrEqual(t, int(r), 0, "item %d", i)
					require.Less(t, int(r), len(items), "item %d", i)
				}
				if c, ok := it.(Component); ok {
					require.Equal(t, Ref(1), c.Owner())
					require.IsType(t, &CompPrefabInfo{}, items[c.PrefabRef()])
				}
				if m, ok := it.(*CompPrefabInfo); ok {
					require.False(t, seen[m.FileID])
					seen[m.FileID] = true
				}
			}
		})
	}
}

func TestBuilder_ItemsIsACopy(t *testing.T) {
	b := newBox()
	items := b.Items()
	items[1].(*Node).Name = "Mutated"
	items[0] = &PrefabInfo{}
	require.Equal(t, "Box", b.Items()[1].(*Node).Name)
	require.IsType(t, &Asset{}, b.Items()[0])
}

func TestBuilder_Options(t *testing.T) {
	b := New("Prefab", WithNodeName("Root"), WithLayer(Layer2D))
	node := b.Items()[1].(*Node)
	require.Equal(t, "Root", node.Name)
	require.Equal(t, Layer2D, node.Layer)
	require.Equal(t, "Prefab", b.Name())

	require.Equal(t, LayerUI, New("x", WithLayer(0)).Items()[1].(*Node).Layer)
}

func TestBuilder_LabelLineHeight(t *testing.T) {
	b := New("L", WithIDSource(sequentialIDs())).
		AddLabel(LabelOptions{Text: "a", FontSize: 20}).
		AddLabel(LabelOptions{Text: "b", FontSize: 20, LineHeight: 24})
	items := b.Items()
	require.Equal(t, 40, items[2].(*Label).LineHeight)
	require.Equal(t, 24, items[3].(*Label).LineHeight)
	require.Equal(t, 20, items[2].(*Label).ActualFontSize)
}

func TestBuilder_DuplicateIDsRegenerated(t *testing.T) {
	ids := []string{"dup", "dup", "dup", "other", "third"}
	i := 0
	src := IDSourceFunc(func() string {
		id := ids[i%len(ids)]
		i++
		return id
	})
	b := New("D", WithIDSource(src)).AddTransform(DefaultTransform()).AddSprite(SpriteOptions{})
	require.NoError(t, b.Finalize())
	items := b.Items()
	require.Equal(t, "dup", items[4].(*CompPrefabInfo).FileID)
	require.Equal(t, "other", items[5].(*CompPrefabInfo).FileID)
	require.Equal(t, "third", items[6].(*PrefabInfo).FileID)
}

func TestBuilder_ExhaustedIDSource(t *testing.T) {
	b := New("X", WithIDSource(IDSourceFunc(func() string { return "same" }))).
		AddTransform(DefaultTransform())
	err := b.Finalize()
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryInternal))
	require.Equal(t, StateBuilding, b.State())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "building", StateBuilding.String())
	require.Equal(t, "finalized", StateFinalized.String())
	require.Equal(t, "serialized", StateSerialized.String())
}
