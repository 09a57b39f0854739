package prefab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func componentTypes(b *Builder) []string {
	var out []string
	for _, it := range b.Items() {
		if c, ok := it.(Component); ok {
			out = append(out, c.TypeName())
		}
	}
	return out
}

func TestPresets(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b := EmptyPrefab("E")
		require.Equal(t, []string{TypeUITransform}, componentTypes(b))
		tr := b.Items()[2].(*UITransform)
		require.Equal(t, Size{100, 100}, tr.ContentSize)
		require.Equal(t, Vec2{0.5, 0.5}, tr.AnchorPoint)
	})

	t.Run("sprite", func(t *testing.T) {
		red := Color{255, 0, 0, 255}
		b := SpritePrefab("S", 80, 60, &red)
		require.Equal(t, []string{TypeUITransform, TypeSprite}, componentTypes(b))
		require.Equal(t, Size{80, 60}, b.Items()[2].(*UITransform).ContentSize)
		require.Equal(t, red, b.Items()[3].(*Sprite).Color)
		require.Equal(t, White, SpritePrefab("W", 1, 1, nil).Items()[3].(*Sprite).Color)
	})

	t.Run("label", func(t *testing.T) {
		b := LabelPrefab("L", "Hello", 32, WithLayer(Layer2D))
		require.Equal(t, []string{TypeUITransform, TypeLabel}, componentTypes(b))
		require.Equal(t, Size{200, 50}, b.Items()[2].(*UITransform).ContentSize)
		l := b.Items()[3].(*Label)
		require.Equal(t, "Hello", l.String)
		require.Equal(t, 32, l.FontSize)
		require.Equal(t, 64, l.LineHeight)
		require.Equal(t, Layer2D, b.Items()[1].(*Node).Layer)
	})

	t.Run("button", func(t *testing.T) {
		b := ButtonPrefab("B", 150, 50)
		require.Equal(t, []string{TypeUITransform, TypeSprite, TypeButton}, componentTypes(b))
		require.Equal(t, ButtonColor, b.Items()[3].(*Sprite).Color)
		btn := b.Items()[4].(*Button)
		require.True(t, btn.Interactable)
		require.Equal(t, 2, btn.Transition)
		require.Equal(t, Color{120, 120, 120, 200}, btn.DisabledColor)

		require.NoError(t, b.Finalize())
		require.Equal(t, 9, b.Len())
	})
}

func TestSpriteFrameReference(t *testing.T) {
	b := New("F").AddSprite(SpriteOptions{SpriteFrame: "9d7f4c2e-1111-2222-3333-444455556666@f9941"})
	s := b.Items()[2].(*Sprite)
	require.Equal(t, &AssetRef{UUID: "9d7f4c2e-1111-2222-3333-444455556666@f9941", ExpectedType: SpriteFrameType}, s.SpriteFrame)
}
