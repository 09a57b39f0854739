package prefab

import (
	"encoding/json"
	"strconv"
)

// Layers used by 2D/UI prefabs.
const (
	LayerUI = 1 << 30 // 1073741824
	Layer2D = 1 << 25 // 33554432
)

// Ref is a positional reference into the document array.
type Ref int

// unresolved marks a reference that Finalize has not patched yet.
const unresolved Ref = -1

// MarshalJSON renders the reference in Cocos form.
func (r Ref) MarshalJSON() ([]byte, error) {
	return []byte(`{"__id__":` + strconv.Itoa(int(r)) + `}`), nil
}

// editorExtras always serializes as an empty object.
type editorExtras struct{}

// Vec2 is a cc.Vec2.
type Vec2 struct{ X, Y float64 }

func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"__type__"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	}{"cc.Vec2", v.X, v.Y})
}

// Vec3 is a cc.Vec3.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"__type__"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
		Z    float64 `json:"z"`
	}{"cc.Vec3", v.X, v.Y, v.Z})
}

// Quat is a cc.Quat.
type Quat struct{ X, Y, Z, W float64 }

func (q Quat) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"__type__"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
		Z    float64 `json:"z"`
		W    float64 `json:"w"`
	}{"cc.Quat", q.X, q.Y, q.Z, q.W})
}

// Size is a cc.Size.
type Size struct{ Width, Height float64 }

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string  `json:"__type__"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}{"cc.Size", s.Width, s.Height})
}

// Color is an RGBA cc.Color.
type Color struct{ R, G, B, A uint8 }

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"__type__"`
		R    uint8  `json:"r"`
		G    uint8  `json:"g"`
		B    uint8  `json:"b"`
		A    uint8  `json:"a"`
	}{"cc.Color", c.R, c.G, c.B, c.A})
}

// Common colors.
var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
)

// AssetRef points at an asset by UUID, such as a sprite frame.
type AssetRef struct {
	UUID         string `json:"__uuid__"`
	ExpectedType string `json:"__expectedType__,omitempty"`
}
