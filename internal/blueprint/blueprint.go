// Package blueprint reads declarative prefab descriptions from YAML and
// applies them onto a prefab.Builder.
//
//	name: Box
//	layer: ui
//	components:
//	  - type: transform
//	    width: 80
//	    height: 80
//	  - type: sprite
//	    color: {r: 255, g: 0, b: 0}
//
// Components are applied in file order. Values are passed through to the
// builder without range checks.
package blueprint

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/prefab"
)

// Component kinds accepted in the components list.
const (
	KindTransform = "transform"
	KindSprite    = "sprite"
	KindLabel     = "label"
	KindWidget    = "widget"
	KindButton    = "button"
)

// Blueprint describes one prefab.
type Blueprint struct {
	Name     string `yaml:"name"`
	NodeName string `yaml:"node_name,omitempty"`
	Layer    Layer  `yaml:"layer,omitempty"`
	// Path is the default asset-db destination.
	Path       string      `yaml:"path,omitempty"`
	Components []Component `yaml:"components"`
}

// Component is one entry of the components list. Which fields apply depends
// on Type; unset fields keep the builder defaults.
type Component struct {
	Type string `yaml:"type"`

	// transform
	Width   *float64 `yaml:"width,omitempty"`
	Height  *float64 `yaml:"height,omitempty"`
	AnchorX *float64 `yaml:"anchor_x,omitempty"`
	AnchorY *float64 `yaml:"anchor_y,omitempty"`

	// sprite, label
	Color       *Color `yaml:"color,omitempty"`
	SpriteFrame string `yaml:"sprite_frame,omitempty"`

	// label
	Text       *string `yaml:"text,omitempty"`
	FontSize   *int    `yaml:"font_size,omitempty"`
	LineHeight int     `yaml:"line_height,omitempty"`

	// widget
	AlignFlags *int    `yaml:"align_flags,omitempty"`
	Left       float64 `yaml:"left,omitempty"`
	Right      float64 `yaml:"right,omitempty"`
	Top        float64 `yaml:"top,omitempty"`
	Bottom     float64 `yaml:"bottom,omitempty"`
}

// Color is an RGBA color; alpha defaults to 255.
type Color struct {
	R uint8  `yaml:"r"`
	G uint8  `yaml:"g"`
	B uint8  `yaml:"b"`
	A *uint8 `yaml:"a,omitempty"`
}

func (c *Color) toPrefab() *prefab.Color {
	if c == nil {
		return nil
	}
	out := prefab.Color{R: c.R, G: c.G, B: c.B, A: 255}
	if c.A != nil {
		out.A = *c.A
	}
	return &out
}

// Layer accepts either a numeric layer or one of the names "ui" and "2d".
type Layer int

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("layer must be a scalar")
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "ui":
		*l = prefab.LayerUI
		return nil
	case "2d":
		*l = prefab.Layer2D
		return nil
	}
	n, err := strconv.Atoi(value.Value)
	if err != nil {
		return fmt.Errorf("unknown layer %q", value.Value)
	}
	*l = Layer(n)
	return nil
}

// Load reads and parses a blueprint file.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("blueprint not found").WithContext("path", path).Build()
		}
		return nil, errors.FileSystemError("failed to read blueprint").WithCause(err).WithContext("path", path).Build()
	}
	bp, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return bp, nil
}

// Parse decodes a blueprint. Unknown keys and unknown component types are
// rejected.
func Parse(data []byte) (*Blueprint, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var bp Blueprint
	if err := dec.Decode(&bp); err != nil {
		return nil, errors.ValidationError("invalid blueprint").WithCause(err).Build()
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return &bp, nil
}

// Validate checks the blueprint has a name and only known component types.
func (bp *Blueprint) Validate() error {
	if strings.TrimSpace(bp.Name) == "" {
		return errors.ValidationError("blueprint name is required").Build()
	}
	for i, c := range bp.Components {
		switch c.Type {
		case KindTransform, KindSprite, KindLabel, KindWidget, KindButton:
		default:
			return errors.ValidationError(fmt.Sprintf("component %d: unknown type %q", i, c.Type)).
				WithContext("index", i).
				WithContext("type", c.Type).
				Build()
		}
	}
	return nil
}

// DefaultPath is Path when set, otherwise db://assets/prefabs/<name>.prefab.
func (bp *Blueprint) DefaultPath() string {
	if bp.Path != "" {
		return bp.Path
	}
	return "db://assets/prefabs/" + norm.NFC.String(bp.Name) + ".prefab"
}

// Build creates a builder and applies every component in order. opts are
// applied after the blueprint's own node name and layer.
func (bp *Blueprint) Build(opts ...prefab.Option) (*prefab.Builder, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	base := []prefab.Option{prefab.WithLayer(int(bp.Layer))}
	if bp.NodeName != "" {
		base = append(base, prefab.WithNodeName(norm.NFC.String(bp.NodeName)))
	}
	b := prefab.New(norm.NFC.String(bp.Name), append(base, opts...)...)
	for _, c := range bp.Components {
		c.apply(b)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func (c Component) apply(b *prefab.Builder) {
	switch c.Type {
	case KindTransform:
		o := prefab.DefaultTransform()
		setFloat(&o.Width, c.Width)
		setFloat(&o.Height, c.Height)
		setFloat(&o.AnchorX, c.AnchorX)
		setFloat(&o.AnchorY, c.AnchorY)
		b.AddTransform(o)
	case KindSprite:
		b.AddSprite(prefab.SpriteOptions{Color: c.Color.toPrefab(), SpriteFrame: c.SpriteFrame})
	case KindLabel:
		o := prefab.DefaultLabel()
		if c.Text != nil {
			o.Text = norm.NFC.String(*c.Text)
		}
		if c.FontSize != nil {
			o.FontSize = *c.FontSize
		}
		o.Color = c.Color.toPrefab()
		o.LineHeight = c.LineHeight
		b.AddLabel(o)
	case KindWidget:
		o := prefab.DefaultWidget()
		if c.AlignFlags != nil {
			o.AlignFlags = *c.AlignFlags
		}
		o.Left, o.Right, o.Top, o.Bottom = c.Left, c.Right, c.Top, c.Bottom
		b.AddWidget(o)
	case KindButton:
		b.AddButton()
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
