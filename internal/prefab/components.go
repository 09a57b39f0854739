package prefab

// Alignment flags for Widget.AlignFlags.
const (
	AlignTop              = 1
	AlignBottom           = 2
	AlignLeft             = 4
	AlignRight            = 8
	AlignHorizontalCenter = 16
	AlignVerticalCenter   = 32

	// AlignStretch pins top, left and right edges plus both centers.
	AlignStretch = 45
)

// SpriteFrameType is the expected asset type of a sprite frame reference.
const SpriteFrameType = "cc.SpriteFrame"

// UITransform is a cc.UITransform component.
type UITransform struct {
	componentBase
	ContentSize Size   `json:"_contentSize"`
	AnchorPoint Vec2   `json:"_anchorPoint"`
	ID          string `json:"_id"`
}

func (c *UITransform) clone() Item { v := *c; return &v }

// Sprite is a cc.Sprite component.
type Sprite struct {
	componentBase
	CustomMaterial *AssetRef `json:"_customMaterial"`
	SrcBlendFactor int       `json:"_srcBlendFactor"`
	DstBlendFactor int       `json:"_dstBlendFactor"`
	Color          Color     `json:"_color"`
	SpriteFrame    *AssetRef `json:"_spriteFrame"`
	SpriteType     int       `json:"_type"`
	FillType       int       `json:"_fillType"`
	SizeMode       int       `json:"_sizeMode"`
	FillCenter     Vec2      `json:"_fillCenter"`
	FillStart      float64   `json:"_fillStart"`
	FillRange      float64   `json:"_fillRange"`
	IsTrimmedMode  bool      `json:"_isTrimmedMode"`
	UseGrayscale   bool      `json:"_useGrayscale"`
	Atlas          *AssetRef `json:"_atlas"`
	ID             string    `json:"_id"`
}

func (c *Sprite) clone() Item {
	v := *c
	v.SpriteFrame = cloneAssetRef(c.SpriteFrame)
	return &v
}

// Label is a cc.Label component.
type Label struct {
	componentBase
	CustomMaterial   *AssetRef `json:"_customMaterial"`
	SrcBlendFactor   int       `json:"_srcBlendFactor"`
	DstBlendFactor   int       `json:"_dstBlendFactor"`
	Color            Color     `json:"_color"`
	String           string    `json:"_string"`
	HorizontalAlign  int       `json:"_horizontalAlign"`
	VerticalAlign    int       `json:"_verticalAlign"`
	ActualFontSize   int       `json:"_actualFontSize"`
	FontSize         int       `json:"_fontSize"`
	FontFamily       string    `json:"_fontFamily"`
	LineHeight       int       `json:"_lineHeight"`
	Overflow         int       `json:"_overflow"`
	EnableWrapText   bool      `json:"_enableWrapText"`
	Font             *AssetRef `json:"_font"`
	IsSystemFontUsed bool      `json:"_isSystemFontUsed"`
	SpacingX         float64   `json:"_spacingX"`
	IsItalic         bool      `json:"_isItalic"`
	IsBold           bool      `json:"_isBold"`
	IsUnderline      bool      `json:"_isUnderline"`
	UnderlineHeight  int       `json:"_underlineHeight"`
	CacheMode        int       `json:"_cacheMode"`
	EnableOutline    bool      `json:"_enableOutline"`
	OutlineColor     Color     `json:"_outlineColor"`
	OutlineWidth     int       `json:"_outlineWidth"`
	EnableShadow     bool      `json:"_enableShadow"`
	ShadowColor      Color     `json:"_shadowColor"`
	ShadowOffset     Vec2      `json:"_shadowOffset"`
	ShadowBlur       int       `json:"_shadowBlur"`
	ID               string    `json:"_id"`
}

func (c *Label) clone() Item { v := *c; return &v }

// Widget is a cc.Widget component.
type Widget struct {
	componentBase
	AlignFlags            int     `json:"_alignFlags"`
	Target                *Ref    `json:"_target"`
	Left                  float64 `json:"_left"`
	Right                 float64 `json:"_right"`
	Top                   float64 `json:"_top"`
	Bottom                float64 `json:"_bottom"`
	HorizontalCenter      float64 `json:"_horizontalCenter"`
	VerticalCenter        float64 `json:"_verticalCenter"`
	IsAbsLeft             bool    `json:"_isAbsLeft"`
	IsAbsRight            bool    `json:"_isAbsRight"`
	IsAbsTop              bool    `json:"_isAbsTop"`
	IsAbsBottom           bool    `json:"_isAbsBottom"`
	IsAbsHorizontalCenter bool    `json:"_isAbsHorizontalCenter"`
	IsAbsVerticalCenter   bool    `json:"_isAbsVerticalCenter"`
	OriginalWidth         float64 `json:"_originalWidth"`
	OriginalHeight        float64 `json:"_originalHeight"`
	ID                    string  `json:"_id"`
}

func (c *Widget) clone() Item { v := *c; return &v }

// Button is a cc.Button component.
type Button struct {
	componentBase
	ClickEvents   []Ref   `json:"_clickEvents"`
	Interactable  bool    `json:"_interactable"`
	Transition    int     `json:"_transition"`
	NormalColor   Color   `json:"_normalColor"`
	PressedColor  Color   `json:"_pressedColor"`
	HoverColor    Color   `json:"_hoverColor"`
	DisabledColor Color   `json:"_disabledColor"`
	Duration      float64 `json:"_duration"`
	ZoomScale     float64 `json:"_zoomScale"`
	Target        *Ref    `json:"_target"`
	ID            string  `json:"_id"`
}

func (c *Button) clone() Item {
	v := *c
	v.ClickEvents = append([]Ref{}, c.ClickEvents...)
	return &v
}

func cloneAssetRef(r *AssetRef) *AssetRef {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

// TransformOptions configures AddTransform.
type TransformOptions struct {
	Width, Height    float64
	AnchorX, AnchorY float64
}

// DefaultTransform is a centered 100x100 transform.
func DefaultTransform() TransformOptions {
	return TransformOptions{Width: 100, Height: 100, AnchorX: 0.5, AnchorY: 0.5}
}

// SpriteOptions configures AddSprite. A nil Color means white; an empty
// SpriteFrame leaves the frame unset.
type SpriteOptions struct {
	Color       *Color
	SpriteFrame string
}

// LabelOptions configures AddLabel. A nil Color means white and a zero
// LineHeight means twice the font size.
type LabelOptions struct {
	Text       string
	FontSize   int
	Color      *Color
	LineHeight int
}

// DefaultLabel is a 40px "Label".
func DefaultLabel() LabelOptions {
	return LabelOptions{Text: "Label", FontSize: 40}
}

// WidgetOptions configures AddWidget.
type WidgetOptions struct {
	AlignFlags               int
	Left, Right, Top, Bottom float64
}

// DefaultWidget stretches to the parent with zero margins.
func DefaultWidget() WidgetOptions {
	return WidgetOptions{AlignFlags: AlignStretch}
}

// AddTransform appends a UITransform.
func (b *Builder) AddTransform(o TransformOptions) *Builder {
	return b.add(&UITransform{
		componentBase: newComponentBase(TypeUITransform),
		ContentSize:   Size{o.Width, o.Height},
		AnchorPoint:   Vec2{o.AnchorX, o.AnchorY},
	})
}

// AddSprite appends a Sprite.
func (b *Builder) AddSprite(o SpriteOptions) *Builder {
	s := &Sprite{
		componentBase:  newComponentBase(TypeSprite),
		SrcBlendFactor: 2,
		DstBlendFactor: 4,
		Color:          colorOr(o.Color, White),
		SizeMode:       2,
		IsTrimmedMode:  true,
	}
	if o.SpriteFrame != "" {
		s.SpriteFrame = &AssetRef{UUID: o.SpriteFrame, ExpectedType: SpriteFrameType}
	}
	return b.add(s)
}

// AddLabel appends a Label.
func (b *Builder) AddLabel(o LabelOptions) *Builder {
	lineHeight := o.LineHeight
	if lineHeight == 0 {
		lineHeight = o.FontSize * 2
	}
	return b.add(&Label{
		componentBase:    newComponentBase(TypeLabel),
		SrcBlendFactor:   2,
		DstBlendFactor:   4,
		Color:            colorOr(o.Color, White),
		String:           o.Text,
		HorizontalAlign:  1,
		VerticalAlign:    1,
		ActualFontSize:   o.FontSize,
		FontSize:         o.FontSize,
		FontFamily:       "Arial",
		LineHeight:       lineHeight,
		EnableWrapText:   true,
		IsSystemFontUsed: true,
		UnderlineHeight:  2,
		OutlineColor:     Black,
		OutlineWidth:     2,
		ShadowColor:      Black,
		ShadowOffset:     Vec2{2, 2},
		ShadowBlur:       2,
	})
}

// AddWidget appends a Widget.
func (b *Builder) AddWidget(o WidgetOptions) *Builder {
	return b.add(&Widget{
		componentBase:         newComponentBase(TypeWidget),
		AlignFlags:            o.AlignFlags,
		Left:                  o.Left,
		Right:                 o.Right,
		Top:                   o.Top,
		Bottom:                o.Bottom,
		IsAbsLeft:             true,
		IsAbsRight:            true,
		IsAbsTop:              true,
		IsAbsBottom:           true,
		IsAbsHorizontalCenter: true,
		IsAbsVerticalCenter:   true,
	})
}

// AddButton appends a Button with color-tint transition.
func (b *Builder) AddButton() *Builder {
	return b.add(&Button{
		componentBase: newComponentBase(TypeButton),
		ClickEvents:   []Ref{},
		Interactable:  true,
		Transition:    2,
		NormalColor:   White,
		PressedColor:  Color{200, 200, 200, 255},
		HoverColor:    White,
		DisabledColor: Color{120, 120, 120, 200},
		Duration:      0.1,
		ZoomScale:     1.2,
	})
}

func colorOr(c *Color, def Color) Color {
	if c == nil {
		return def
	}
	return *c
}
