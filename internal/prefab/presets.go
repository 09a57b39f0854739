package prefab

// ButtonColor is the background tint of the button preset.
var ButtonColor = Color{100, 150, 200, 255}

// EmptyPrefab is a node with a default 100x100 transform.
func EmptyPrefab(name string, opts ...Option) *Builder {
	return New(name, opts...).AddTransform(DefaultTransform())
}

// SpritePrefab is a width x height sprite. A nil color means white.
func SpritePrefab(name string, width, height float64, color *Color, opts ...Option) *Builder {
	t := DefaultTransform()
	t.Width, t.Height = width, height
	return New(name, opts...).
		AddTransform(t).
		AddSprite(SpriteOptions{Color: color})
}

// LabelPrefab is a 200x50 text label.
func LabelPrefab(name, text string, fontSize int, opts ...Option) *Builder {
	t := DefaultTransform()
	t.Width, t.Height = 200, 50
	l := DefaultLabel()
	l.Text, l.FontSize = text, fontSize
	return New(name, opts...).
		AddTransform(t).
		AddLabel(l)
}

// ButtonPrefab is a tinted sprite with a Button.
func ButtonPrefab(name string, width, height float64, opts ...Option) *Builder {
	t := DefaultTransform()
	t.Width, t.Height = width, height
	c := ButtonColor
	return New(name, opts...).
		AddTransform(t).
		AddSprite(SpriteOptions{Color: &c}).
		AddButton()
}
