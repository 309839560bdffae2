package styling

import "fmt"

type DotsOptions struct {
	Type  DotType `json:"type" jsonschema:"enum=square,enum=dots,enum=rounded,enum=extra-rounded,enum=classy,enum=classy-rounded"`
	Color Color   `json:"color"`
}

type CornersSquareOptions struct {
	Type  CornerSquareType `json:"type" jsonschema:"enum=square,enum=dot,enum=rounded"`
	Color Color            `json:"color"`
}

type CornersDotOptions struct {
	Type  CornerDotType `json:"type" jsonschema:"enum=square,enum=dot,enum=rounded"`
	Color Color         `json:"color"`
}

type BackgroundOptions struct {
	Color Color `json:"color"`
}

// Options is the complete visual configuration of a QR code. It is a value:
// Apply returns a new Options and never changes the receiver.
type Options struct {
	Dots          DotsOptions          `json:"dotsOptions"`
	CornersSquare CornersSquareOptions `json:"cornersSquareOptions"`
	CornersDot    CornersDotOptions    `json:"cornersDotOptions"`
	Background    BackgroundOptions    `json:"backgroundOptions"`
}

// Default returns square shapes, black elements and a white background.
func Default() Options {
	return Options{
		Dots:          DotsOptions{Type: DotSquare, Color: NewSolid("#000000")},
		CornersSquare: CornersSquareOptions{Type: CornerSquareSquare, Color: NewSolid("#000000")},
		CornersDot:    CornersDotOptions{Type: CornerDotSquare, Color: NewSolid("#000000")},
		Background:    BackgroundOptions{Color: NewSolid("#FFFFFF")},
	}
}

// Change is a single edit of Options. The set of changes is closed.
type Change interface {
	apply(o Options) Options
}

type SetDotType DotType

func (c SetDotType) apply(o Options) Options {
	o.Dots.Type = DotType(c)
	return o
}

type SetCornerSquareType CornerSquareType

func (c SetCornerSquareType) apply(o Options) Options {
	o.CornersSquare.Type = CornerSquareType(c)
	return o
}

type SetCornerDotType CornerDotType

func (c SetCornerDotType) apply(o Options) Options {
	o.CornersDot.Type = CornerDotType(c)
	return o
}

// SetColor writes Color into every slot the control fans out to.
type SetColor struct {
	Control ColorControl
	Color   Color
}

func (c SetColor) apply(o Options) Options {
	switch c.Control {
	case DotsColor:
		o.Dots.Color = c.Color
		o.CornersSquare.Color = c.Color
		o.CornersDot.Color = c.Color
	case CornersColor:
		o.CornersSquare.Color = c.Color
		o.CornersDot.Color = c.Color
	case BackgroundColor:
		o.Background.Color = c.Color
	}
	return o
}

// Apply returns a copy of o with the change applied.
func (o Options) Apply(ch Change) Options {
	if ch == nil {
		return o
	}
	return ch.apply(o)
}

// ToggleColorKind switches the control's color between solid and gradient,
// restoring the cached payload of the other kind when there is one.
func (o Options) ToggleColorKind(control ColorControl, kind ColorKind) Options {
	current := control.Current(o)
	if current.Kind() == kind {
		return o
	}
	return o.Apply(SetColor{Control: control, Color: current.Toggle(kind, control.DefaultGradient())})
}

// SetSolidColor activates a solid color on the control.
func (o Options) SetSolidColor(control ColorControl, hex string) Options {
	return o.Apply(SetColor{Control: control, Color: control.Current(o).WithSolid(hex)})
}

// EditGradient runs edit on the control's current gradient. A control that is
// not in gradient mode is switched to it first.
func (o Options) EditGradient(control ColorControl, edit func(Gradient) (Gradient, error)) (Options, error) {
	current := control.Current(o)
	g, ok := current.Gradient()
	if !ok {
		current = current.Toggle(KindGradient, control.DefaultGradient())
		g, _ = current.Gradient()
	}
	next, err := edit(g)
	if err != nil {
		return o, err
	}
	return o.Apply(SetColor{Control: control, Color: current.WithGradient(next)}), nil
}

func (o Options) Equal(other Options) bool {
	return o.Dots.Type == other.Dots.Type &&
		o.CornersSquare.Type == other.CornersSquare.Type &&
		o.CornersDot.Type == other.CornersDot.Type &&
		o.Dots.Color.Equal(other.Dots.Color) &&
		o.CornersSquare.Color.Equal(other.CornersSquare.Color) &&
		o.CornersDot.Color.Equal(other.CornersDot.Color) &&
		o.Background.Color.Equal(other.Background.Color)
}

// Validate checks every slot.
func (o Options) Validate() error {
	if !o.Dots.Type.Valid() {
		return fmt.Errorf("unknown dot type %q", o.Dots.Type)
	}
	if !o.CornersSquare.Type.Valid() {
		return fmt.Errorf("unknown corner square type %q", o.CornersSquare.Type)
	}
	if !o.CornersDot.Type.Valid() {
		return fmt.Errorf("unknown corner dot type %q", o.CornersDot.Type)
	}
	slots := []struct {
		name  string
		color Color
	}{
		{"dots", o.Dots.Color},
		{"corners square", o.CornersSquare.Color},
		{"corners dot", o.CornersDot.Color},
		{"background", o.Background.Color},
	}
	for _, slot := range slots {
		if err := slot.color.Validate(); err != nil {
			return fmt.Errorf("%s color: %w", slot.name, err)
		}
	}
	return nil
}
