package scene

import (
	"image"

	"github.com/dotstitch/dotstitch/pkg/geom"
)

// Kind tags a scene object with its design role. The tag drives persistence
// (which objects are snapshotted into placement records) and the design
// filter used for bounds and export.
type Kind string

const (
	// KindTemplate is the non-interactive base garment image for a view.
	KindTemplate Kind = "template"

	// KindPlayerName is the player's name text on the back view.
	KindPlayerName Kind = "playerName"

	// KindPlayerNumber is the jersey number text on the back view.
	KindPlayerNumber Kind = "jerseyNumber"

	// KindCustomText is operator-added text, possible on every view.
	KindCustomText Kind = "customText"

	// KindCustomLogo is operator-added artwork, front view only.
	KindCustomLogo Kind = "customLogo"

	// KindLabel is the small player identifier drawn bottom-left on every
	// view. It is presentation-only and excluded from design bounds.
	KindLabel Kind = "label"
)

// Anchor selects the reference point a object's position refers to.
type Anchor int

const (
	// AnchorCenter places the object's center at (X, Y). Texts and logos
	// use center origin so rotation and scaling stay in place.
	AnchorCenter Anchor = iota

	// AnchorTopLeft places the object's top-left corner at (X, Y).
	// Template images are laid out this way.
	AnchorTopLeft

	// AnchorBottomLeft places the object's bottom-left corner at (X, Y).
	// Used by the identifier label.
	AnchorBottomLeft
)

// Measurer reports the rendered size of a text run. The scene model is kept
// free of font handling; callers inject an implementation (pkg/fonts).
type Measurer interface {
	MeasureText(content, family string, sizePx float64) (w, h float64)
}

// Object is a placeable scene element.
type Object interface {
	// ID is a stable identifier assigned at creation time.
	ID() string

	// Role returns the object's kind tag. An empty kind is possible for
	// image-backed objects added without a role; the design filter still
	// treats those as design content.
	Role() Kind

	// IsVisible reports whether the object participates in rendering.
	IsVisible() bool

	// Bounds returns the object's axis-aligned rendered rectangle,
	// post-scale and post-rotation.
	Bounds(m Measurer) geom.Rect
}

// Text is a text element: player name, number, custom text, or the
// identifier label.
type Text struct {
	Id          string
	Kind        Kind
	Content     string
	X, Y        float64
	RotationDeg float64
	FontFamily  string
	FontSizePx  float64
	FillColor   string
	StrokeColor string
	StrokeWidth float64
	TextAlign   string
	BoxWidth    float64 // optional layout box, 0 when unset
	BoxHeight   float64
	Anchor      Anchor
	Visible     bool
	Interactive bool
}

func (t *Text) ID() string      { return t.Id }
func (t *Text) Role() Kind      { return t.Kind }
func (t *Text) IsVisible() bool { return t.Visible }

// Bounds measures the rendered text and expands for rotation. A nil
// measurer falls back to a coarse estimate so bounds never panic.
func (t *Text) Bounds(m Measurer) geom.Rect {
	w, h := t.measure(m)
	switch t.Anchor {
	case AnchorTopLeft:
		return geom.Rect{Left: t.X, Top: t.Y, Width: w, Height: h}
	case AnchorBottomLeft:
		return geom.Rect{Left: t.X, Top: t.Y - h, Width: w, Height: h}
	default:
		return geom.RotatedAABB(t.X, t.Y, w, h, t.RotationDeg)
	}
}

func (t *Text) measure(m Measurer) (w, h float64) {
	if m != nil {
		return m.MeasureText(t.Content, t.FontFamily, t.FontSizePx)
	}
	// Rough advance-width estimate, used only when no font stack is wired.
	return float64(len(t.Content)) * t.FontSizePx * 0.6, t.FontSizePx
}

// Picture is an image element: a view's template part or a custom logo.
type Picture struct {
	Id             string
	Kind           Kind
	View           View // set for template parts
	Source         string
	Img            image.Image
	X, Y           float64
	RotationDeg    float64
	ScaleX, ScaleY float64
	Anchor         Anchor
	Visible        bool
	Interactive    bool
}

func (p *Picture) ID() string      { return p.Id }
func (p *Picture) Role() Kind      { return p.Kind }
func (p *Picture) IsVisible() bool { return p.Visible }

// Size returns the scaled pixel size of the picture.
func (p *Picture) Size() (w, h float64) {
	if p.Img == nil {
		return 0, 0
	}
	b := p.Img.Bounds()
	return float64(b.Dx()) * p.ScaleX, float64(b.Dy()) * p.ScaleY
}

func (p *Picture) Bounds(Measurer) geom.Rect {
	w, h := p.Size()
	if p.Anchor == AnchorTopLeft {
		return geom.Rect{Left: p.X, Top: p.Y, Width: w, Height: h}
	}
	return geom.RotatedAABB(p.X, p.Y, w, h, p.RotationDeg)
}
