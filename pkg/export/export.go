// Package export renders a filtered, tightly-cropped region of the live
// scene to a raster buffer at a caller-specified resolution multiplier and
// background, and encodes it to PNG, JPEG, or WebP.
package export

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/fonts"
	"github.com/dotstitch/dotstitch/pkg/geom"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

// Format selects the output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// Valid reports whether f names a supported encoding.
func (f Format) Valid() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatWebP:
		return true
	}
	return false
}

// Ext returns the file extension without a dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// Resolution multipliers are a DPI proxy: target DPI divided by the 96 DPI
// design surface.
const screenDPI = 96

// MultiplierForDPI converts a target print DPI to a resolution multiplier.
func MultiplierForDPI(dpi int) float64 {
	return float64(dpi) / screenDPI
}

// Common print-quality presets.
var (
	Multiplier150 = MultiplierForDPI(150) // 1.5625
	Multiplier200 = MultiplierForDPI(200) // 2.0833...
	Multiplier300 = MultiplierForDPI(300) // 3.125
)

// Preset names a print-quality level.
type Preset string

const (
	PresetHigh   Preset = "high"   // 300 DPI
	PresetMedium Preset = "medium" // 200 DPI
	PresetLow    Preset = "low"    // 150 DPI
)

// Multiplier returns the resolution multiplier for the preset. Unknown
// presets map to high.
func (p Preset) Multiplier() float64 {
	switch p {
	case PresetMedium:
		return Multiplier200
	case PresetLow:
		return Multiplier150
	default:
		return Multiplier300
	}
}

// DefaultJPEGQuality matches the quality the legacy exports used.
const DefaultJPEGQuality = 92

// Options controls one raster export.
type Options struct {
	Format      Format
	Multiplier  float64
	Background  string // hex color composited beneath opaque exports
	Opaque      bool   // force the background even for alpha-capable formats
	JPEGQuality int
}

// Normalize fills zero-valued options with usable defaults.
func (o *Options) Normalize() {
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 1
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
}

// Render rasterizes exactly the pixels within b, scaled by the resolution
// multiplier. JPEG output always gets the solid background; alpha-capable
// formats stay transparent unless Opaque is set.
func Render(s *scene.Scene, lib *fonts.Library, b geom.Rect, opts Options) (image.Image, error) {
	opts.Normalize()
	if !opts.Format.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
	}
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeEmptyExport, "export region is empty")
	}

	w := int(math.Round(b.Width * opts.Multiplier))
	h := int(math.Round(b.Height * opts.Multiplier))
	dc := gg.NewContext(w, h)

	if opts.Opaque || opts.Format == FormatJPEG {
		dc.SetColor(parseHexColor(opts.Background))
		dc.Clear()
	}

	for _, o := range s.Objects() {
		if !scene.IsDesignContent(o) {
			continue
		}
		switch el := o.(type) {
		case *scene.Picture:
			drawPicture(dc, el, b, opts.Multiplier)
		case *scene.Text:
			drawText(dc, lib, el, b, opts.Multiplier)
		}
	}
	return dc.Image(), nil
}

// RenderDesign computes the design bounds and renders them. Scenes with no
// design content refuse with an empty-export error instead of producing a
// blank image.
func RenderDesign(s *scene.Scene, lib *fonts.Library, opts Options) (image.Image, error) {
	b := scene.DesignBounds(s, lib)
	if b == nil {
		return nil, errors.New(errors.ErrCodeEmptyExport, "nothing to export")
	}
	return Render(s, lib, *b, opts)
}

// RenderKind renders only the visible objects of one kind, cropped to their
// own bounds. Used for per-part exports.
func RenderKind(s *scene.Scene, lib *fonts.Library, k scene.Kind, opts Options) (image.Image, error) {
	b := scene.KindBounds(s, lib, k)
	if b == nil {
		return nil, errors.New(errors.ErrCodeEmptyExport, "no %s content to export", k)
	}
	part := scene.New()
	for _, o := range s.Objects() {
		if o.IsVisible() && o.Role() == k {
			part.Add(o)
		}
	}
	return Render(part, lib, *b, opts)
}

func drawPicture(dc *gg.Context, p *scene.Picture, b geom.Rect, mult float64) {
	if p.Img == nil {
		return
	}

	dc.Push()
	defer dc.Pop()

	if p.Anchor == scene.AnchorTopLeft {
		dc.Translate((p.X-b.Left)*mult, (p.Y-b.Top)*mult)
		dc.Scale(p.ScaleX*mult, p.ScaleY*mult)
		dc.DrawImage(p.Img, 0, 0)
		return
	}

	dc.Translate((p.X-b.Left)*mult, (p.Y-b.Top)*mult)
	dc.Rotate(gg.Radians(p.RotationDeg))
	dc.Scale(p.ScaleX*mult, p.ScaleY*mult)
	dc.DrawImageAnchored(p.Img, 0, 0, 0.5, 0.5)
}

// drawText renders a text element with the face loaded at the scaled pixel
// size; glyphs do not follow the context matrix, so scaling goes through
// the face and rotation through an offscreen pass.
//
// Text runs are a single line, so the element's TextAlign (a multi-line
// layout property) never moves any glyph. Placement is driven entirely by
// the anchor; TextAlign is carried through the store for record fidelity.
func drawText(dc *gg.Context, lib *fonts.Library, t *scene.Text, b geom.Rect, mult float64) {
	if t.Content == "" {
		return
	}
	face := lib.Face(t.FontFamily, t.FontSizePx*mult)
	x := (t.X - b.Left) * mult
	y := (t.Y - b.Top) * mult

	if t.RotationDeg != 0 {
		drawRotatedText(dc, lib, t, x, y, mult)
		return
	}

	dc.SetFontFace(face)
	ax, ay := anchorFractions(t.Anchor)
	if t.StrokeColor != "" && t.StrokeWidth > 0 {
		strokeString(dc, t, x, y, ax, ay, mult)
	}
	dc.SetColor(parseHexColor(t.FillColor))
	dc.DrawStringAnchored(t.Content, x, y, ax, ay)
}

// drawRotatedText renders the text into its own transparent context and
// composites that raster with the rotation applied.
func drawRotatedText(dc *gg.Context, lib *fonts.Library, t *scene.Text, x, y, mult float64) {
	face := lib.Face(t.FontFamily, t.FontSizePx*mult)
	w, h := lib.MeasureText(t.Content, t.FontFamily, t.FontSizePx*mult)
	pad := math.Ceil(t.StrokeWidth*mult) + 2

	off := gg.NewContext(int(math.Ceil(w+2*pad)), int(math.Ceil(h+2*pad)))
	off.SetFontFace(face)
	if t.StrokeColor != "" && t.StrokeWidth > 0 {
		strokeString(off, t, w/2+pad, h/2+pad, 0.5, 0.5, mult)
	}
	off.SetColor(parseHexColor(t.FillColor))
	off.DrawStringAnchored(t.Content, w/2+pad, h/2+pad, 0.5, 0.5)

	dc.Push()
	defer dc.Pop()
	dc.Translate(x, y)
	dc.Rotate(gg.Radians(t.RotationDeg))
	dc.DrawImageAnchored(off.Image(), 0, 0, 0.5, 0.5)
}

// strokeString approximates an outline by drawing the string offset around
// a ring in the stroke color before the fill pass.
func strokeString(dc *gg.Context, t *scene.Text, x, y, ax, ay, mult float64) {
	dc.SetColor(parseHexColor(t.StrokeColor))
	r := t.StrokeWidth * mult
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		dc.DrawStringAnchored(t.Content, x+r*math.Cos(a), y+r*math.Sin(a), ax, ay)
	}
}

func anchorFractions(a scene.Anchor) (ax, ay float64) {
	switch a {
	case scene.AnchorTopLeft:
		return 0, 1
	case scene.AnchorBottomLeft:
		return 0, 0
	default:
		return 0.5, 0.5
	}
}
