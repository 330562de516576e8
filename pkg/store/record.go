package store

import "github.com/dotstitch/dotstitch/pkg/scene"

// Style defaults substituted field-by-field when a placement record is
// incomplete. An unset font size, family, or color in a legacy record never
// produces an undefined render.
const (
	DefaultFontSize       = 38
	DefaultNumberFontSize = 115
	DefaultFontFamily     = "Anton"
	DefaultFillColor      = "#000000"
	DefaultTextAlign      = "center"
)

// TextPlacement is the persisted pose and style of one text element.
// The JSON shape matches the legacy per-player storage blobs, with the
// addition of a stable id used for matching custom elements.
type TextPlacement struct {
	ID          string  `json:"id,omitempty"`
	Text        string  `json:"text"`
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	FontSize    float64 `json:"fontSize"`
	FontFamily  string  `json:"fontFamily"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Angle       float64 `json:"angle"`
	TextAlign   string  `json:"textAlign"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
}

// LogoPlacement is the persisted pose of one custom logo.
type LogoPlacement struct {
	ID     string  `json:"id,omitempty"`
	Src    string  `json:"src"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"`
}

// PlacementRecord is the persisted snapshot of all placeable elements of one
// view for one player.
type PlacementRecord struct {
	Name        *TextPlacement  `json:"name,omitempty"`
	Number      *TextPlacement  `json:"number,omitempty"`
	CustomTexts []TextPlacement `json:"customTexts,omitempty"`
	CustomLogos []LogoPlacement `json:"customLogos,omitempty"`
}

// ViewRecords maps view names to their placement records. One ViewRecords
// value is stored per player as a single blob.
type ViewRecords map[scene.View]*PlacementRecord

// Empty reports whether the record carries no placements.
func (r *PlacementRecord) Empty() bool {
	return r == nil || (r.Name == nil && r.Number == nil &&
		len(r.CustomTexts) == 0 && len(r.CustomLogos) == 0)
}

// Normalize substitutes defaults for unset style fields, in place.
// numberDefaults switches the font-size default to the jersey number size.
func (t *TextPlacement) Normalize(numberDefaults bool) {
	if t.FontSize <= 0 {
		if numberDefaults {
			t.FontSize = DefaultNumberFontSize
		} else {
			t.FontSize = DefaultFontSize
		}
	}
	if t.FontFamily == "" {
		t.FontFamily = DefaultFontFamily
	}
	if t.Fill == "" {
		t.Fill = DefaultFillColor
	}
	if t.TextAlign == "" {
		t.TextAlign = DefaultTextAlign
	}
}

// Normalize guards against zero logo scales from malformed records.
func (l *LogoPlacement) Normalize() {
	if l.ScaleX == 0 {
		l.ScaleX = 1
	}
	if l.ScaleY == 0 {
		l.ScaleY = 1
	}
}

// Normalize applies field defaults to every placement in the record.
func (r *PlacementRecord) Normalize() {
	if r == nil {
		return
	}
	if r.Name != nil {
		r.Name.Normalize(false)
	}
	if r.Number != nil {
		r.Number.Normalize(true)
	}
	for i := range r.CustomTexts {
		r.CustomTexts[i].Normalize(false)
	}
	for i := range r.CustomLogos {
		r.CustomLogos[i].Normalize()
	}
}
