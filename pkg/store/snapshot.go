package store

import "github.com/dotstitch/dotstitch/pkg/scene"

// SnapshotScene extracts a placement record from the live objects of the
// currently displayed view. Only persisted roles are captured: player name,
// jersey number, custom texts, and (on the front view only) custom logos.
// Template parts are never persisted; they are re-derived from the view's
// template asset on every load.
//
// The record is built exclusively from the scene, never hand-edited, so a
// later apply reproduces exactly what the operator last saw.
func SnapshotScene(s *scene.Scene, view scene.View) *PlacementRecord {
	rec := &PlacementRecord{}

	if names := s.Texts(scene.KindPlayerName); len(names) > 0 {
		tp := textPlacement(names[0], false)
		rec.Name = &tp
	}
	if numbers := s.Texts(scene.KindPlayerNumber); len(numbers) > 0 {
		tp := textPlacement(numbers[0], true)
		rec.Number = &tp
	}
	for _, t := range s.Texts(scene.KindCustomText) {
		rec.CustomTexts = append(rec.CustomTexts, textPlacement(t, false))
	}

	// Logos live on the front view only.
	if view == scene.ViewFront {
		for _, p := range s.Pictures(scene.KindCustomLogo) {
			rec.CustomLogos = append(rec.CustomLogos, LogoPlacement{
				ID:     p.Id,
				Src:    p.Source,
				Left:   p.X,
				Top:    p.Y,
				ScaleX: p.ScaleX,
				ScaleY: p.ScaleY,
				Angle:  p.RotationDeg,
			})
		}
	}

	return rec
}

func textPlacement(t *scene.Text, numberDefaults bool) TextPlacement {
	tp := TextPlacement{
		ID:          t.Id,
		Text:        t.Content,
		Left:        t.X,
		Top:         t.Y,
		FontSize:    t.FontSizePx,
		FontFamily:  t.FontFamily,
		Fill:        t.FillColor,
		Stroke:      t.StrokeColor,
		StrokeWidth: t.StrokeWidth,
		Angle:       t.RotationDeg,
		TextAlign:   t.TextAlign,
		Width:       t.BoxWidth,
		Height:      t.BoxHeight,
	}
	tp.Normalize(numberDefaults)
	return tp
}
