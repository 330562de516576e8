package composer

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dotstitch/dotstitch/pkg/observability"
	"github.com/dotstitch/dotstitch/pkg/scene"
	"github.com/dotstitch/dotstitch/pkg/store"
)

// Default back-view text placement, used when no record exists yet.
const (
	defaultNameTop   = 103
	defaultNumberTop = 257
)

// Auto-center clamps: computed font sizes never drop below these floors,
// and the name shrinks in 1px steps while wider than 70% of the template.
const (
	nameFontFloor   = 16
	numberFontFloor = 48
	shrinkFontFloor = 12
	nameWidthLimit  = 0.70
)

// Identifier label styling: bottom-left, small, presentation-only.
const (
	labelInset    = 16
	labelFontSize = 10
)

// compose runs the Loading and Populating phases for view. The generation
// token gen was captured when the run began; it is re-checked after every
// asset load so a superseded run never touches the scene.
func (c *Composer) compose(ctx context.Context, gen uint64, view scene.View) error {
	start := time.Now()
	observability.Composer().OnViewLoadStart(ctx, string(view))

	c.setState(gen, StateLoading)

	// Suspension point: template fetch. Missing sources render an empty
	// view without error; fetch or decode failures are per-asset and
	// composition proceeds with whatever loaded.
	var tplImg image.Image
	src, err := c.templates.Source(view)
	if err != nil {
		return err
	}
	if src != "" {
		tplImg, err = c.loader.Load(ctx, src)
		if err != nil {
			observability.Composer().OnAssetLoadError(ctx, src, err)
			c.logger.Warn("template load failed", "view", view, "err", err)
			tplImg = nil
		}
	}

	// Suspension point: logo fetches, front view only.
	logos := c.loadLogos(ctx, view)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		observability.Composer().OnStaleRunDiscarded(ctx, string(view))
		return nil
	}

	if tplImg != nil {
		tpl := c.placeTemplate(view, src, tplImg)
		c.scene.Add(tpl)
		c.scene.SendToBack(tpl)
	}

	c.state = StatePopulating
	rec := c.records[view]

	autoCenter := false
	if view == scene.ViewBack && c.player != nil {
		autoCenter = c.populateBackText(rec)
	}
	c.populateCustomTexts(rec)
	for _, l := range logos {
		c.scene.Add(l)
	}

	if autoCenter {
		c.autoCenterLocked(ctx)
	}

	// The identifier label is drawn last, on every view, whenever a player
	// is selected. It is excluded from design bounds and exports.
	if c.player != nil {
		c.scene.Add(&scene.Text{
			Id:         uuid.NewString(),
			Kind:       scene.KindLabel,
			Content:    c.player.Label(),
			X:          labelInset,
			Y:          c.scene.Height - labelInset,
			FontSizePx: labelFontSize,
			FillColor:  store.DefaultFillColor,
			Anchor:     scene.AnchorBottomLeft,
			Visible:    true,
		})
	}

	c.state = StateRendered
	observability.Composer().OnViewLoadComplete(ctx, string(view), time.Since(start), nil)
	return nil
}

// setState records s only if gen is still the current run. A run that was
// superseded while off the lock must not overwrite the state the newer run
// already reached.
func (c *Composer) setState(gen uint64, s State) {
	c.mu.Lock()
	if gen == c.generation {
		c.state = s
	}
	c.mu.Unlock()
}

// loadLogos resolves the persisted logo images for the incoming view.
// Logos exist on the front view only. Each load failure is logged and
// skipped; the rest of the population proceeds.
func (c *Composer) loadLogos(ctx context.Context, view scene.View) []*scene.Picture {
	if view != scene.ViewFront {
		return nil
	}

	c.mu.Lock()
	rec := c.records[view]
	if rec == nil || len(rec.CustomLogos) == 0 {
		c.mu.Unlock()
		return nil
	}
	placements := make([]store.LogoPlacement, len(rec.CustomLogos))
	copy(placements, rec.CustomLogos)
	c.mu.Unlock()

	var out []*scene.Picture
	for _, lp := range placements {
		img, err := c.loader.Load(ctx, lp.Src)
		if err != nil {
			observability.Composer().OnAssetLoadError(ctx, lp.Src, err)
			c.logger.Warn("logo load failed", "src", lp.Src, "err", err)
			continue
		}
		id := lp.ID
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, &scene.Picture{
			Id:          id,
			Kind:        scene.KindCustomLogo,
			Source:      lp.Src,
			Img:         img,
			X:           lp.Left,
			Y:           lp.Top,
			RotationDeg: lp.Angle,
			ScaleX:      lp.ScaleX,
			ScaleY:      lp.ScaleY,
			Visible:     true,
			Interactive: true,
		})
	}
	return out
}

// placeTemplate fits the template image inside the view's maximum box,
// applies the player's garment size factor, and centers it on the canvas.
// The collar is top-anchored at a fixed offset instead of vertically
// centered. Must be called with c.mu held.
func (c *Composer) placeTemplate(view scene.View, src string, img image.Image) *scene.Picture {
	box := fitBoxFor(view)
	b := img.Bounds()
	base := math.Min(box.w/float64(b.Dx()), box.h/float64(b.Dy()))

	factor := 1.0
	if c.player != nil {
		factor = SizeFactor(c.player.Size)
	}
	s := base * factor

	w := float64(b.Dx()) * s
	h := float64(b.Dy()) * s
	x := (c.scene.Width - w) / 2
	y := (c.scene.Height - h) / 2
	if view == scene.ViewCollar {
		y = collarTopOffset
	}

	return &scene.Picture{
		Id:      uuid.NewString(),
		Kind:    scene.KindTemplate,
		View:    view,
		Source:  src,
		Img:     img,
		X:       x,
		Y:       y,
		ScaleX:  s,
		ScaleY:  s,
		Anchor:  scene.AnchorTopLeft,
		Visible: true,
	}
}

// populateBackText creates the name and number objects, applying the
// persisted record verbatim when one exists. Returns true when no prior
// name/number placement exists so the caller runs the auto-center
// heuristic. Must be called with c.mu held.
func (c *Composer) populateBackText(rec *store.PlacementRecord) bool {
	name := &scene.Text{
		Id:          uuid.NewString(),
		Kind:        scene.KindPlayerName,
		Content:     c.player.PlayerName,
		X:           c.scene.Width / 2,
		Y:           defaultNameTop,
		FontFamily:  store.DefaultFontFamily,
		FontSizePx:  store.DefaultFontSize,
		FillColor:   store.DefaultFillColor,
		TextAlign:   store.DefaultTextAlign,
		Visible:     true,
		Interactive: true,
	}
	number := &scene.Text{
		Id:          uuid.NewString(),
		Kind:        scene.KindPlayerNumber,
		Content:     c.player.JerseyNumber,
		X:           c.scene.Width / 2,
		Y:           defaultNumberTop,
		FontFamily:  store.DefaultFontFamily,
		FontSizePx:  store.DefaultNumberFontSize,
		FillColor:   store.DefaultFillColor,
		TextAlign:   store.DefaultTextAlign,
		Visible:     true,
		Interactive: true,
	}

	hasRecord := rec != nil && (rec.Name != nil || rec.Number != nil)
	if hasRecord {
		if rec.Name != nil {
			applyText(name, rec.Name)
		}
		if rec.Number != nil {
			applyText(number, rec.Number)
		}
	}

	c.scene.Add(name)
	c.scene.Add(number)
	return !hasRecord
}

// populateCustomTexts restores persisted custom text elements on any view.
// Must be called with c.mu held.
func (c *Composer) populateCustomTexts(rec *store.PlacementRecord) {
	if rec == nil {
		return
	}
	for i := range rec.CustomTexts {
		t := &scene.Text{
			Id:          rec.CustomTexts[i].ID,
			Kind:        scene.KindCustomText,
			Visible:     true,
			Interactive: true,
		}
		if t.Id == "" {
			t.Id = uuid.NewString()
		}
		applyText(t, &rec.CustomTexts[i])
		c.scene.Add(t)
	}
}

// applyText copies a persisted placement's pose and style onto a scene
// text, verbatim.
func applyText(t *scene.Text, tp *store.TextPlacement) {
	if tp.ID != "" {
		t.Id = tp.ID
	}
	if tp.Text != "" {
		t.Content = tp.Text
	}
	t.X = tp.Left
	t.Y = tp.Top
	t.FontSizePx = tp.FontSize
	t.FontFamily = tp.FontFamily
	t.FillColor = tp.Fill
	t.StrokeColor = tp.Stroke
	t.StrokeWidth = tp.StrokeWidth
	t.RotationDeg = tp.Angle
	t.TextAlign = tp.TextAlign
	t.BoxWidth = tp.Width
	t.BoxHeight = tp.Height
}

// autoCenterLocked centers the name and number on the back template's own
// horizontal center and derives their vertical positions and font sizes
// from the template's rendered bounding box. The name then shrinks in 1px
// steps while its rendered width exceeds 70% of the template width. Must
// be called with c.mu held.
func (c *Composer) autoCenterLocked(ctx context.Context) {
	tpl := c.scene.Template()
	if tpl == nil {
		return
	}
	tb := tpl.Bounds(nil)

	names := c.scene.Texts(scene.KindPlayerName)
	numbers := c.scene.Texts(scene.KindPlayerNumber)
	if len(names) == 0 || len(numbers) == 0 {
		return
	}
	name, number := names[0], numbers[0]

	cx := tb.Left + tb.Width/2
	name.X = cx
	name.Y = tb.Top + tb.Height*c.ratios.NameTopRatio
	number.X = cx
	number.Y = tb.Top + tb.Height*c.ratios.NumberTopRatio

	name.FontSizePx = math.Max(math.Round(tb.Height*c.ratios.NameFontRatio), nameFontFloor)
	number.FontSizePx = math.Max(math.Round(tb.Height*c.ratios.NumberFontRatio), numberFontFloor)

	maxW := tb.Width * nameWidthLimit
	for name.FontSizePx > shrinkFontFloor {
		w, _ := c.fonts.MeasureText(name.Content, name.FontFamily, name.FontSizePx)
		if w <= maxW {
			break
		}
		name.FontSizePx--
	}

	observability.Composer().OnAutoCenter(ctx, string(c.view))
}
