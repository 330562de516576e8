// Package composer builds and rebuilds the live scene for a requested
// garment view: it loads the view's template asset, re-applies persisted
// placements or computes defaults, and runs the auto-center heuristic when
// no prior placement exists.
//
// A monotonically increasing generation token coordinates overlapping view
// switches: every run captures the token at start and re-checks it after
// each asset load, so a superseded run never mutates the scene after a newer
// one has started. Cancellation is cooperative; a stale run's results are
// discarded, not aborted mid-fetch.
package composer

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dotstitch/dotstitch/pkg/assets"
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/fonts"
	"github.com/dotstitch/dotstitch/pkg/observability"
	"github.com/dotstitch/dotstitch/pkg/roster"
	"github.com/dotstitch/dotstitch/pkg/scene"
	"github.com/dotstitch/dotstitch/pkg/store"
)

// State names the composer's position in a view transition.
type State string

const (
	StateIdle       State = "idle"
	StateCapturing  State = "capturing"
	StateClearing   State = "clearing"
	StateLoading    State = "loading"
	StatePopulating State = "populating"
	StateRendered   State = "rendered"
)

// Ratios is the process-wide placement configuration applied uniformly
// across all players for automatic name/number centering. Immutable after
// construction; injected, never a shared singleton.
type Ratios struct {
	NameTopRatio    float64 `toml:"name_top_ratio"`
	NumberTopRatio  float64 `toml:"number_top_ratio"`
	NameFontRatio   float64 `toml:"name_font_ratio"`
	NumberFontRatio float64 `toml:"number_font_ratio"`
}

// DefaultRatios returns the stock centering ratios.
func DefaultRatios() Ratios {
	return Ratios{
		NameTopRatio:    0.26,
		NumberTopRatio:  0.52,
		NameFontRatio:   0.08,
		NumberFontRatio: 0.28,
	}
}

// Composer owns the live scene for the duration of a view and mediates all
// transitions between views and players.
//
// Methods are safe for concurrent use. Only the most recent run ever
// mutates the scene; earlier runs detect the newer generation token and
// discard their results.
type Composer struct {
	positions *store.Positions
	loader    assets.Loader
	templates assets.TemplateSet
	fonts     *fonts.Library
	ratios    Ratios
	logger    *log.Logger

	mu         sync.Mutex
	scene      *scene.Scene
	state      State
	generation uint64
	view       scene.View
	player     *roster.Player
	records    store.ViewRecords
}

// Option configures a Composer.
type Option func(*Composer)

// WithTemplates sets the template asset sources per view.
func WithTemplates(t assets.TemplateSet) Option {
	return func(c *Composer) { c.templates = t }
}

// WithRatios overrides the auto-center placement ratios.
func WithRatios(r Ratios) Option {
	return func(c *Composer) { c.ratios = r }
}

// WithFonts sets the font library used for text measurement.
func WithFonts(f *fonts.Library) Option {
	return func(c *Composer) { c.fonts = f }
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// New creates a composer over the given placement store and asset loader.
func New(positions *store.Positions, loader assets.Loader, opts ...Option) *Composer {
	c := &Composer{
		positions: positions,
		loader:    loader,
		fonts:     fonts.NewLibrary(),
		ratios:    DefaultRatios(),
		logger:    log.Default(),
		scene:     scene.New(),
		state:     StateIdle,
		records:   store.ViewRecords{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scene returns the live scene handle for UI binding. The composer retains
// ownership; callers must route structural mutations through the composer.
func (c *Composer) Scene() *scene.Scene { return c.scene }

// Measurer returns the text measurer backing the scene's bounds math.
func (c *Composer) Measurer() scene.Measurer { return c.fonts }

// Fonts returns the font library shared with rendering.
func (c *Composer) Fonts() *fonts.Library { return c.fonts }

// State returns the current transition state.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentView returns the displayed view, or "" before the first selection.
func (c *Composer) CurrentView() scene.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// CurrentPlayer returns the selected player, or nil.
func (c *Composer) CurrentPlayer() *roster.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player
}

// SelectView switches the scene to the given view. The outgoing view's
// placements are captured and persisted first, so manual edits survive the
// switch. Returns nil when a newer selection supersedes this one.
func (c *Composer) SelectView(ctx context.Context, view scene.View) error {
	if !view.Valid() {
		return errors.New(errors.ErrCodeInvalidView, "unknown view: %s", view)
	}

	c.mu.Lock()
	gen := c.beginRun(ctx)
	c.view = view
	c.mu.Unlock()

	return c.compose(ctx, gen, view)
}

// SelectPlayer switches to a different player, reloading their persisted
// placements and recomposing the current view (front, before any view was
// selected). The outgoing player's current view is captured first.
func (c *Composer) SelectPlayer(ctx context.Context, p roster.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	gen := c.beginRun(ctx)
	c.player = &p
	c.records = store.ViewRecords{}
	if c.view == "" {
		c.view = scene.ViewFront
	}
	view := c.view
	c.mu.Unlock()

	recs, err := c.positions.Load(ctx, p.Key())
	if err != nil {
		// Best-effort persistence: fall through with the empty map.
		c.logger.Warn("placement load failed, composing with defaults",
			"player", p.Key(), "err", err)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		observability.Composer().OnStaleRunDiscarded(ctx, string(view))
		return nil
	}
	c.records = recs
	c.mu.Unlock()

	return c.compose(ctx, gen, view)
}

// beginRun starts a new composition run: it bumps the generation token,
// snapshots the outgoing view into the placement store, and clears the
// scene. Must be called with c.mu held.
func (c *Composer) beginRun(ctx context.Context) uint64 {
	c.generation++
	gen := c.generation

	c.state = StateCapturing
	if c.player != nil && c.view != "" {
		rec := store.SnapshotScene(c.scene, c.view)
		if !rec.Empty() || c.records[c.view] != nil {
			c.records[c.view] = rec
			c.persistLocked(ctx)
		}
	}

	c.state = StateClearing
	c.scene.Clear()
	return gen
}

// persistLocked writes the player's placement blob. Failures are logged and
// swallowed: the in-memory records stay authoritative for the session and
// loss of placement memory degrades gracefully to defaults.
func (c *Composer) persistLocked(ctx context.Context) {
	if c.player == nil {
		return
	}
	if err := c.positions.Save(ctx, c.player.Key(), c.records); err != nil {
		c.logger.Warn("placement save failed", "player", c.player.Key(), "err", err)
	}
}

// NoteMutation captures the current scene into the placement store. Call it
// after the operator moves, resizes, or restyles an element so the change
// survives the next view switch and process restart.
func (c *Composer) NoteMutation(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.player == nil || c.view == "" {
		return
	}
	c.records[c.view] = store.SnapshotScene(c.scene, c.view)
	c.persistLocked(ctx)
}

// AddCustomText places a new text element at the canvas center and persists
// it. Allowed on every view.
func (c *Composer) AddCustomText(ctx context.Context, content string) (*scene.Text, error) {
	if content == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "custom text is empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	t := &scene.Text{
		Id:          uuid.NewString(),
		Kind:        scene.KindCustomText,
		Content:     content,
		X:           c.scene.Width / 2,
		Y:           c.scene.Height / 2,
		FontFamily:  store.DefaultFontFamily,
		FontSizePx:  store.DefaultFontSize,
		FillColor:   store.DefaultFillColor,
		TextAlign:   store.DefaultTextAlign,
		Visible:     true,
		Interactive: true,
	}
	c.scene.Add(t)
	if c.player != nil && c.view != "" {
		c.records[c.view] = store.SnapshotScene(c.scene, c.view)
		c.persistLocked(ctx)
	}
	return t, nil
}

// AddCustomLogo loads artwork from src and places it at the canvas center.
// Logos are front-only; on other views the call is rejected. Returns
// (nil, nil) when a view or player switch supersedes the add mid-load.
func (c *Composer) AddCustomLogo(ctx context.Context, src string) (*scene.Picture, error) {
	c.mu.Lock()
	if c.view != scene.ViewFront {
		c.mu.Unlock()
		return nil, errors.New(errors.ErrCodeInvalidInput, "logos can only be placed on the front view")
	}
	gen := c.generation
	c.mu.Unlock()

	img, err := c.loader.Load(ctx, src)
	if err != nil {
		observability.Composer().OnAssetLoadError(ctx, src, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		observability.Composer().OnStaleRunDiscarded(ctx, string(scene.ViewFront))
		return nil, nil
	}

	s := logoFitScale(img)
	p := &scene.Picture{
		Id:          uuid.NewString(),
		Kind:        scene.KindCustomLogo,
		Source:      src,
		Img:         img,
		X:           c.scene.Width / 2,
		Y:           c.scene.Height / 2,
		ScaleX:      s,
		ScaleY:      s,
		Visible:     true,
		Interactive: true,
	}
	c.scene.Add(p)
	if c.player != nil {
		c.records[scene.ViewFront] = store.SnapshotScene(c.scene, scene.ViewFront)
		c.persistLocked(ctx)
	}
	return p, nil
}

// AutoCenterBackText re-runs the centering heuristic on demand. Only
// meaningful on the back view with a player selected; the result is
// persisted like any manual edit.
func (c *Composer) AutoCenterBackText(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != scene.ViewBack {
		return errors.New(errors.ErrCodeInvalidView, "auto-center applies to the back view only")
	}
	if c.player == nil {
		return errors.New(errors.ErrCodePlayerNotFound, "no player selected")
	}
	c.autoCenterLocked(ctx)
	c.records[c.view] = store.SnapshotScene(c.scene, c.view)
	c.persistLocked(ctx)
	return nil
}

// Flush captures and persists the current view without switching. Use it
// before process exit so the last view's edits are not lost.
func (c *Composer) Flush(ctx context.Context) {
	c.NoteMutation(ctx)
}
