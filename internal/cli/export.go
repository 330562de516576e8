package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/export"
	"github.com/dotstitch/dotstitch/pkg/roster"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	rosterPath string // roster file, overrides the config
	player     string // player name filter; empty exports the whole roster
	number     string // jersey number, disambiguates duplicate names
	view       string // single view; empty exports all views
	part       string // single element kind within the view
	format     string // png, jpeg, or webp
	preset     string // quality preset: high, medium, low
	dpi        int    // target print DPI
	background string // background color for opaque output
	opaque     bool   // force the background for alpha-capable formats
	quality    int    // JPEG quality
	outDir     string // output directory
}

// exportCommand creates the export command producing print-ready rasters.
//
// Default settings come from the project config: PNG at 300 DPI into the
// current directory. A single player and view can be selected with flags;
// otherwise every roster player and every composed view is exported.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compose views and export print-ready rasters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.rosterPath, "roster", "", "roster file (csv or json), overrides config")
	cmd.Flags().StringVarP(&opts.player, "player", "p", "", "export a single player by name")
	cmd.Flags().StringVarP(&opts.number, "number", "n", "", "jersey number, disambiguates duplicate names")
	cmd.Flags().StringVar(&opts.view, "view", "", "export a single view: front, back, leftSleeve, rightSleeve, collar")
	cmd.Flags().StringVar(&opts.part, "part", "", "export only one element kind of the view: template, name, number, text, logo")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg, webp")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "quality preset: high (300 DPI), medium (200), low (150)")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "target print DPI (default 300), overrides --preset")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color for opaque output")
	cmd.Flags().BoolVar(&opts.opaque, "opaque", false, "composite the background beneath PNG/WebP output")
	cmd.Flags().IntVar(&opts.quality, "quality", 0, "JPEG quality 1-100 (default 92)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default from config)")

	return cmd
}

// partKinds maps the --part flag values to scene kinds.
var partKinds = map[string]scene.Kind{
	"template": scene.KindTemplate,
	"name":     scene.KindPlayerName,
	"number":   scene.KindPlayerNumber,
	"text":     scene.KindCustomText,
	"logo":     scene.KindCustomLogo,
}

func (c *CLI) runExport(ctx context.Context, opts *exportOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.part != "" {
		if _, ok := partKinds[opts.part]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown part: %s", opts.part)
		}
		if opts.view == "" {
			return errors.New(errors.ErrCodeInvalidInput, "--part requires --view")
		}
	}
	renderOpts := cfg.ExportOptions()
	if opts.format != "" {
		renderOpts.Format = export.Format(opts.format)
		if !renderOpts.Format.Valid() {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.format)
		}
	}
	if opts.preset != "" {
		renderOpts.Multiplier = export.Preset(opts.preset).Multiplier()
	}
	if opts.dpi > 0 {
		renderOpts.Multiplier = export.MultiplierForDPI(opts.dpi)
	}
	if opts.background != "" {
		renderOpts.Background = opts.background
	}
	if opts.opaque {
		renderOpts.Opaque = true
	}
	if opts.quality > 0 {
		renderOpts.JPEGQuality = opts.quality
	}

	outDir := cfg.Export.OutDir
	if opts.outDir != "" {
		outDir = opts.outDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	players, err := c.resolvePlayers(cfg.Roster, opts)
	if err != nil {
		return err
	}

	comp, closeStore, err := c.newComposer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	prog := newProgress(c.Logger)
	written, failed := 0, 0
	for _, p := range players {
		n, err := c.exportPlayer(ctx, comp, p, opts.view, opts.part, outDir, renderOpts)
		written += n
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			// One player failing should not sink the rest of the roster.
			printError("%s: %v", p.Label(), err)
			failed++
		}
	}
	comp.Flush(ctx)

	prog.done(fmt.Sprintf("Exported %d files", written))
	if failed > 0 {
		return errors.New(errors.ErrCodeInternal, "%d of %d players failed to export", failed, len(players))
	}
	return nil
}

// resolvePlayers builds the player set to export from the roster and the
// player/number flags.
func (c *CLI) resolvePlayers(rosterPath string, opts *exportOpts) ([]roster.Player, error) {
	if opts.rosterPath != "" {
		rosterPath = opts.rosterPath
	}
	if rosterPath == "" {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "no roster configured; pass --roster or set it in dotstitch.toml")
	}
	players, err := roster.LoadFile(rosterPath)
	if err != nil {
		return nil, err
	}
	if opts.player == "" {
		return players, nil
	}
	p, err := roster.Find(players, opts.player, opts.number)
	if err != nil {
		return nil, err
	}
	return []roster.Player{p}, nil
}

func (c *CLI) exportPlayer(ctx context.Context, comp *composer.Composer, p roster.Player, view, part, outDir string, renderOpts export.Options) (int, error) {
	c.Logger.Info("exporting player", "player", p.Label())
	if err := comp.SelectPlayer(ctx, p); err != nil {
		return 0, err
	}

	if view != "" {
		if !scene.View(view).Valid() {
			return 0, errors.New(errors.ErrCodeInvalidView, "unknown view: %s", view)
		}
		if err := comp.SelectView(ctx, scene.View(view)); err != nil {
			return 0, err
		}
		var path string
		var err error
		if part != "" {
			path, err = export.CurrentViewPart(ctx, comp, outDir, partKinds[part], renderOpts)
		} else {
			path, err = export.CurrentView(ctx, comp, outDir, renderOpts)
		}
		if err != nil {
			if errors.Is(err, errors.ErrCodeEmptyExport) {
				printWarning("%s: %s has no design content, skipped", p.Label(), view)
				return 0, nil
			}
			return 0, err
		}
		printFile(path)
		return 1, nil
	}

	paths, err := export.AllViews(ctx, comp, outDir, renderOpts)
	if err != nil {
		return len(paths), err
	}
	for _, path := range paths {
		printFile(path)
	}
	return len(paths), nil
}
