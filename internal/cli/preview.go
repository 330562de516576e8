package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/export"
	"github.com/dotstitch/dotstitch/pkg/roster"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

// previewCommand renders one composed view at screen resolution with a
// transparent background, for a quick visual check before a print export.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		playerName string
		number     string
		view       string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a single composed view at screen resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), playerName, number, view, out)
		},
	}

	cmd.Flags().StringVarP(&playerName, "player", "p", "", "player name (required)")
	cmd.Flags().StringVarP(&number, "number", "n", "", "jersey number, disambiguates duplicate names")
	cmd.Flags().StringVar(&view, "view", string(scene.ViewFront), "view to preview")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, playerName, number, view, out string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if !scene.View(view).Valid() {
		return errors.New(errors.ErrCodeInvalidView, "unknown view: %s", view)
	}
	players, err := roster.LoadFile(cfg.Roster)
	if err != nil {
		return err
	}
	p, err := roster.Find(players, playerName, number)
	if err != nil {
		return err
	}

	comp, closeStore, err := c.newComposer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := comp.SelectPlayer(ctx, p); err != nil {
		return err
	}
	if err := comp.SelectView(ctx, scene.View(view)); err != nil {
		return err
	}

	path, err := export.CurrentView(ctx, comp, out, export.Options{
		Format:     export.FormatPNG,
		Multiplier: 1,
	})
	if err != nil {
		return err
	}
	printSuccess("Preview written")
	printFile(filepath.Clean(path))
	return nil
}
