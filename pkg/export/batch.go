package export

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/observability"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

// InterExportDelay spaces sequential view exports apart. The legacy host
// environment dropped downloads triggered back to back; the pause also
// keeps per-view composition and disk writes clearly ordered in logs.
const InterExportDelay = 200 * time.Millisecond

// CurrentView exports the composer's live scene to dir and returns the
// written path.
func CurrentView(ctx context.Context, c *composer.Composer, dir string, opts Options) (string, error) {
	opts.Normalize()
	view := c.CurrentView()
	if view == "" {
		return "", errors.New(errors.ErrCodeInvalidView, "no view selected")
	}
	return exportView(ctx, c, dir, view, opts)
}

// CurrentViewPart exports only the current view's objects of one kind,
// cropped to that kind's own bounds. Used for single-component exports
// like the template part alone or only the placed logos.
func CurrentViewPart(ctx context.Context, c *composer.Composer, dir string, k scene.Kind, opts Options) (string, error) {
	opts.Normalize()
	view := c.CurrentView()
	if view == "" {
		return "", errors.New(errors.ErrCodeInvalidView, "no view selected")
	}
	path := filepath.Join(dir, partFileNameFor(c, view, k, opts.Format))
	return writeExport(ctx, view, path, opts, func() (image.Image, error) {
		return RenderKind(c.Scene(), c.Fonts(), k, opts)
	})
}

// AllViews composes and exports every view in order, fully completing one
// view's composition before capturing it. Views with no design content are
// skipped; the first hard failure aborts. Returns the written paths.
func AllViews(ctx context.Context, c *composer.Composer, dir string, opts Options) ([]string, error) {
	opts.Normalize()
	var paths []string
	for i, view := range scene.Views() {
		if i > 0 {
			select {
			case <-time.After(InterExportDelay):
			case <-ctx.Done():
				return paths, ctx.Err()
			}
		}
		if err := c.SelectView(ctx, view); err != nil {
			return paths, err
		}
		path, err := exportView(ctx, c, dir, view, opts)
		if err != nil {
			if errors.Is(err, errors.ErrCodeEmptyExport) {
				continue
			}
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportView(ctx context.Context, c *composer.Composer, dir string, view scene.View, opts Options) (string, error) {
	path := filepath.Join(dir, fileNameFor(c, view, opts.Format))
	return writeExport(ctx, view, path, opts, func() (image.Image, error) {
		return RenderDesign(c.Scene(), c.Fonts(), opts)
	})
}

// writeExport runs render and writes the raster to path, firing the export
// hooks around the whole operation.
func writeExport(ctx context.Context, view scene.View, path string, opts Options, render func() (image.Image, error)) (string, error) {
	start := time.Now()
	observability.Export().OnExportStart(ctx, string(view), string(opts.Format), opts.Multiplier)

	img, err := render()
	if err != nil {
		observability.Export().OnExportComplete(ctx, string(view), string(opts.Format), 0, 0, time.Since(start), err)
		return "", err
	}
	if err := writeRaster(path, img, opts); err != nil {
		observability.Export().OnExportComplete(ctx, string(view), string(opts.Format), 0, 0, time.Since(start), err)
		return "", err
	}

	b := img.Bounds()
	observability.Export().OnExportComplete(ctx, string(view), string(opts.Format), b.Dx(), b.Dy(), time.Since(start), nil)
	return path, nil
}

func fileNameFor(c *composer.Composer, view scene.View, f Format) string {
	if p := c.CurrentPlayer(); p != nil {
		return FileName(p.PlayerName, p.JerseyNumber, view, f)
	}
	return FileName("design", "", view, f)
}

func partFileNameFor(c *composer.Composer, view scene.View, k scene.Kind, f Format) string {
	if p := c.CurrentPlayer(); p != nil {
		return PartFileName(p.PlayerName, p.JerseyNumber, view, k, f)
	}
	return PartFileName("design", "", view, k, f)
}

func writeRaster(path string, img image.Image, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create export file %s", path)
	}
	if err := Encode(f, img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
