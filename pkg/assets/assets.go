// Package assets loads jersey template images and user-supplied logos
// from local files, remote URLs, and inline data URLs.
//
// The format is detected from the byte stream's signature regardless of
// the source's file extension or content type; PNG, JPEG, GIF, WebP, TIFF
// and TGA are supported.
package assets

import (
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

// TemplateSet names the template image source for each garment view.
// Empty entries mean the view has no template and renders on a bare canvas.
type TemplateSet struct {
	Front       string `toml:"front" json:"front"`
	Back        string `toml:"back" json:"back"`
	LeftSleeve  string `toml:"left_sleeve" json:"leftSleeve"`
	RightSleeve string `toml:"right_sleeve" json:"rightSleeve"`
	Collar      string `toml:"collar" json:"collar"`
}

// Source returns the template source configured for view.
func (t TemplateSet) Source(view scene.View) (string, error) {
	switch view {
	case scene.ViewFront:
		return t.Front, nil
	case scene.ViewBack:
		return t.Back, nil
	case scene.ViewLeftSleeve:
		return t.LeftSleeve, nil
	case scene.ViewRightSleeve:
		return t.RightSleeve, nil
	case scene.ViewCollar:
		return t.Collar, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidView, "unknown view: %s", view)
	}
}
