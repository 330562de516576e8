package export

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

// Encode writes img in the requested format.
func Encode(w io.Writer, img image.Image, opts Options) error {
	opts.Normalize()
	switch opts.Format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.JPEGQuality})
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileName builds the export file name: {playerName}_{jerseyNumber}_{view}.{ext}
// with unsafe characters collapsed to underscores.
func FileName(playerName, jerseyNumber string, view scene.View, f Format) string {
	base := playerName + "_" + jerseyNumber + "_" + string(view)
	base = unsafeFileChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	return base + "." + f.Ext()
}

// partSuffixes names each kind in part-export file names.
var partSuffixes = map[scene.Kind]string{
	scene.KindTemplate:     "part",
	scene.KindPlayerName:   "name",
	scene.KindPlayerNumber: "number",
	scene.KindCustomText:   "text",
	scene.KindCustomLogo:   "logo",
}

// PartFileName builds the file name for a single-kind export:
// {playerName}_{jerseyNumber}_{view}_{part}.{ext}.
func PartFileName(playerName, jerseyNumber string, view scene.View, k scene.Kind, f Format) string {
	suffix, ok := partSuffixes[k]
	if !ok {
		suffix = unsafeFileChars.ReplaceAllString(string(k), "_")
	}
	base := strings.TrimSuffix(FileName(playerName, jerseyNumber, view, f), "."+f.Ext())
	return base + "_" + suffix + "." + f.Ext()
}

// parseHexColor reads #rgb and #rrggbb colors. Malformed values fall back
// to black, matching the text fill default.
func parseHexColor(s string) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}
