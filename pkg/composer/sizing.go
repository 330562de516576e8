package composer

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/dotstitch/dotstitch/pkg/scene"
)

// Per-view maximum fit boxes. Template images are scaled to fit inside
// these before the garment size factor is applied.
var fitBoxes = map[scene.View]fitBox{
	scene.ViewFront:       {w: 640, h: 514},
	scene.ViewBack:        {w: 640, h: 514},
	scene.ViewLeftSleeve:  {w: 400, h: 400},
	scene.ViewRightSleeve: {w: 400, h: 400},
	scene.ViewCollar:      {w: 560, h: 206},
}

type fitBox struct{ w, h float64 }

func fitBoxFor(view scene.View) fitBox {
	if b, ok := fitBoxes[view]; ok {
		return b
	}
	return fitBox{w: scene.DefaultWidth, h: scene.DefaultHeight}
}

// collarTopOffset anchors the collar template at a fixed top offset
// instead of vertical centering.
const collarTopOffset = 154

// Size factor interpolation anchors: garment size 22 scales the template
// to 0.8x of its base fit, size 46 to 1.2x. The same line extrapolates
// outside that range, clamped so malformed sizes cannot produce a
// negative or absurd scale.
const (
	sizeFactorLowSize   = 22
	sizeFactorLowScale  = 0.8
	sizeFactorHighSize  = 46
	sizeFactorHighScale = 1.2
	minSizeFactor       = 0.2
	maxSizeFactor       = 2.0
)

// SizeFactor maps a declared garment size to a template scale multiplier.
// Non-numeric sizes yield the neutral factor 1.
func SizeFactor(size string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(size), 64)
	if err != nil {
		return 1
	}
	slope := (sizeFactorHighScale - sizeFactorLowScale) / (sizeFactorHighSize - sizeFactorLowSize)
	f := sizeFactorLowScale + (v-sizeFactorLowSize)*slope
	return math.Min(math.Max(f, minSizeFactor), maxSizeFactor)
}

// logoDisplayMax caps a freshly added logo's larger dimension so oversized
// artwork lands at a manageable on-canvas size. Smaller images keep scale 1.
const logoDisplayMax = 200

func logoFitScale(img image.Image) float64 {
	b := img.Bounds()
	longest := math.Max(float64(b.Dx()), float64(b.Dy()))
	if longest <= logoDisplayMax {
		return 1
	}
	return logoDisplayMax / longest
}
