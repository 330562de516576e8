package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/httputil"
)

// maxAssetBytes caps how much image data a single source may yield.
const maxAssetBytes = 32 << 20

// maxAssetDim caps decoded image dimensions. Camera originals routinely
// exceed print resolution; anything larger is downscaled on load.
const maxAssetDim = 4096

// Loader resolves an asset source string to a decoded image.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// ImageLoader loads images from data URLs, http(s) URLs and local paths.
// The zero value is not usable; construct with [NewImageLoader].
type ImageLoader struct {
	client  *http.Client
	baseDir string
}

var _ Loader = (*ImageLoader)(nil)

// LoaderOption configures an [ImageLoader].
type LoaderOption func(*ImageLoader)

// WithHTTPClient replaces the HTTP client used for remote sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *ImageLoader) { l.client = c }
}

// WithBaseDir resolves relative file paths against dir.
func WithBaseDir(dir string) LoaderOption {
	return func(l *ImageLoader) { l.baseDir = dir }
}

// NewImageLoader returns a loader with a 30 second HTTP timeout.
func NewImageLoader(opts ...LoaderOption) *ImageLoader {
	l := &ImageLoader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes the image named by src. The scheme selects the
// transport: "data:" URLs decode inline, "http:"/"https:" fetch with
// retries, anything else is treated as a filesystem path.
func (l *ImageLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, errors.New(errors.ErrCodeAssetLoad, "empty asset source")
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(src, "data:"):
		data, err = decodeDataURL(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		data, err = l.fetch(ctx, src)
	default:
		data, err = l.readFile(src)
	}
	if err != nil {
		return nil, err
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode image %s", describe(src))
	}
	if b := img.Bounds(); b.Dx() > maxAssetDim || b.Dy() > maxAssetDim {
		img = imaging.Fit(img, maxAssetDim, maxAssetDim, imaging.Lanczos)
	}
	return img, nil
}

// decodeImage dispatches on the stream's signature bytes. TGA carries no
// signature at all, so it cannot share image.Decode's sniffing with the
// other formats and is instead the fallback for unrecognized streams.
func decodeImage(data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode(r)
	case bytes.HasPrefix(data, []byte("\xff\xd8")):
		return jpeg.Decode(r)
	case bytes.HasPrefix(data, []byte("GIF8")):
		return gif.Decode(r)
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return webp.Decode(r)
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return tiff.Decode(r)
	default:
		return tga.Decode(r)
	}
}

func (l *ImageLoader) readFile(path string) ([]byte, error) {
	if l.baseDir != "" && !os.IsPathSeparator(path[0]) {
		path = l.baseDir + string(os.PathSeparator) + path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "read asset file")
	}
	return data, nil
}

func (l *ImageLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &httputil.RetryableError{Err: fmt.Errorf("server error: %s", resp.Status)}
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status: %s", resp.Status)
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "fetch asset: %s", describe(url))
	}
	return data, nil
}

// decodeDataURL extracts the payload of a data URL. Only base64 payloads
// are accepted since that is the only encoding image exports produce.
func decodeDataURL(src string) ([]byte, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, errors.New(errors.ErrCodeAssetLoad, "malformed data URL")
	}
	meta, payload := src[len("data:"):comma], src[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New(errors.ErrCodeAssetLoad, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode data URL payload")
	}
	return data, nil
}

// describe shortens a source string for error messages; data URLs carry
// the whole payload and would drown the log otherwise.
func describe(src string) string {
	if len(src) > 96 {
		return src[:96] + "..."
	}
	return src
}
