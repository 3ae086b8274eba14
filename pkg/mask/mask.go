// Package mask isolates a hand-drawn polygon region from a page image.
//
// The extractor crops the polygon's margin-expanded bounding box out of the
// source raster and blanks every pixel that falls outside the polygon under
// the even-odd fill rule, so the recognition service only ever sees the
// selected region. The per-pixel test is O(width x height x vertices), which
// is fine for user-selected sub-regions but would be the wrong tool for
// rasterizing a full page.
package mask

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pressbook-scans/clipper/pkg/geometry"
)

var (
	// ErrEmptyRegion is reported when the vertex list has no points.
	ErrEmptyRegion = errors.New("region has no vertices")
	// ErrDegenerateRegion is reported when the margin-expanded bounding box
	// has zero area after clamping to the image.
	ErrDegenerateRegion = errors.New("region has zero area")
)

const (
	// DefaultMargin is the padding, in pixels, added around the polygon's
	// bounding box before cropping.
	DefaultMargin = 4
	// DefaultJPEGQuality is the encoding quality for the recognition payload.
	DefaultJPEGQuality = 90
)

// DefaultFill is the mid-gray used to blank pixels outside the polygon.
var DefaultFill = color.NRGBA{R: 48, G: 48, B: 48, A: 255}

// Options holds the extraction heuristics. They are tuned to scanned
// newspaper pages; tests and future corpora can vary them here instead of
// editing the algorithm.
type Options struct {
	Margin      float64
	Fill        color.NRGBA
	JPEGQuality int
}

// DefaultOptions returns the extraction defaults.
func DefaultOptions() Options {
	return Options{
		Margin:      DefaultMargin,
		Fill:        DefaultFill,
		JPEGQuality: DefaultJPEGQuality,
	}
}

func (o Options) withDefaults() Options {
	if o.JPEGQuality <= 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Fill.A == 0 {
		o.Fill = DefaultFill
	}
	return o
}

// Crop is the masked sub-raster extracted for one polygon annotation.
type Crop struct {
	// Image holds the cropped pixels, exterior blanked with the fill color.
	Image *image.NRGBA
	// Rect is the region of the source image the crop covers, after margin
	// expansion and clamping.
	Rect image.Rectangle

	quality int
}

// Width returns the crop width in pixels.
func (c *Crop) Width() int { return c.Image.Bounds().Dx() }

// Height returns the crop height in pixels.
func (c *Crop) Height() int { return c.Image.Bounds().Dy() }

// EncodeJPEG returns the byte-encoded form of the crop, the payload handed to
// the recognition service.
func (c *Crop) EncodeJPEG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.Image, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	return buf.Bytes(), nil
}

// Extract crops the polygon's margin-expanded bounding box out of src and
// blanks every pixel outside the polygon. Vertices are in image-pixel space.
// The polygon is closed implicitly; the last vertex connects back to the
// first. Fewer than three vertices never panics: the interior is empty and
// the whole crop comes back filled.
func Extract(src image.Image, poly geometry.Polygon, opts Options) (*Crop, error) {
	if len(poly) == 0 {
		return nil, ErrEmptyRegion
	}
	opts = opts.withDefaults()

	bounds, _ := poly.Bounds()
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	x0 := clamp(int(bounds.Min.X-opts.Margin), 0, w)
	x1 := clamp(int(bounds.Max.X+opts.Margin), 0, w)
	y0 := clamp(int(bounds.Min.Y-opts.Margin), 0, h)
	y1 := clamp(int(bounds.Max.Y+opts.Margin), 0, h)
	if x1 <= x0 || y1 <= y0 {
		return nil, ErrDegenerateRegion
	}

	// Work on a zero-based NRGBA clone so pixel reads are uniform whatever
	// format the page was decoded from.
	page := imaging.Clone(src)
	local := poly.Translate(float64(x0), float64(y0))

	out := image.NewNRGBA(image.Rect(0, 0, x1-x0, y1-y0))
	for y := 0; y < y1-y0; y++ {
		for x := 0; x < x1-x0; x++ {
			if local.Contains(float64(x), float64(y)) {
				out.SetNRGBA(x, y, page.NRGBAAt(x0+x, y0+y))
			} else {
				out.SetNRGBA(x, y, opts.Fill)
			}
		}
	}

	return &Crop{
		Image:   out,
		Rect:    image.Rect(x0, y0, x1, y1),
		quality: opts.JPEGQuality,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
