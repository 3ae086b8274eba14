// Package tesseract recognizes text lines with a local Tesseract install via
// gosseract. It needs no network or credentials, which makes it the fallback
// when the cloud providers are unavailable, at the cost of much weaker
// handwriting performance.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/pressbook-scans/clipper/pkg/geometry"
	"github.com/pressbook-scans/clipper/pkg/providers"
	"github.com/pressbook-scans/clipper/pkg/reconstruct"
)

// Provider implements the local Tesseract recognition provider
type Provider struct{}

// New creates a new Tesseract provider
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "tesseract"
}

// ValidateConfig validates the Tesseract configuration. Language packs are
// resolved by Tesseract itself at recognition time, so there is nothing to
// check up front.
func (p *Provider) ValidateConfig(config providers.Config) error {
	return nil
}

// DetectLines runs Tesseract line recognition over the encoded crop.
// Tesseract reports pixel boxes, so geometry is normalized against the
// decoded image dimensions before handing lines back.
func (p *Provider) DetectLines(ctx context.Context, config providers.Config, imageBytes []byte) ([]reconstruct.Line, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read crop dimensions: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("crop has zero size")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(config.Languages) > 0 {
		if err := client.SetLanguage(config.Languages...); err != nil {
			return nil, fmt.Errorf("failed to set languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return nil, fmt.Errorf("failed to load crop into tesseract: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("tesseract recognition failed: %w", err)
	}

	w := float64(cfg.Width)
	h := float64(cfg.Height)
	var lines []reconstruct.Line
	for _, box := range boxes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bbox := reconstruct.BBox{
			Left:   float64(box.Box.Min.X) / w,
			Top:    float64(box.Box.Min.Y) / h,
			Width:  float64(box.Box.Dx()) / w,
			Height: float64(box.Box.Dy()) / h,
		}
		lines = append(lines, reconstruct.Line{
			Text: box.Word,
			Polygon: geometry.Polygon{
				{X: bbox.Left, Y: bbox.Top},
				{X: bbox.Left + bbox.Width, Y: bbox.Top},
				{X: bbox.Left + bbox.Width, Y: bbox.Top + bbox.Height},
				{X: bbox.Left, Y: bbox.Top + bbox.Height},
			},
			BBox: bbox,
		})
	}
	return lines, nil
}
