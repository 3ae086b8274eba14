// Package gvision recognizes text lines with the Google Cloud Vision API.
//
// Vision's document-text annotation reports words and symbols with pixel
// geometry and detected break types; this provider stitches symbols back
// into lines, splitting on end-of-line breaks, and normalizes the geometry
// to [0,1] against the page dimensions. A detected HYPHEN break contributes
// a literal trailing hyphen so downstream dehyphenation sees it.
package gvision

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/pressbook-scans/clipper/internal/utils"
	"github.com/pressbook-scans/clipper/pkg/geometry"
	"github.com/pressbook-scans/clipper/pkg/providers"
	"github.com/pressbook-scans/clipper/pkg/reconstruct"
)

// Provider implements the Google Cloud Vision recognition provider
type Provider struct{}

// New creates a new Vision provider
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "vision"
}

// ValidateConfig validates the Vision configuration
func (p *Provider) ValidateConfig(config providers.Config) error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable not set")
	}
	return nil
}

// DetectLines runs document text detection and returns the stitched lines.
func (p *Provider) DetectLines(ctx context.Context, config providers.Config, image []byte) ([]reconstruct.Line, error) {
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", utils.MaskSensitiveError(err))
	}
	defer client.Close()

	img, err := vision.NewImageFromReader(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	annotation, err := client.DetectDocumentText(ctx, img, nil)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", utils.MaskSensitiveError(err))
	}
	if annotation == nil {
		return nil, nil
	}

	var lines []reconstruct.Line
	for _, page := range annotation.GetPages() {
		lines = append(lines, pageLines(page)...)
	}
	return lines, nil
}

// lineBuilder accumulates one visual line's text and pixel extent.
type lineBuilder struct {
	text                   []byte
	minX, minY, maxX, maxY float64
	hasBox                 bool
}

func (b *lineBuilder) extend(box *visionpb.BoundingPoly) {
	for _, v := range box.GetVertices() {
		x := float64(v.GetX())
		y := float64(v.GetY())
		if !b.hasBox {
			b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
			b.hasBox = true
			continue
		}
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
		b.minY = math.Min(b.minY, y)
		b.maxY = math.Max(b.maxY, y)
	}
}

func (b *lineBuilder) flush(pageW, pageH float64) (reconstruct.Line, bool) {
	if len(b.text) == 0 || !b.hasBox || pageW <= 0 || pageH <= 0 {
		*b = lineBuilder{}
		return reconstruct.Line{}, false
	}
	bbox := reconstruct.BBox{
		Left:   b.minX / pageW,
		Top:    b.minY / pageH,
		Width:  (b.maxX - b.minX) / pageW,
		Height: (b.maxY - b.minY) / pageH,
	}
	line := reconstruct.Line{
		Text: strings.TrimRight(string(b.text), " "),
		Polygon: geometry.Polygon{
			{X: bbox.Left, Y: bbox.Top},
			{X: bbox.Left + bbox.Width, Y: bbox.Top},
			{X: bbox.Left + bbox.Width, Y: bbox.Top + bbox.Height},
			{X: bbox.Left, Y: bbox.Top + bbox.Height},
		},
		BBox: bbox,
	}
	*b = lineBuilder{}
	return line, true
}

func pageLines(page *visionpb.Page) []reconstruct.Line {
	pageW := float64(page.GetWidth())
	pageH := float64(page.GetHeight())

	var lines []reconstruct.Line
	var b lineBuilder
	for _, block := range page.GetBlocks() {
		for _, para := range block.GetParagraphs() {
			for _, word := range para.GetWords() {
				b.extend(word.GetBoundingBox())
				for _, sym := range word.GetSymbols() {
					b.text = append(b.text, sym.GetText()...)
					switch sym.GetProperty().GetDetectedBreak().GetType() {
					case visionpb.TextAnnotation_DetectedBreak_SPACE,
						visionpb.TextAnnotation_DetectedBreak_SURE_SPACE:
						b.text = append(b.text, ' ')
					case visionpb.TextAnnotation_DetectedBreak_HYPHEN:
						b.text = append(b.text, '-')
						if line, ok := b.flush(pageW, pageH); ok {
							lines = append(lines, line)
						}
					case visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE,
						visionpb.TextAnnotation_DetectedBreak_LINE_BREAK:
						if line, ok := b.flush(pageW, pageH); ok {
							lines = append(lines, line)
						}
					}
				}
			}
			if line, ok := b.flush(pageW, pageH); ok {
				lines = append(lines, line)
			}
		}
	}
	return lines
}
