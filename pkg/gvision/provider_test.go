package gvision

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/pressbook-scans/clipper/pkg/providers"
)

func providerConfig() providers.Config {
	return providers.Config{Provider: "vision"}
}

func word(text string, breakType visionpb.TextAnnotation_DetectedBreak_BreakType, x1, y1, x2, y2 int32) *visionpb.Word {
	box := &visionpb.BoundingPoly{
		Vertices: []*visionpb.Vertex{
			{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
		},
	}
	var symbols []*visionpb.Symbol
	for i, r := range text {
		s := &visionpb.Symbol{Text: string(r)}
		if i == len(text)-1 {
			s.Property = &visionpb.TextAnnotation_TextProperty{
				DetectedBreak: &visionpb.TextAnnotation_DetectedBreak{Type: breakType},
			}
		}
		symbols = append(symbols, s)
	}
	return &visionpb.Word{BoundingBox: box, Symbols: symbols}
}

func TestPageLines(t *testing.T) {
	page := &visionpb.Page{
		Width:  200,
		Height: 100,
		Blocks: []*visionpb.Block{
			{
				Paragraphs: []*visionpb.Paragraph{
					{
						Words: []*visionpb.Word{
							word("Hello", visionpb.TextAnnotation_DetectedBreak_SPACE, 10, 10, 50, 20),
							word("world", visionpb.TextAnnotation_DetectedBreak_LINE_BREAK, 60, 10, 100, 20),
							word("again", visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE, 10, 30, 50, 40),
						},
					},
				},
			},
		},
	}

	lines := pageLines(page)
	if len(lines) != 2 {
		t.Fatalf("pageLines() returned %d lines, want 2", len(lines))
	}

	if lines[0].Text != "Hello world" {
		t.Errorf("line 0 text = %q, want %q", lines[0].Text, "Hello world")
	}
	if lines[1].Text != "again" {
		t.Errorf("line 1 text = %q, want %q", lines[1].Text, "again")
	}

	// First line spans x 10..100, y 10..20 on a 200x100 page.
	bb := lines[0].BBox
	if bb.Left != 0.05 || bb.Top != 0.1 || bb.Width != 0.45 || bb.Height != 0.1 {
		t.Errorf("line 0 bbox = %+v, want {0.05 0.1 0.45 0.1}", bb)
	}
}

func TestPageLines_HyphenBreak(t *testing.T) {
	page := &visionpb.Page{
		Width:  100,
		Height: 100,
		Blocks: []*visionpb.Block{
			{
				Paragraphs: []*visionpb.Paragraph{
					{
						Words: []*visionpb.Word{
							word("hyphen", visionpb.TextAnnotation_DetectedBreak_HYPHEN, 10, 10, 90, 20),
							word("ated", visionpb.TextAnnotation_DetectedBreak_LINE_BREAK, 10, 30, 40, 40),
						},
					},
				},
			},
		},
	}

	lines := pageLines(page)
	if len(lines) != 2 {
		t.Fatalf("pageLines() returned %d lines, want 2", len(lines))
	}
	// The hyphen break must surface as a literal trailing hyphen so merge
	// logic can repair the word.
	if lines[0].Text != "hyphen-" {
		t.Errorf("line 0 text = %q, want %q", lines[0].Text, "hyphen-")
	}
}

func TestProviderName(t *testing.T) {
	if New().Name() != "vision" {
		t.Errorf("Name() = %q, want vision", New().Name())
	}
}

func TestValidateConfig(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	p := New()
	if err := p.ValidateConfig(providerConfig()); err == nil {
		t.Error("ValidateConfig() expected error without credentials")
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	if err := p.ValidateConfig(providerConfig()); err != nil {
		t.Errorf("ValidateConfig() error: %v", err)
	}
}
