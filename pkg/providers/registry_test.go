package providers

import (
	"context"
	"testing"

	"github.com/pressbook-scans/clipper/pkg/reconstruct"
)

type fakeProvider struct {
	name string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) ValidateConfig(config Config) error { return nil }

func (p *fakeProvider) DetectLines(ctx context.Context, config Config, image []byte) ([]reconstruct.Line, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeProvider{name: "Textract"})
	r.Register(&fakeProvider{name: "tesseract"})

	t.Run("lookup is case insensitive", func(t *testing.T) {
		if _, err := r.Get("textract"); err != nil {
			t.Errorf("Get(textract) error: %v", err)
		}
		if _, err := r.Get("TEXTRACT"); err != nil {
			t.Errorf("Get(TEXTRACT) error: %v", err)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := r.Get("vision"); err == nil {
			t.Error("Get(vision) expected error, got nil")
		}
		if r.HasProvider("vision") {
			t.Error("HasProvider(vision) = true, want false")
		}
	})

	t.Run("list is sorted", func(t *testing.T) {
		names := r.List()
		want := []string{"tesseract", "textract"}
		if len(names) != len(want) {
			t.Fatalf("List() = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
			}
		}
	})
}
