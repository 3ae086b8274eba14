package providers

import (
	"context"
	"time"

	"github.com/pressbook-scans/clipper/pkg/reconstruct"
)

// Config represents the configuration for a recognition provider
type Config struct {
	Provider string
	Model    string
	// Region is the cloud region for providers that need one (Textract).
	Region string
	// Languages selects recognition languages for providers that support it.
	Languages []string
	// Timeout bounds a single recognition request. Zero means no deadline
	// beyond the caller's context. Retry policy belongs to the caller, not
	// the provider.
	Timeout time.Duration
}

// Provider is one text-recognition backend. A provider takes the encoded
// crop image and returns line-level text with geometry in normalized [0,1]
// image coordinates. A service fault comes back as an error with zero
// lines; the caller decides how to surface it, and reconstruction is never
// run on a failed response.
type Provider interface {
	// DetectLines recognizes the text lines in an encoded image.
	DetectLines(ctx context.Context, config Config, image []byte) ([]reconstruct.Line, error)
	// Name returns the provider's name
	Name() string
	// ValidateConfig validates the provider-specific configuration
	ValidateConfig(config Config) error
}
