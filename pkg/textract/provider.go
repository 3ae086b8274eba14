package textract

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sdk "github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/pressbook-scans/clipper/internal/utils"
	"github.com/pressbook-scans/clipper/pkg/geometry"
	"github.com/pressbook-scans/clipper/pkg/providers"
	"github.com/pressbook-scans/clipper/pkg/reconstruct"
)

// Provider implements the AWS Textract recognition provider
type Provider struct{}

// New creates a new Textract provider
func New() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "textract"
}

// ValidateConfig validates the Textract configuration
func (p *Provider) ValidateConfig(config providers.Config) error {
	if resolveRegion(config) == "" {
		return fmt.Errorf("no AWS region configured: set AWS_REGION or pass one explicitly")
	}
	return nil
}

func resolveRegion(config providers.Config) string {
	if config.Region != "" {
		return config.Region
	}
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	return os.Getenv("AWS_DEFAULT_REGION")
}

// DetectLines sends the encoded crop to Textract's DetectDocumentText API and
// returns its LINE blocks. Textract reports geometry in normalized [0,1]
// coordinates already, so blocks pass through without rescaling.
func (p *Provider) DetectLines(ctx context.Context, config providers.Config, image []byte) ([]reconstruct.Line, error) {
	region := resolveRegion(config)
	if region == "" {
		return nil, fmt.Errorf("no AWS region configured")
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", utils.MaskSensitiveError(err))
	}

	client := sdk.NewFromConfig(cfg)
	out, err := client.DetectDocumentText(ctx, &sdk.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return nil, fmt.Errorf("textract request failed: %w", utils.MaskSensitiveError(err))
	}

	var lines []reconstruct.Line
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}
		if block.Geometry == nil || block.Geometry.BoundingBox == nil {
			continue
		}
		bb := block.Geometry.BoundingBox
		poly := make(geometry.Polygon, 0, len(block.Geometry.Polygon))
		for _, pt := range block.Geometry.Polygon {
			poly = append(poly, geometry.Point{X: float64(pt.X), Y: float64(pt.Y)})
		}
		lines = append(lines, reconstruct.Line{
			Text:    aws.ToString(block.Text),
			Polygon: poly,
			BBox: reconstruct.BBox{
				Left:   float64(bb.Left),
				Top:    float64(bb.Top),
				Width:  float64(bb.Width),
				Height: float64(bb.Height),
			},
		})
	}
	return lines, nil
}
