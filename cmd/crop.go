package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/pressbook-scans/clipper/pkg/mask"
)

var cropCmd = &cobra.Command{
	Use:   "crop",
	Short: "Extract a polygon region from a page image",
	Long: `Extract a polygon region from a scanned page image and write it as a JPEG.

The region is an ordered vertex list; it may be non-convex or even
self-intersecting. Pixels outside the polygon are blanked to a neutral gray so
downstream recognition only sees the selected region. Vertices are in
image-pixel coordinates unless --scale is given, in which case they are
treated as viewer screen coordinates and mapped back through the pan offset
and viewport origin.`,
	RunE: runCrop,
}

var (
	cropImagePath string
	cropRegion    string
	cropOutput    string
	cropMargin    float64
	cropQuality   int
	cropScale     float64
	cropPan       string
	cropViewport  string
)

func init() {
	RootCmd.AddCommand(cropCmd)

	cropCmd.Flags().StringVar(&cropImagePath, "image", "", "Path to the page image (required)")
	cropCmd.Flags().StringVar(&cropRegion, "region", "", `Polygon vertices as "x,y x,y x,y" (required)`)
	cropCmd.Flags().StringVarP(&cropOutput, "output", "o", "", "Output path for the crop (default <image>-crop.jpg)")
	cropCmd.Flags().Float64Var(&cropMargin, "margin", mask.DefaultMargin, "Margin in pixels around the region's bounding box")
	cropCmd.Flags().IntVar(&cropQuality, "quality", mask.DefaultJPEGQuality, "JPEG encoding quality")
	cropCmd.Flags().Float64Var(&cropScale, "scale", 0, "Viewer scale; when set, region vertices are screen coordinates")
	cropCmd.Flags().StringVar(&cropPan, "pan", "", `Viewer pan offset as "x,y" (with --scale)`)
	cropCmd.Flags().StringVar(&cropViewport, "viewport", "", `Viewer viewport origin as "x,y" (with --scale)`)

	for _, flag := range []string{"image", "region"} {
		if err := cropCmd.MarkFlagRequired(flag); err != nil {
			slog.Error("Unable to mark flag as required", "flag", flag, "err", err)
			os.Exit(1)
		}
	}
}

func runCrop(cmd *cobra.Command, args []string) error {
	poly, err := parseRegion(cropRegion, cropScale, cropPan, cropViewport)
	if err != nil {
		return err
	}

	img, err := imaging.Open(cropImagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	opts := mask.DefaultOptions()
	opts.Margin = cropMargin
	opts.JPEGQuality = cropQuality

	crop, err := mask.Extract(img, poly, opts)
	if err != nil {
		return fmt.Errorf("failed to extract region: %w", err)
	}

	payload, err := crop.EncodeJPEG()
	if err != nil {
		return err
	}

	out := cropOutput
	if out == "" {
		base := strings.TrimSuffix(cropImagePath, filepath.Ext(cropImagePath))
		out = base + "-crop.jpg"
	}
	if err := os.WriteFile(out, payload, 0644); err != nil {
		return fmt.Errorf("failed to write crop: %w", err)
	}

	slog.Info("Crop written", "path", out, "width", crop.Width(), "height", crop.Height(), "source_rect", crop.Rect.String())
	return nil
}
