package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/pressbook-scans/clipper/internal/store"
	"github.com/pressbook-scans/clipper/pkg/gvision"
	"github.com/pressbook-scans/clipper/pkg/mask"
	"github.com/pressbook-scans/clipper/pkg/providers"
	"github.com/pressbook-scans/clipper/pkg/reconstruct"
	"github.com/pressbook-scans/clipper/pkg/tesseract"
	"github.com/pressbook-scans/clipper/pkg/textract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a region, recognize its text and append it to an article",
	Long: `Extract a polygon region from a page image, send the masked crop to a
text-recognition provider, reconstruct the recognized lines into reading-order
paragraph text, and append the result to an article in the annotations file.

The polygon that produced the crop is stored alongside the appended text, so
every piece of article text stays traceable to the region it came from.`,
	RunE: runExtract,
}

var (
	extractImagePath   string
	extractRegion      string
	extractProvider    string
	extractModel       string
	extractRegionName  string
	extractLanguages   []string
	extractAnnotations string
	extractArticle     int
	extractParagraph   bool
	extractHeading     bool
	extractDryRun      bool
	extractCropOut     string
	extractMargin      float64
	extractTimeout     time.Duration
	extractScale       float64
	extractPan         string
	extractViewport    string
)

func init() {
	RootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractImagePath, "image", "", "Path to the page image (required)")
	extractCmd.Flags().StringVar(&extractRegion, "region", "", `Polygon vertices as "x,y x,y x,y" (required)`)
	extractCmd.Flags().StringVar(&extractProvider, "provider", "textract", "Provider to use: textract, vision, tesseract")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "Model to use (providers with a default ignore this)")
	extractCmd.Flags().StringVar(&extractRegionName, "aws-region", "", "AWS region for the textract provider (default from AWS_REGION)")
	extractCmd.Flags().StringSliceVar(&extractLanguages, "languages", nil, "Recognition languages for providers that support them")
	extractCmd.Flags().StringVarP(&extractAnnotations, "annotations", "a", "annotations/annotations.yaml", "Path to the annotations file")
	extractCmd.Flags().IntVar(&extractArticle, "article", -1, "Article index to append to (-1 starts a new article)")
	extractCmd.Flags().BoolVar(&extractParagraph, "paragraph", false, "Insert a blank line before the appended text")
	extractCmd.Flags().BoolVar(&extractHeading, "heading", false, "Collapse the text to a single markdown heading line")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "Print the reconstructed text without touching the annotations file")
	extractCmd.Flags().StringVar(&extractCropOut, "crop-out", "", "Also write the masked crop JPEG to this path")
	extractCmd.Flags().Float64Var(&extractMargin, "margin", mask.DefaultMargin, "Margin in pixels around the region's bounding box")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "Timeout for the recognition request")
	extractCmd.Flags().Float64Var(&extractScale, "scale", 0, "Viewer scale; when set, region vertices are screen coordinates")
	extractCmd.Flags().StringVar(&extractPan, "pan", "", `Viewer pan offset as "x,y" (with --scale)`)
	extractCmd.Flags().StringVar(&extractViewport, "viewport", "", `Viewer viewport origin as "x,y" (with --scale)`)

	for _, flag := range []string{"image", "region"} {
		if err := extractCmd.MarkFlagRequired(flag); err != nil {
			slog.Error("Unable to mark flag as required", "flag", flag, "err", err)
			os.Exit(1)
		}
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(extractImagePath); os.IsNotExist(err) {
		return fmt.Errorf("input image file does not exist: %s", extractImagePath)
	}

	poly, err := parseRegion(extractRegion, extractScale, extractPan, extractViewport)
	if err != nil {
		return err
	}

	registry := providers.NewRegistry()
	registry.Register(textract.New())
	registry.Register(gvision.New())
	registry.Register(tesseract.New())

	prov, err := registry.Get(extractProvider)
	if err != nil {
		return fmt.Errorf("unsupported provider %q, available: %s", extractProvider, strings.Join(registry.List(), ", "))
	}

	config := providers.Config{
		Provider:  extractProvider,
		Model:     extractModel,
		Region:    extractRegionName,
		Languages: extractLanguages,
		Timeout:   extractTimeout,
	}
	if err := prov.ValidateConfig(config); err != nil {
		return fmt.Errorf("provider configuration validation failed: %w", err)
	}

	img, err := imaging.Open(extractImagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	opts := mask.DefaultOptions()
	opts.Margin = extractMargin
	crop, err := mask.Extract(img, poly, opts)
	if err != nil {
		return fmt.Errorf("failed to extract region: %w", err)
	}
	payload, err := crop.EncodeJPEG()
	if err != nil {
		return err
	}

	if extractCropOut != "" {
		if err := os.WriteFile(extractCropOut, payload, 0644); err != nil {
			return fmt.Errorf("failed to write crop: %w", err)
		}
	}

	slog.Info("Recognizing region", "image", extractImagePath, "provider", prov.Name(),
		"crop_size", fmt.Sprintf("%dx%d", crop.Width(), crop.Height()), "payload_bytes", len(payload))

	lines, err := prov.DetectLines(cmd.Context(), config, payload)
	if err != nil {
		// A service fault means no lines, not empty text appended silently.
		return fmt.Errorf("recognition failed: %w", err)
	}

	text := reconstruct.Reconstruct(lines, float64(crop.Width()), reconstruct.DefaultOptions())
	if extractHeading {
		text = "# " + strings.TrimSpace(strings.ReplaceAll(text, "\n", " ")) + "\n"
	}

	slog.Info("Reconstructed text", "lines", len(lines), "chars", len(text))

	if extractDryRun {
		fmt.Print(text)
		return nil
	}

	st, err := store.Load(extractAnnotations)
	if err != nil {
		return err
	}

	imageName := filepath.Base(extractImagePath)
	page := st.Page(imageName)
	ensureImageListed(st, imageName)

	idx := extractArticle
	if idx < 0 {
		idx = page.NewArticle()
	}
	article, err := page.Article(idx)
	if err != nil {
		return err
	}
	if extractParagraph {
		article.AppendParagraph(text, poly)
	} else {
		article.Append(text, poly)
	}

	if err := st.Save(extractAnnotations); err != nil {
		return err
	}

	slog.Info("Appended extraction", "annotations", extractAnnotations, "page", imageName, "article", idx)
	return nil
}

func ensureImageListed(st *store.State, imageName string) {
	for _, name := range st.Images {
		if name == imageName {
			return
		}
	}
	st.Images = append(st.Images, imageName)
}
