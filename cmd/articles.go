package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pressbook-scans/clipper/internal/store"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List and manage the articles recorded for a page",
	Long: `List the articles recorded for a page image, or manage them:
start an empty article, delete an empty one, update page metadata, or drop a
stored polygon from an article's provenance record.

With no flags beyond --image, prints one line per article with its index,
polygon count and a text summary.`,
	RunE: runArticles,
}

var (
	articlesAnnotations string
	articlesImage       string
	articlesNew         bool
	articlesDelete      int
	articlesRemovePoly  []int
	articlesDate        string
	articlesSummary     string
)

func init() {
	RootCmd.AddCommand(articlesCmd)

	articlesCmd.Flags().StringVarP(&articlesAnnotations, "annotations", "a", "annotations/annotations.yaml", "Path to the annotations file")
	articlesCmd.Flags().StringVar(&articlesImage, "image", "", "Page image name (defaults to the open image)")
	articlesCmd.Flags().BoolVar(&articlesNew, "new", false, "Start a new empty article on the page")
	articlesCmd.Flags().IntVar(&articlesDelete, "delete", -1, "Delete the article at this index (must have no text)")
	articlesCmd.Flags().IntSliceVar(&articlesRemovePoly, "remove-poly", nil, "Remove a polygon as article,poly index pair")
	articlesCmd.Flags().StringVar(&articlesDate, "date", "", "Set the page date")
	articlesCmd.Flags().StringVar(&articlesSummary, "summary", "", "Set the page summary")
}

func runArticles(cmd *cobra.Command, args []string) error {
	st, err := store.Load(articlesAnnotations)
	if err != nil {
		return err
	}

	image := articlesImage
	if image == "" {
		image = st.CurrentImage()
	}
	if image == "" {
		return fmt.Errorf("no image given and no open image in %s", articlesAnnotations)
	}
	image = filepath.Base(image)

	page := st.Page(image)
	dirty := false

	if articlesDate != "" {
		page.Date = articlesDate
		dirty = true
	}
	if articlesSummary != "" {
		page.Summary = articlesSummary
		dirty = true
	}

	if articlesNew {
		idx := page.NewArticle()
		slog.Info("Started new article", "page", image, "article", idx)
		dirty = true
	}

	if len(articlesRemovePoly) > 0 {
		if len(articlesRemovePoly) != 2 {
			return fmt.Errorf("--remove-poly takes an article,poly index pair, got %d values", len(articlesRemovePoly))
		}
		article, err := page.Article(articlesRemovePoly[0])
		if err != nil {
			return err
		}
		if err := article.RemovePoly(articlesRemovePoly[1]); err != nil {
			return err
		}
		slog.Info("Removed polygon", "page", image, "article", articlesRemovePoly[0], "poly", articlesRemovePoly[1])
		dirty = true
	}

	if articlesDelete >= 0 {
		if err := page.DeleteArticle(articlesDelete); err != nil {
			return err
		}
		slog.Info("Deleted article", "page", image, "article", articlesDelete)
		dirty = true
	}

	if dirty {
		if err := st.Save(articlesAnnotations); err != nil {
			return err
		}
	}

	fmt.Printf("%s", formatPage(image, page))
	return nil
}

func formatPage(image string, page *store.Page) string {
	out := fmt.Sprintf("%s  date=%q  summary=%q\n", image, page.Date, page.Summary)
	if len(page.Articles) == 0 {
		return out + "  (no articles)\n"
	}
	for i, a := range page.Articles {
		out += fmt.Sprintf("  [%d] polys=%d  %s\n", i, len(a.Polys), a.Summary(40))
	}
	return out
}
