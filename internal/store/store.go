// Package store persists annotation state: which page images exist, and for
// each page the articles assembled from extracted regions. The on-disk format
// is a single YAML file, editable by hand.
//
// The extraction engine never touches this package; the commands join the
// two, appending each reconstructed text together with the polygon that
// produced it so provenance follows append order.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/pressbook-scans/clipper/pkg/geometry"
)

// Article is one assembled article: its accumulated text and the polygons,
// in append order, whose extractions produced it.
type Article struct {
	Polys [][]geometry.Point `yaml:"polys"`
	Text  string             `yaml:"text"`
}

// Append records one extraction against the article. Trailing whitespace on
// the reconstructed text collapses to a single newline.
func (a *Article) Append(text string, poly geometry.Polygon) {
	a.Text += strings.TrimRight(text, " \n")
	a.Text += "\n"
	a.Polys = append(a.Polys, poly)
}

// AppendParagraph is Append with a blank line first, for text that starts a
// new paragraph of the article.
func (a *Article) AppendParagraph(text string, poly geometry.Polygon) {
	a.Text += "\n"
	a.Append(text, poly)
}

// RemovePoly deletes the i'th stored polygon. The text it produced stays;
// only the provenance record goes.
func (a *Article) RemovePoly(i int) error {
	if i < 0 || i >= len(a.Polys) {
		return fmt.Errorf("no polygon %d: article has %d", i, len(a.Polys))
	}
	a.Polys = append(a.Polys[:i], a.Polys[i+1:]...)
	return nil
}

// Summary returns the first n characters of the article text with newlines
// collapsed, for listings.
func (a *Article) Summary(n int) string {
	s := strings.ReplaceAll(a.Text, "\n", " ")
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return s
}

// Page is one scanned page: its metadata and articles.
type Page struct {
	Date     string     `yaml:"date"`
	Summary  string     `yaml:"summary"`
	Articles []*Article `yaml:"articles"`
}

// NewArticle appends an empty article and returns its index.
func (p *Page) NewArticle() int {
	p.Articles = append(p.Articles, &Article{})
	return len(p.Articles) - 1
}

// Article returns article i, or an error when out of range.
func (p *Page) Article(i int) (*Article, error) {
	if i < 0 || i >= len(p.Articles) {
		return nil, fmt.Errorf("no article %d: page has %d", i, len(p.Articles))
	}
	return p.Articles[i], nil
}

// DeleteArticle removes article i. Only articles with empty text may be
// deleted; everything else represents transcription work worth keeping.
func (p *Page) DeleteArticle(i int) error {
	a, err := p.Article(i)
	if err != nil {
		return err
	}
	if a.Text != "" {
		return fmt.Errorf("article %d has text; refusing to delete", i)
	}
	p.Articles = append(p.Articles[:i], p.Articles[i+1:]...)
	return nil
}

// State is the full annotation record for one image corpus.
type State struct {
	Images    []string         `yaml:"images"`
	Pages     map[string]*Page `yaml:"pages"`
	OpenImage int              `yaml:"open_image"`
}

// Load reads annotation state from path. A missing file is not an error: it
// yields an empty state, so the first extraction can bootstrap the file.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &State{Pages: make(map[string]*Page)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse annotations: %w", err)
	}
	if s.Pages == nil {
		s.Pages = make(map[string]*Page)
	}
	for _, p := range s.Pages {
		if p == nil {
			continue
		}
		for i, a := range p.Articles {
			if a == nil {
				p.Articles[i] = &Article{}
			}
		}
	}
	return &s, nil
}

// Save writes the state back to path, creating parent directories as needed.
func (s *State) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create annotations directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write annotations: %w", err)
	}
	return nil
}

// Page returns the record for an image name, creating it if absent.
func (s *State) Page(image string) *Page {
	if p, ok := s.Pages[image]; ok && p != nil {
		return p
	}
	p := &Page{}
	s.Pages[image] = p
	return p
}

// CurrentImage returns the name of the open image, or "" when the image list
// is empty or the index is stale.
func (s *State) CurrentImage() string {
	if s.OpenImage < 0 || s.OpenImage >= len(s.Images) {
		return ""
	}
	return s.Images[s.OpenImage]
}
