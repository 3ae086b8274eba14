// Package reconstruct turns the unordered text lines returned by a
// recognition service back into reading-order paragraph text.
//
// The service reports each line with its bounding geometry in normalized
// [0,1] image coordinates. Reconstruction sorts the lines top to bottom,
// repairs words the typesetting broke across lines with a trailing hyphen,
// and inserts paragraph breaks where a line's left edge is indented relative
// to both of its neighbors. The whole pass is a pure function of the line
// set and the crop width; documents with genuine multi-column or
// right-to-left layout are out of scope.
package reconstruct

import (
	"sort"
	"strings"

	"github.com/pressbook-scans/clipper/pkg/geometry"
)

// BBox is an axis-aligned box in the recognition service's normalized
// [0,1] coordinate space.
type BBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Mid returns the center point of the box.
func (b BBox) Mid() geometry.Point {
	return geometry.Point{X: b.Left + b.Width/2, Y: b.Top + b.Height/2}
}

// Line is one recognized text line. Polygon is the outline the service
// reports; nothing beyond the bounding box is used here, but it is carried
// so callers can store or render it.
type Line struct {
	Text    string
	Polygon geometry.Polygon
	BBox    BBox
}

// Left returns the line's left edge in normalized coordinates.
func (l Line) Left() float64 { return l.BBox.Left }

// Heuristic defaults, tuned on scanned newspaper scrapbooks.
const (
	// DefaultIndentMin and DefaultIndentMax bound, in crop pixels, the
	// left-edge gap treated as a paragraph indent: big enough to be a real
	// indent, small enough not to be a column shift or anomaly.
	DefaultIndentMin = 8.0
	DefaultIndentMax = 40.0
	// DefaultTieBreakDivisor scales the left edge folded into the vertical
	// sort key so fragments of one visual line order left to right.
	DefaultTieBreakDivisor = 40.0
)

// Options holds the reconstruction thresholds.
type Options struct {
	IndentMin       float64
	IndentMax       float64
	TieBreakDivisor float64
}

// DefaultOptions returns the reconstruction defaults.
func DefaultOptions() Options {
	return Options{
		IndentMin:       DefaultIndentMin,
		IndentMax:       DefaultIndentMax,
		TieBreakDivisor: DefaultTieBreakDivisor,
	}
}

func (o Options) withDefaults() Options {
	if o.IndentMin == 0 && o.IndentMax == 0 {
		o.IndentMin = DefaultIndentMin
		o.IndentMax = DefaultIndentMax
	}
	if o.TieBreakDivisor == 0 {
		o.TieBreakDivisor = DefaultTieBreakDivisor
	}
	return o
}

// SortLines orders lines into reading order in place. The key is the vertical
// centroid nudged by the left edge, so when a service splits one visual line
// into adjacent fragments at nearly the same height, the left-most fragment
// sorts first without a full two-level sort. This is a tie-break, not
// multi-column layout detection.
func SortLines(lines []Line, opts Options) {
	opts = opts.withDefaults()
	key := func(l Line) float64 {
		return l.BBox.Mid().Y + l.Left()/opts.TieBreakDivisor
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return key(lines[i]) < key(lines[j])
	})
}

// Merge folds sorted lines into a single string with paragraph breaks and
// hyphenation repair. cropWidth is the pixel width of the crop the lines were
// recognized in; it converts normalized left edges into pixel gaps for the
// indent test. Merge never fails: empty input yields an empty string.
func Merge(lines []Line, cropWidth float64, opts Options) string {
	opts = opts.withDefaults()

	var out strings.Builder
	dehyphenating := false
	for i, line := range lines {
		text := line.Text
		if dehyphenating {
			// The previous line ended mid-word; its completion is this
			// line's leading fragment.
			if space := strings.Index(text, " "); space >= 0 {
				out.WriteString(text[:space])
				out.WriteString("\n")
				text = text[space+1:]
			} else {
				// No split point: the whole line continues the word.
				out.WriteString(text)
				text = ""
			}
		} else if i > 0 && i+1 < len(lines) {
			// A line indented relative to both neighbors starts a paragraph.
			prev := lines[i-1].Left() * cropWidth
			cur := line.Left() * cropWidth
			next := lines[i+1].Left() * cropWidth
			if cur-prev > opts.IndentMin && cur-prev < opts.IndentMax &&
				cur-next > opts.IndentMin && cur-next < opts.IndentMax {
				out.WriteString("\n")
			}
		}

		if strings.HasSuffix(text, "-") {
			out.WriteString(text[:len(text)-1])
			dehyphenating = true
		} else {
			out.WriteString(text)
			out.WriteString("\n")
			dehyphenating = false
		}
	}

	return out.String()
}

// Reconstruct sorts a copy of the lines and merges them. This is the usual
// entry point; SortLines and Merge are exposed separately so the two steps
// can be probed on their own.
func Reconstruct(lines []Line, cropWidth float64, opts Options) string {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	SortLines(sorted, opts)
	return Merge(sorted, cropWidth, opts)
}
