package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a 2D point. The same type serves image-pixel space, screen space
// and the recognition service's normalized [0,1] space; which space a value
// lives in is determined by where it came from, and Scaler is the only code
// that crosses spaces.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle defined by its min and max corners.
type Rect struct {
	Min Point
	Max Point
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Polygon is an ordered vertex list describing a closed region. The closing
// edge from the last vertex back to the first is implicit; callers never need
// to repeat the first point. The region may be non-convex or self-intersecting;
// Contains applies the even-odd fill rule in both cases.
type Polygon []Point

// Bounds returns the axis-aligned bounding box of the vertices.
// The second return value is false when the polygon has no vertices.
func (p Polygon) Bounds() (Rect, bool) {
	if len(p) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r.Min.X = math.Min(r.Min.X, v.X)
		r.Min.Y = math.Min(r.Min.Y, v.Y)
		r.Max.X = math.Max(r.Max.X, v.X)
		r.Max.Y = math.Max(r.Max.Y, v.Y)
	}
	return r, true
}

// Translate returns a copy of the polygon shifted by (-dx, -dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point{X: v.X - dx, Y: v.Y - dy}
	}
	return out
}

// Contains reports whether the point (x, y) is inside the polygon under the
// even-odd (parity) fill rule: a horizontal ray cast from the point toward +x
// must cross the boundary an odd number of times. Self-intersections toggle
// parity twice and fall out correctly.
func (p Polygon) Contains(x, y float64) bool {
	if len(p) < 3 {
		return false
	}
	crossings := 0
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		if rayIntersects(x, y, a, b) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayIntersects tests whether the ray (ox, oy)--(+inf, oy) crosses the
// segment a--b. The endpoints must strictly straddle the ray's y, and the
// side test uses cross-product signs rather than a slope division so vertical
// edges stay exact. A vertex y exactly equal to oy takes the positive sign,
// which makes vertex-aligned rays count as non-crossing on that side; that is
// the boundary convention, not a bug to fix.
func rayIntersects(ox, oy float64, a, b Point) bool {
	if sign(a.Y-oy) == sign(b.Y-oy) {
		return false
	}
	s0 := sign((ox-a.X)*(b.Y-a.Y) + (oy-a.Y)*(a.X-b.X))
	s1 := sign(b.Y - a.Y)
	return s0 != s1
}

func sign(v float64) float64 {
	if math.Signbit(v) {
		return -1
	}
	return 1
}

// ParsePolygon parses a vertex list of the form "x,y x,y x,y".
// Pairs may also be separated by semicolons.
func ParsePolygon(s string) (Polygon, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';'
	})
	var poly Polygon
	for _, f := range fields {
		xy := strings.Split(f, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("invalid vertex %q: expected x,y", f)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x coordinate %q: %w", xy[0], err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y coordinate %q: %w", xy[1], err)
		}
		poly = append(poly, Point{X: x, Y: y})
	}
	return poly, nil
}
