package cmd

import (
	"fmt"

	"github.com/pressbook-scans/clipper/pkg/geometry"
)

// parseRegion parses a --region vertex list and, when a display scale is
// given, maps the vertices from screen space into image-pixel space using
// the viewer's pan offset and viewport origin.
func parseRegion(region string, scale float64, pan, viewport string) (geometry.Polygon, error) {
	poly, err := geometry.ParsePolygon(region)
	if err != nil {
		return nil, fmt.Errorf("invalid region: %w", err)
	}
	if len(poly) < 3 {
		return nil, fmt.Errorf("a region needs at least 3 vertices, got %d", len(poly))
	}

	if scale > 0 {
		panPt, err := parsePoint(pan)
		if err != nil {
			return nil, fmt.Errorf("invalid pan: %w", err)
		}
		originPt, err := parsePoint(viewport)
		if err != nil {
			return nil, fmt.Errorf("invalid viewport: %w", err)
		}
		s := geometry.Scaler{Scale: scale, Offset: panPt, Origin: originPt}
		for i := range poly {
			poly[i] = s.ScreenToImage(poly[i])
		}
	}

	return poly, nil
}

func parsePoint(s string) (geometry.Point, error) {
	if s == "" {
		return geometry.Point{}, nil
	}
	pts, err := geometry.ParsePolygon(s)
	if err != nil {
		return geometry.Point{}, err
	}
	if len(pts) != 1 {
		return geometry.Point{}, fmt.Errorf("expected a single x,y pair, got %d", len(pts))
	}
	return pts[0], nil
}
