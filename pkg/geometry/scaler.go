package geometry

// Scaler converts between screen space and image-pixel space for a panned,
// zoomed viewport. Scale is in screen units per image pixel and must be
// greater than zero; guarding that is the caller's job. Offset is the pan
// offset and Origin the viewport's top-left corner, both in screen space.
type Scaler struct {
	Scale  float64
	Offset Point
	Origin Point
}

// ScreenToImage maps a screen-space point to image-pixel space.
func (s Scaler) ScreenToImage(p Point) Point {
	return Point{
		X: (p.X - s.Origin.X + s.Offset.X) / s.Scale,
		Y: (p.Y - s.Origin.Y + s.Offset.Y) / s.Scale,
	}
}

// ImageToScreen maps an image-pixel point to screen space.
// It is the exact inverse of ScreenToImage.
func (s Scaler) ImageToScreen(p Point) Point {
	return Point{
		X: p.X*s.Scale - s.Offset.X + s.Origin.X,
		Y: p.Y*s.Scale - s.Offset.Y + s.Origin.Y,
	}
}
