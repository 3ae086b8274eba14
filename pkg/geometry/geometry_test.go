package geometry

import (
	"testing"
)

func TestPolygonBounds(t *testing.T) {
	tests := []struct {
		name     string
		poly     Polygon
		wantOK   bool
		wantRect Rect
	}{
		{
			name:   "empty polygon",
			poly:   Polygon{},
			wantOK: false,
		},
		{
			name:     "single point",
			poly:     Polygon{{X: 3, Y: 7}},
			wantOK:   true,
			wantRect: Rect{Min: Point{X: 3, Y: 7}, Max: Point{X: 3, Y: 7}},
		},
		{
			name:     "square",
			poly:     Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			wantOK:   true,
			wantRect: Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 10, Y: 10}},
		},
		{
			name:     "unordered vertices",
			poly:     Polygon{{X: 5, Y: -2}, {X: -3, Y: 8}, {X: 1, Y: 1}},
			wantOK:   true,
			wantRect: Rect{Min: Point{X: -3, Y: -2}, Max: Point{X: 5, Y: 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, ok := tt.poly.Bounds()
			if ok != tt.wantOK {
				t.Fatalf("Bounds() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rect != tt.wantRect {
				t.Errorf("Bounds() = %+v, want %+v", rect, tt.wantRect)
			}
		})
	}
}

func TestPolygonContains_Square(t *testing.T) {
	square := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	// Every pixel center strictly inside must classify as interior.
	for y := 1.5; y < 10; y++ {
		for x := 1.5; x < 10; x++ {
			if !square.Contains(x, y) {
				t.Errorf("Contains(%v, %v) = false, want true", x, y)
			}
		}
	}

	// Points strictly outside the bounding box must classify as exterior.
	outside := []Point{
		{X: -1.5, Y: 5.5},
		{X: 11.5, Y: 5.5},
		{X: 5.5, Y: -1.5},
		{X: 5.5, Y: 11.5},
	}
	for _, p := range outside {
		if square.Contains(p.X, p.Y) {
			t.Errorf("Contains(%v, %v) = true, want false", p.X, p.Y)
		}
	}
}

func TestPolygonContains_Bowtie(t *testing.T) {
	// Self-intersecting figure eight: two triangular lobes meeting at (10, 5).
	bowtie := Polygon{
		{X: 0, Y: 0},
		{X: 20, Y: 10},
		{X: 20, Y: 0},
		{X: 0, Y: 10},
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"left lobe", 2, 5.2, true},
		{"right lobe", 18, 5.2, true},
		{"waist above center", 10, 1.2, false},
		{"waist below center", 10, 8.8, false},
		{"outside left", -2, 5.2, false},
		{"outside right", 22, 5.2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bowtie.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPolygonContains_Degenerate(t *testing.T) {
	if (Polygon{}).Contains(1, 1) {
		t.Error("empty polygon should contain nothing")
	}
	if (Polygon{{X: 0, Y: 0}, {X: 5, Y: 5}}).Contains(2, 2) {
		t.Error("two-point polygon should contain nothing")
	}
}

func TestPolygonTranslate(t *testing.T) {
	poly := Polygon{{X: 10, Y: 20}, {X: 30, Y: 40}}
	got := poly.Translate(10, 20)
	want := Polygon{{X: 0, Y: 0}, {X: 20, Y: 20}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Translate()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	// Original must be untouched.
	if poly[0] != (Point{X: 10, Y: 20}) {
		t.Errorf("Translate() mutated its receiver: %+v", poly[0])
	}
}

func TestParsePolygon(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Polygon
		wantErr bool
	}{
		{
			name:  "space separated",
			input: "0,0 10,0 10,10",
			want:  Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		},
		{
			name:  "semicolon separated",
			input: "1.5,2.5;3,4",
			want:  Polygon{{X: 1.5, Y: 2.5}, {X: 3, Y: 4}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "missing y",
			input:   "1,2 3",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "a,b",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePolygon(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParsePolygon() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePolygon() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePolygon() returned %d points, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParsePolygon()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
