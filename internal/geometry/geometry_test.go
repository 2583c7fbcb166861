package geometry

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Point
		want float64
	}{
		{"same point", image.Pt(3, 3), image.Pt(3, 3), 0},
		{"horizontal", image.Pt(0, 0), image.Pt(5, 0), 5},
		{"vertical", image.Pt(0, 0), image.Pt(0, 7), 7},
		{"3-4-5", image.Pt(0, 0), image.Pt(3, 4), 5},
		{"b greater than a", image.Pt(2, 2), image.Pt(4, 4), math.Sqrt(8)},
		{"a greater than b", image.Pt(4, 4), image.Pt(2, 2), math.Sqrt(8)},
		{"mixed signs", image.Pt(1, 5), image.Pt(4, 1), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Distance(%v, %v): got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a, b := image.Pt(0, 9), image.Pt(7, 2)
	if Distance(a, b) != Distance(b, a) {
		t.Errorf("Distance not symmetric: %v vs %v", Distance(a, b), Distance(b, a))
	}
}

func TestSquaredDistance(t *testing.T) {
	got := SquaredDistance(image.Pt(1, 1), image.Pt(3, 3))
	if got != 8 {
		t.Errorf("SquaredDistance: got %v, want 8", got)
	}
}

func TestInPaddedBounds(t *testing.T) {
	tests := []struct {
		p    image.Point
		want bool
	}{
		{image.Pt(2, 2), true},
		{image.Pt(5, 5), true},
		{image.Pt(6, 5), false},
		{image.Pt(5, 6), false},
		{image.Pt(1, 3), false},
		{image.Pt(3, 1), false},
	}

	for _, tt := range tests {
		if got := InPaddedBounds(tt.p, 8, 2); got != tt.want {
			t.Errorf("InPaddedBounds(%v, 8, 2): got %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		r, pad  int
		wantErr bool
	}{
		{"no padding", 4, 0, false},
		{"typical", 256, 16, false},
		{"one cell interior", 5, 2, false},
		{"pad equals half", 8, 4, true},
		{"pad exceeds half", 8, 5, true},
		{"zero resolution", 0, 0, true},
		{"negative resolution", -3, 0, true},
		{"negative padding", 8, -1, true},
		{"huge padding", 10, 1 << 62, true},
		{"max resolution", MaxResolution, 0, false},
		{"above max resolution", MaxResolution + 1, 0, true},
		{"resolution overflowing cell count", 1 << 32, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBounds(tt.r, tt.pad)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBounds) {
					t.Errorf("expected ErrInvalidBounds, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestInteriorArea(t *testing.T) {
	if got := InteriorArea(8, 2); got != 16 {
		t.Errorf("InteriorArea(8, 2): got %d, want 16", got)
	}
	if got := InteriorArea(8, 4); got != 0 {
		t.Errorf("InteriorArea(8, 4): got %d, want 0", got)
	}
	if got := InteriorArea(10, 1<<62); got != 0 {
		t.Errorf("InteriorArea(10, 1<<62): got %d, want 0", got)
	}
}
