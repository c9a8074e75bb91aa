package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func nearly(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 6, 3)

	if got := a.Add(b); got != V3(5, 8, 6) {
		t.Errorf("Add() = %v, expected (5, 8, 6)", got)
	}
	if got := b.Sub(a); got != V3(3, 4, 0) {
		t.Errorf("Sub() = %v, expected (3, 4, 0)", got)
	}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance() = %f, expected 5", got)
	}
	if got := V3(3, 100, 4).Horizontal(); got != 5 {
		t.Errorf("Horizontal() = %f, expected 5", got)
	}
}

func TestRotateEulerRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		euler Vec3
	}{
		{"identity", V3(0, 0, 0)},
		{"x only", V3(math.Pi/2, 0, 0)},
		{"all axes", V3(0.3, 1.1, 2.9)},
		{"half turns", V3(math.Pi, math.Pi, math.Pi)},
	}

	v := V3(0.2, -1, 0.7)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rotated := RotateEuler(v, tc.euler)
			if math.Abs(rotated.Len()-v.Len()) > eps {
				t.Errorf("rotation changed length: %f -> %f", v.Len(), rotated.Len())
			}
			back := InverseRotateEuler(rotated, tc.euler)
			if !nearly(back, v) {
				t.Errorf("InverseRotateEuler(RotateEuler(v)) = %v, expected %v", back, v)
			}
		})
	}
}

func TestRotateEulerQuarterTurnX(t *testing.T) {
	got := RotateEuler(V3(0, 1, 0), V3(math.Pi/2, 0, 0))
	if !nearly(got, V3(0, 0, 1)) {
		t.Errorf("RotateEuler(up, 90deg X) = %v, expected (0, 0, 1)", got)
	}
}

func TestLookingDown(t *testing.T) {
	p := LookingDown(V3(0, 1, 1), 0, math.Pi/4)
	fwd := p.Forward()

	if fwd.Y >= 0 {
		t.Errorf("Forward().Y = %f, expected a downward direction", fwd.Y)
	}
	if fwd.Z >= 0 {
		t.Errorf("Forward().Z = %f, expected to look toward -Z", fwd.Z)
	}
	if math.Abs(fwd.Len()-1) > eps {
		t.Errorf("Forward() length = %f, expected 1", fwd.Len())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
