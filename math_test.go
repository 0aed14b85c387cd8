package post

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !floats.EqualWithinAbs(a[i], b[i], 1e-12) {
			return false
		}
	}
	return true
}

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqual(cross(i, j), k) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(cross(j, k), i) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}) {
		t.Fatal("cross fail")
	}
}

func TestNormUnit(t *testing.T) {
	if norm([]float64{3, 4, 0}) != 5 {
		t.Fatal("norm fail")
	}
	if !vectorsEqual(unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of zero vector should be zero")
	}
	u := unit([]float64{12, -3, 4})
	if !floats.EqualWithinAbs(norm(u), 1, 1e-12) {
		t.Fatal("unit norm != 1")
	}
}

func TestAngleBetween(t *testing.T) {
	x := []float64{1, 0, 0}
	cases := []struct {
		v   []float64
		exp float64
	}{
		{[]float64{2, 0, 0}, 0},
		{[]float64{0, 3, 0}, math.Pi / 2},
		{[]float64{-1, 0, 0}, math.Pi},
		{[]float64{1, 1, 0}, math.Pi / 4},
		{[]float64{0, 0, 0}, 0},
	}
	for _, c := range cases {
		if got := angleBetween(x, c.v); !floats.EqualWithinAbs(got, c.exp, 1e-12) {
			t.Fatalf("angle to %+v: got %f want %f", c.v, got, c.exp)
		}
	}
}

func TestAngleConversions(t *testing.T) {
	for deg := 0.5; deg < 360; deg += 7.3 {
		rad := Deg2rad(deg)
		if !floats.EqualWithinAbs(Rad2deg(rad), deg, 1e-9) {
			t.Fatalf("round trip fail for %f deg", deg)
		}
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-12) {
		t.Fatal("negative degrees should wrap")
	}
}
