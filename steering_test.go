package post

import (
	"testing"

	"github.com/gonum/floats"
)

func TestSteeringPolynomial(t *testing.T) {
	st := NewSteering()
	st.Yaw = SteeringPolynomial{Variable: VarTime, Coeffs: [4]float64{4, 3, 2, 1}}
	s := newState()
	s.Time = 2
	_, yaw, _ := st.Angles(&s)
	if exp := 4. + 3.*2 + 2.*4 + 1.*8; yaw != exp {
		t.Fatalf("cubic polynomial: got %f want %f", yaw, exp)
	}
}

func TestSteeringOtherKey(t *testing.T) {
	st := NewSteering()
	st.Pitch = SteeringPolynomial{Variable: VarAltitude, Coeffs: [4]float64{0, 0.001, 0, 0}}
	s := newState()
	s.Altitude = 20000
	if _, _, pitch := st.Angles(&s); !floats.EqualWithinAbs(pitch, 20, 1e-12) {
		t.Fatalf("altitude-keyed pitch: %f", pitch)
	}
}

func TestSteeringAnchoring(t *testing.T) {
	st := NewSteering()
	st.Pitch = SteeringPolynomial{Variable: VarTime, AnchorC0: true}
	st.Roll = SteeringPolynomial{Variable: VarTime, Coeffs: [4]float64{5, 0, 0, 0}}

	st.Anchor(1, 2, 3)
	if st.Pitch.Coeffs[0] != 3 {
		t.Fatalf("anchored pitch c0: %f", st.Pitch.Coeffs[0])
	}
	// An explicit c0 must not be overwritten.
	if st.Roll.Coeffs[0] != 5 {
		t.Fatalf("explicit roll c0 overwritten: %f", st.Roll.Coeffs[0])
	}
}

func TestDefaultSteeringIsZero(t *testing.T) {
	st := NewSteering()
	s := newState()
	s.Time = 42
	roll, yaw, pitch := st.Angles(&s)
	if roll != 0 || yaw != 0 || pitch != 0 {
		t.Fatalf("default steering must be zero: %f %f %f", roll, yaw, pitch)
	}
}
