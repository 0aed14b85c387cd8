package post

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestAtmosphereDisabled(t *testing.T) {
	a := NewAtmosphere()
	if a.Temperature(0) != 0 || a.Pressure(0) != 0 || a.Density(0) != 0 || a.SpeedOfSound(0) != 0 {
		t.Fatal("disabled atmosphere must return zeros")
	}
}

func TestSeaLevel(t *testing.T) {
	a := Atmosphere{Enabled: true}
	if temp := a.Temperature(0); !floats.EqualWithinAbs(temp, 288.15, 1e-9) {
		t.Fatalf("sea level temperature: %f", temp)
	}
	if p := a.Pressure(0); !floats.EqualWithinRel(p, 101325, 1e-4) {
		t.Fatalf("sea level pressure: %f", p)
	}
	if rho := a.Density(0); !floats.EqualWithinRel(rho, 1.225, 1e-3) {
		t.Fatalf("sea level density: %f", rho)
	}
	if cs := a.SpeedOfSound(0); !floats.EqualWithinRel(cs, 340.29, 1e-3) {
		t.Fatalf("sea level speed of sound: %f", cs)
	}
}

func TestTroposphere(t *testing.T) {
	a := Atmosphere{Enabled: true}
	// Linear lapse of 6.5 K/km up to the tropopause.
	if temp := a.Temperature(10000); !floats.EqualWithinAbs(temp, 223.15, 1e-6) {
		t.Fatalf("temperature at 10 km: %f", temp)
	}
	if p := a.Pressure(10000); !floats.EqualWithinRel(p, 26436, 1e-3) {
		t.Fatalf("pressure at 10 km: %f", p)
	}
}

func TestStratosphereIsothermal(t *testing.T) {
	a := Atmosphere{Enabled: true}
	// The layer above 11 km is isothermal at 216.65 K.
	t1 := a.Temperature(12000)
	t2 := a.Temperature(15000)
	if !floats.EqualWithinAbs(t1, 216.65, 1e-2) || !floats.EqualWithinAbs(t1, t2, 1e-9) {
		t.Fatalf("isothermal layer: %f vs %f", t1, t2)
	}
	// Pressure still decays exponentially.
	if p1, p2 := a.Pressure(12000), a.Pressure(15000); p2 >= p1 {
		t.Fatalf("pressure must decay: %f -> %f", p1, p2)
	}
}

func TestHighAltitudeProfile(t *testing.T) {
	a := Atmosphere{Enabled: true}
	// The extension above 86 km keeps temperature and pressure finite and
	// pressure monotonically decreasing.
	prev := a.Pressure(80e3)
	for _, h := range []float64{100e3, 200e3, 400e3, 600e3} {
		p := a.Pressure(h)
		if p <= 0 || p >= prev {
			t.Fatalf("pressure profile broken at %f m: %g (prev %g)", h, p, prev)
		}
		prev = p
		if temp := a.Temperature(h); temp <= 0 {
			t.Fatalf("temperature at %f m: %f", h, temp)
		}
	}
}

func TestMachAndDynamicPressure(t *testing.T) {
	p := EarthSpherical
	phase := Phase{
		Planet:     p,
		Atmosphere: Atmosphere{Enabled: true, Wind: []float64{0, 0, 0}},
		Vehicle:    Vehicle{StructureMass: 1, MaxAcceleration: math.Inf(1)},
		Steering:   NewSteering(),
	}
	phase.inertialToLaunch = InertialToLaunch(0, 0, 0)

	y := []float64{p.EquatorialRadius, 0, 0, 340.29, 0, 0, 0}
	s := phase.buildState(0, y)
	if !floats.EqualWithinRel(s.MachNumber, 1, 1e-3) {
		t.Fatalf("mach at sea level for 340 m/s: %f", s.MachNumber)
	}
	expQ := 0.5 * s.Density * 340.29 * 340.29
	if !floats.EqualWithinRel(s.DynamicPressure, expQ, 1e-9) {
		t.Fatalf("dynamic pressure: %f want %f", s.DynamicPressure, expQ)
	}
}
