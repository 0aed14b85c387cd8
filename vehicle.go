package post

import (
	"math"

	"github.com/gonum/floats"
)

// Engine is one thrust-producing engine with fixed incidence.
type Engine struct {
	// Incidence is [pitch, yaw] of the nozzle in the body frame, rad.
	Incidence [2]float64
	ThrustVac float64 // N
	IspVac    float64 // s
	ExitArea  float64 // m^2
}

// Thrust returns the thrust force vector in the body frame at the given
// ambient pressure.
func (e Engine) Thrust(pressureAtmos float64) []float64 {
	sp, cp := math.Sincos(e.Incidence[0])
	sy, cy := math.Sincos(e.Incidence[1])
	return scale(e.ThrustVac-e.ExitArea*pressureAtmos, []float64{cy * cp, sy, cy * sp})
}

// Massflow returns the (negative) propellant flow of this engine at full
// throttle.
func (e Engine) Massflow() float64 {
	return -e.ThrustVac / e.IspVac / StdGravity
}

// Vehicle holds the phase's mass, aerodynamic and propulsion configuration.
// Tables and engines are owned value-wise; copying a Vehicle is a deep copy
// for simulation purposes.
type Vehicle struct {
	StructureMass  float64
	ReferenceArea  float64
	DragCoeff      Table
	LiftCoeff      Table
	SideForceCoeff Table
	Engines        []Engine
	// MaxAcceleration caps the sensed acceleration; +Inf disables the
	// auto-throttle.
	MaxAcceleration float64
}

// ThrustForce sums the engine thrust vectors in the body frame, scaled by the
// throttle.
func (v Vehicle) ThrustForce(throttle, pressureAtmos float64) []float64 {
	force := []float64{0, 0, 0}
	for _, eng := range v.Engines {
		force = add(force, eng.Thrust(pressureAtmos))
	}
	return scale(throttle, force)
}

// Massflow sums the engine propellant flows, scaled by the throttle.
func (v Vehicle) Massflow(throttle float64) float64 {
	flow := 0.
	for _, eng := range v.Engines {
		flow += eng.Massflow()
	}
	return throttle * flow
}

// Alpha returns the angle of attack for the atmosphere-relative velocity in
// body axes. Sideslip is carried by the side-force table and does not enter.
func (v Vehicle) Alpha(velocityBody []float64) float64 {
	if velocityBody[0] == 0 && velocityBody[2] == 0 {
		return 0
	}
	return math.Atan2(velocityBody[2], velocityBody[0])
}

// AeroForce looks up the coefficients for the current state and rotates drag
// and lift into the axial/normal body components.
func (v Vehicle) AeroForce(alpha float64, s *State) []float64 {
	cd := v.DragCoeff.Lookup(s)
	cl := v.LiftCoeff.Lookup(s)
	cy := v.SideForceCoeff.Lookup(s)

	sinA, cosA := math.Sincos(alpha)
	ca := cosA*cd - sinA*cl
	cn := sinA*cd + cosA*cl

	force := scale(s.DynamicPressure*v.ReferenceArea, []float64{-ca, cy, -cn})
	for i, f := range force {
		if math.IsNaN(f) {
			force[i] = 0
		}
	}
	return force
}

// sideSideAngle solves the triangle with known sides a and b and the angle
// opposite a. It returns the third side, or false when no triangle exists
// (required thrust not reachable).
func sideSideAngle(a, b, alpha float64) (float64, bool) {
	if floats.EqualWithinAbs(alpha, 0, 1e-9) {
		if b > a {
			return b - a, true
		}
		return a + b, true
	}
	if floats.EqualWithinAbs(alpha, math.Pi, 1e-9) {
		return a - b, true
	}

	// arcsin undefined: the two sides cannot meet
	if math.Sin(alpha)*b > a {
		return 0, false
	}

	beta := math.Asin(math.Sin(alpha) * b / a)
	if b > a {
		beta = math.Pi - beta
	}
	gamma := math.Pi - beta - alpha

	return a * math.Sin(gamma) / math.Sin(alpha), true
}

// AutoThrottle returns the throttle in [0,1] which keeps the sensed
// acceleration at or below MaxAcceleration, given the aerodynamic force.
func (v Vehicle) AutoThrottle(mass, pressureAtmos float64, aero []float64) float64 {
	maxThrust := v.ThrustForce(1, pressureAtmos)
	if norm(maxThrust) == 0 {
		return 1
	}
	if math.IsInf(v.MaxAcceleration, 1) {
		return 1
	}
	if norm(add(maxThrust, aero))/mass <= v.MaxAcceleration {
		return 1
	}

	// The sides tau*|F_T|, |F_A| and m*a_max form a triangle; the angle
	// opposite m*a_max is pi minus the angle between thrust and aero.
	angle := math.Pi - angleBetween(aero, maxThrust)
	reqThrust, ok := sideSideAngle(v.MaxAcceleration*mass, norm(aero), angle)
	if !ok {
		// The clamping below cannot keep the limit either; the caller
		// detects the violation on the assembled acceleration.
		return 1
	}
	tau := reqThrust / norm(maxThrust)
	if tau < 0 {
		return 0
	}
	if tau > 1 {
		return 1
	}
	return tau
}
