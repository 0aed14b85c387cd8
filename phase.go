package post

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

const (
	// DefaultEventTolerance is the |e| below which the end criterion
	// counts as met.
	DefaultEventTolerance = 1e-3
	// DefaultMaxSteps guards against non-terminating end criteria.
	DefaultMaxSteps = 1000000
	// hMinFactor scales the nominal step into the smallest bracketing
	// step the refinement may take.
	hMinFactor = 1e-6
)

// Phase is one contiguous segment of the mission with a fixed, fully merged
// configuration. It owns its vehicle, tables and engines value-wise.
type Phase struct {
	Index      int
	Planet     Planet
	Atmosphere Atmosphere
	Vehicle    Vehicle
	Steering   Steering
	Stepsize   float64
	EndKey     StateVariable
	EndValue   float64

	EventTolerance float64
	MaxSteps       int

	// inertialToLaunch is fixed at launch (the launch frame does not
	// co-rotate).
	inertialToLaunch *mat64.Dense

	startTime float64
	derivErr  error
}

// eventValue is the signed distance of the state from the end criterion.
func (p *Phase) eventValue(s *State) float64 {
	return p.EndKey.Value(s) - p.EndValue
}

// buildState derives the full State from the primary vector in the fixed
// staged order: kinematics, planet-relative quantities, atmosphere,
// steering, forces, gravity. Table axes and steering keys referencing a
// later stage read zero.
func (p *Phase) buildState(t float64, y []float64) State {
	s := newState()

	// Stage 1: kinematic refresh.
	s.Time = t
	s.TimeSinceEvent = t - p.startTime
	copy(s.Position, y[0:3])
	copy(s.Velocity, y[3:6])
	s.PropellantMass = math.Max(y[6], 0)
	s.Mass = p.Vehicle.StructureMass + s.PropellantMass

	// Stage 2: planet-relative quantities.
	s.PositionPlanet = p.Planet.PositionPlanet(s.Position, t)
	s.Altitude = p.Planet.Altitude(s.Position)
	s.AltitudeGeopot = p.Planet.GeopotentialAltitude(s.Altitude)
	s.VelocityPlanet = p.Planet.RelVelocity(s.Position, s.Velocity)
	s.VelocityAtmosphere = sub(s.VelocityPlanet, p.windInertial(t))

	// Stage 3: atmosphere.
	s.Temperature = p.Atmosphere.Temperature(s.AltitudeGeopot)
	s.Pressure = p.Atmosphere.Pressure(s.AltitudeGeopot)
	s.Density = p.Atmosphere.Density(s.AltitudeGeopot)
	s.SpeedOfSound = p.Atmosphere.SpeedOfSound(s.AltitudeGeopot)
	if s.SpeedOfSound > 0 {
		s.MachNumber = norm(s.VelocityAtmosphere) / s.SpeedOfSound
	}
	s.DynamicPressure = 0.5 * s.Density * math.Pow(norm(s.VelocityAtmosphere), 2)

	// Stage 4: steering.
	rollDeg, yawDeg, pitchDeg := p.Steering.Angles(&s)
	s.EulerRoll = rollDeg * deg2rad
	s.EulerYaw = yawDeg * deg2rad
	s.EulerPitch = pitchDeg * deg2rad
	inertialToBody := MxM33(LaunchToBody(s.EulerRoll, s.EulerYaw, s.EulerPitch), p.inertialToLaunch)

	// Stage 5: forces.
	velAtmosBody := MxV33(inertialToBody, s.VelocityAtmosphere)
	s.Alpha = p.Vehicle.Alpha(velAtmosBody)
	s.AeroForceBody = p.Vehicle.AeroForce(s.Alpha, &s)
	s.Throttle = p.Vehicle.AutoThrottle(s.Mass, s.Pressure, s.AeroForceBody)
	if s.PropellantMass > 0 {
		s.ThrustForceBody = p.Vehicle.ThrustForce(s.Throttle, s.Pressure)
		s.Massflow = p.Vehicle.Massflow(s.Throttle)
	}
	s.VehicleAcceleration = scale(1/s.Mass, add(s.ThrustForceBody, s.AeroForceBody))
	if sensed := norm(s.VehicleAcceleration); math.IsNaN(sensed) ||
		(!math.IsInf(p.Vehicle.MaxAcceleration, 1) && sensed > p.Vehicle.MaxAcceleration*1.001) {
		p.fail(s, "max acceleration %.3f exceeded by required thrust (sensed %.3f)",
			p.Vehicle.MaxAcceleration, sensed)
	}

	// Stage 6: gravity.
	s.GravityAcceleration = p.Planet.Gravity(s.Position)

	// Stage 7: total acceleration.
	s.Acceleration = add(MxV33(transpose33(inertialToBody), s.VehicleAcceleration), s.GravityAcceleration)

	return s
}

func (p *Phase) windInertial(t float64) []float64 {
	if !p.Atmosphere.Enabled || len(p.Atmosphere.Wind) != 3 {
		return []float64{0, 0, 0}
	}
	// The static wind is given in the planet frame; undo the planet
	// rotation to express it in inertial axes.
	return MxV33(R3(-p.Planet.RotationRate*t), p.Atmosphere.Wind)
}

// fail records the first numeric failure raised inside a derivative
// evaluation; the step loop surfaces it.
func (p *Phase) fail(s State, format string, args ...interface{}) {
	if p.derivErr == nil {
		p.derivErr = newNumericError(p.Index, s, format, args...)
	}
}

// derivatives is the closure handed to the RK4 stepper.
func (p *Phase) derivatives(t float64, y []float64) []float64 {
	s := p.buildState(t, y)
	d := s.differentials()
	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			p.fail(s, "non-finite derivative component %d", i)
			break
		}
	}
	return d
}

// run integrates the phase until the end criterion is met, emitting every
// accepted state. It returns the terminal state.
func (p *Phase) run(initial State, emit func(State), cancelled func() bool) (State, error) {
	p.startTime = initial.Time
	if p.EventTolerance == 0 {
		p.EventTolerance = DefaultEventTolerance
	}
	if p.MaxSteps == 0 {
		p.MaxSteps = DefaultMaxSteps
	}

	y0 := initial.primaryVec()
	s0 := p.buildState(initial.Time, y0)
	if p.derivErr != nil {
		return s0, p.derivErr
	}
	emit(s0)

	e0 := p.eventValue(&s0)
	if math.Abs(e0) <= p.EventTolerance {
		return s0, nil
	}

	hMin := hMinFactor * p.Stepsize
	for steps := 0; ; steps++ {
		if steps >= p.MaxSteps {
			return s0, LimitReached{p.Index, p.MaxSteps}
		}
		if cancelled() {
			return s0, Cancelled{p.Index}
		}

		s1, y1, err := p.step(s0.Time, y0, p.Stepsize)
		if err != nil {
			return s0, err
		}
		e1 := p.eventValue(&s1)

		if math.Abs(e1) <= p.EventTolerance {
			emit(s1)
			return s1, nil
		}
		if e0*e1 < 0 {
			// The event is inside this step: refine the step size by
			// regula falsi on e(h).
			terminal, err := p.refine(s0.Time, y0, e0, e1, hMin)
			if err != nil {
				return s0, err
			}
			emit(terminal)
			return terminal, nil
		}

		emit(s1)
		s0, y0, e0 = s1, y1, e1
	}
}

// step performs one RK4 step plus the final state assembly at the accepted
// point, clamping propellant exhaustion at the step boundary.
func (p *Phase) step(t float64, y []float64, h float64) (State, []float64, error) {
	y1 := rk4Step(p.derivatives, t, y, h)
	if y1[6] < 0 {
		y1[6] = 0
	}
	s1 := p.buildState(t+h, y1)
	if p.derivErr != nil {
		return s1, y1, p.derivErr
	}
	return s1, y1, nil
}

// refine searches the step size within (0, h] for the event crossing.
func (p *Phase) refine(t float64, y []float64, eLo, eHi, hMin float64) (State, error) {
	lo, hi := 0., p.Stepsize
	var best State
	for i := 0; i < 100; i++ {
		if hi-lo < hMin {
			return best, newNumericError(p.Index, best,
				"step shrunk below %.3e without meeting %s", hMin, string(p.EndKey))
		}
		hTry := lo - eLo*(hi-lo)/(eHi-eLo)
		// Keep the iterate strictly inside the bracket.
		if hTry <= lo || hTry >= hi {
			hTry = 0.5 * (lo + hi)
		}
		sTry, _, err := p.step(t, y, hTry)
		if err != nil {
			return sTry, err
		}
		eTry := p.eventValue(&sTry)
		if math.Abs(eTry) <= p.EventTolerance {
			return sTry, nil
		}
		if sign(eTry) == sign(eLo) {
			lo, eLo = hTry, eTry
		} else {
			hi, eHi = hTry, eTry
		}
		best = sTry
	}
	return best, newNumericError(p.Index, best,
		"event refinement did not converge on %s", string(p.EndKey))
}
