package post

// State holds the integrated quantities at one instant along with everything
// derived from them during the staged assembly (cf. buildState). It is a plain
// value type; the integrator copies it into scratch freely.
type State struct {
	Time           float64
	TimeSinceEvent float64

	Position []float64 // inertial, m
	Velocity []float64 // inertial, m/s

	PositionPlanet     []float64 // Earth-rotating frame
	Altitude           float64
	AltitudeGeopot     float64
	VelocityPlanet     []float64
	VelocityAtmosphere []float64

	Temperature     float64
	Pressure        float64
	Density         float64
	SpeedOfSound    float64
	MachNumber      float64
	DynamicPressure float64

	EulerRoll  float64 // rad, relative to launch frame
	EulerYaw   float64
	EulerPitch float64

	Mass           float64 // structure + propellant, kg
	PropellantMass float64
	Massflow       float64 // kg/s, nonpositive

	ThrustForceBody     []float64
	AeroForceBody       []float64
	VehicleAcceleration []float64 // sensed, body frame
	GravityAcceleration []float64 // inertial
	Acceleration        []float64 // total, inertial

	Alpha    float64 // angle of attack, rad
	Throttle float64
}

// newState returns a State with all vector fields allocated and zeroed.
func newState() State {
	return State{
		Position:            make([]float64, 3),
		Velocity:            make([]float64, 3),
		PositionPlanet:      make([]float64, 3),
		VelocityPlanet:      make([]float64, 3),
		VelocityAtmosphere:  make([]float64, 3),
		ThrustForceBody:     make([]float64, 3),
		AeroForceBody:       make([]float64, 3),
		VehicleAcceleration: make([]float64, 3),
		GravityAcceleration: make([]float64, 3),
		Acceleration:        make([]float64, 3),
	}
}

// primaryVec packs the integrated state (r, v, propellant mass) into the
// 7-dim vector the integrator works on.
func (s State) primaryVec() []float64 {
	return []float64{
		s.Position[0], s.Position[1], s.Position[2],
		s.Velocity[0], s.Velocity[1], s.Velocity[2],
		s.PropellantMass,
	}
}

// differentials returns the derivative of the primary vector.
func (s State) differentials() []float64 {
	return []float64{
		s.Velocity[0], s.Velocity[1], s.Velocity[2],
		s.Acceleration[0], s.Acceleration[1], s.Acceleration[2],
		s.Massflow,
	}
}
