package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/viper"
)

// The mission input is an ordered JSON array of phase overlays. Every field
// is optional; a missing or null field keeps the value inherited from the
// previous phase. Lists (engines) are replaced wholesale.

// PhaseOverlay mirrors the effective phase configuration with optionals.
type PhaseOverlay struct {
	PlanetModel     *PlanetOverlay     `json:"planet_model"`
	Atmosphere      *AtmosphereOverlay `json:"atmosphere"`
	Init            *InitOverlay       `json:"init"`
	Vehicle         *VehicleOverlay    `json:"vehicle"`
	MaxAcceleration *float64           `json:"max_acceleration"`
	Steering        *SteeringOverlay   `json:"steering"`
	Stepsize        *float64           `json:"stepsize"`
	EndCriterion    *EndCriterion      `json:"end_criterion"`
}

// PlanetOverlay is either a preset tag or a fully custom planet.
type PlanetOverlay struct {
	planet Planet
}

// UnmarshalJSON accepts "spherical" style tags or a custom object.
func (p *PlanetOverlay) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		planet, err := PlanetFromName(tag)
		if err != nil {
			return err
		}
		p.planet = planet
		return nil
	}
	var custom struct {
		EquatorialRadius        *float64   `json:"equatorial_radius"`
		PolarRadius             *float64   `json:"polar_radius"`
		GravitationalParameters []float64  `json:"gravitational_parameters"`
		RotationRate            *float64   `json:"rotation_rate"`
	}
	if err := strictUnmarshal(data, &custom); err != nil {
		return newConfigError("invalid planet model: %s", err)
	}
	if custom.EquatorialRadius == nil || custom.PolarRadius == nil ||
		custom.RotationRate == nil || len(custom.GravitationalParameters) != 4 {
		return newConfigError("custom planet model needs equatorial_radius, polar_radius, rotation_rate and 4 gravitational parameters")
	}
	p.planet = Planet{
		Name:             "custom",
		EquatorialRadius: *custom.EquatorialRadius,
		PolarRadius:      *custom.PolarRadius,
		RotationRate:     *custom.RotationRate,
	}
	copy(p.planet.GravitationalParameters[:], custom.GravitationalParameters)
	return nil
}

// AtmosphereOverlay switches the atmosphere and sets the static wind.
type AtmosphereOverlay struct {
	Enabled *bool      `json:"enabled"`
	Wind    *[]float64 `json:"wind"`
}

// InitOverlay is the geodetic launch state, used only on phase 0. Degrees.
type InitOverlay struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Azimuth   float64 `json:"azimuth"`
	Altitude  float64 `json:"altitude"`
}

// VehicleOverlay carries the vehicle fields, each optional.
type VehicleOverlay struct {
	StructureMass  *float64       `json:"structure_mass"`
	PropellantMass *float64       `json:"propellant_mass"`
	ReferenceArea  *float64       `json:"reference_area"`
	DragCoeff      *TableOverlay  `json:"drag_coeff"`
	LiftCoeff      *TableOverlay  `json:"lift_coeff"`
	SideForceCoeff *TableOverlay  `json:"side_force_coeff"`
	Engines        *[]EngineSpec  `json:"engines"`
}

// EngineSpec is one engine; incidence angles in radians.
type EngineSpec struct {
	Incidence [2]float64 `json:"incidence"`
	ThrustVac float64    `json:"thrust_vac"`
	IspVac    float64    `json:"isp_vac"`
	ExitArea  float64    `json:"exit_area"`
}

func (e EngineSpec) engine() Engine {
	return Engine{e.Incidence, e.ThrustVac, e.IspVac, e.ExitArea}
}

// axisSpec decodes the ["state_variable", [breakpoints...]] pair.
type axisSpec struct {
	Variable    StateVariable
	Breakpoints []float64
}

func (a *axisSpec) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return newConfigError("table axis must be a [key, breakpoints] pair: %s", err)
	}
	var key string
	if err := json.Unmarshal(pair[0], &key); err != nil {
		return newConfigError("table axis key: %s", err)
	}
	a.Variable = StateVariable(key)
	if err := a.Variable.Validate(); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &a.Breakpoints); err != nil {
		return newConfigError("table axis %q breakpoints: %s", key, err)
	}
	return nil
}

// TableOverlay is a rank 1-3 table; the rank follows from which axes are
// present. {x: [key, []], data: []} clears the table.
type TableOverlay struct {
	X    *axisSpec       `json:"x"`
	Y    *axisSpec       `json:"y"`
	Z    *axisSpec       `json:"z"`
	Data json.RawMessage `json:"data"`
}

func (t TableOverlay) table() (Table, error) {
	if t.X == nil {
		return Table{}, newConfigError("table needs at least an x axis")
	}
	if len(t.X.Breakpoints) == 0 {
		// Explicitly cleared table.
		var empty []float64
		if err := json.Unmarshal(t.Data, &empty); err != nil || len(empty) != 0 {
			return Table{}, newConfigError("a table without breakpoints must have empty data")
		}
		return NewEmptyTable(), nil
	}
	switch {
	case t.Y == nil && t.Z == nil:
		var data []float64
		if err := json.Unmarshal(t.Data, &data); err != nil {
			return Table{}, newConfigError("1D table data: %s", err)
		}
		return NewTable1D(TableAxis(*t.X), data)
	case t.Y != nil && t.Z == nil:
		var data [][]float64
		if err := json.Unmarshal(t.Data, &data); err != nil {
			return Table{}, newConfigError("2D table data: %s", err)
		}
		return NewTable2D(TableAxis(*t.X), TableAxis(*t.Y), data)
	case t.Y != nil && t.Z != nil:
		var data [][][]float64
		if err := json.Unmarshal(t.Data, &data); err != nil {
			return Table{}, newConfigError("3D table data: %s", err)
		}
		return NewTable3D(TableAxis(*t.X), TableAxis(*t.Y), TableAxis(*t.Z), data)
	default:
		return Table{}, newConfigError("table has a z axis but no y axis")
	}
}

// SteeringOverlay sets the per-axis polynomials.
type SteeringOverlay struct {
	Roll  *SteeringAxisSpec `json:"roll"`
	Yaw   *SteeringAxisSpec `json:"yaw"`
	Pitch *SteeringAxisSpec `json:"pitch"`
}

// SteeringAxisSpec decodes ["state_variable", [c0, c1, c2, c3]]; a null c0
// anchors the angle to the previous phase.
type SteeringAxisSpec struct {
	poly SteeringPolynomial
}

func (s *SteeringAxisSpec) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return newConfigError("steering axis must be a [key, coefficients] pair: %s", err)
	}
	var key string
	if err := json.Unmarshal(pair[0], &key); err != nil {
		return newConfigError("steering key: %s", err)
	}
	s.poly.Variable = StateVariable(key)
	if err := s.poly.Variable.Validate(); err != nil {
		return err
	}
	var coeffs []*float64
	if err := json.Unmarshal(pair[1], &coeffs); err != nil {
		return newConfigError("steering coefficients for %q: %s", key, err)
	}
	if len(coeffs) != 4 {
		return newConfigError("steering for %q needs 4 coefficients, got %d", key, len(coeffs))
	}
	s.poly.AnchorC0 = coeffs[0] == nil
	for i, c := range coeffs {
		if c == nil {
			if i > 0 {
				return newConfigError("steering for %q: only c0 may be null", key)
			}
			continue
		}
		s.poly.Coeffs[i] = *c
	}
	return nil
}

// EndCriterion decodes ["state_variable", target].
type EndCriterion struct {
	Key    StateVariable
	Target float64
}

func (e *EndCriterion) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return newConfigError("end criterion must be a [key, value] pair: %s", err)
	}
	var key string
	if err := json.Unmarshal(pair[0], &key); err != nil {
		return newConfigError("end criterion key: %s", err)
	}
	e.Key = StateVariable(key)
	if err := e.Key.Validate(); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &e.Target); err != nil {
		return newConfigError("end criterion target for %q: %s", key, err)
	}
	return nil
}

// LoadConfig reads and decodes a mission file. Unknown fields are rejected.
func LoadConfig(path string) ([]PhaseOverlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes the JSON phase overlay array.
func ParseConfig(data []byte) ([]PhaseOverlay, error) {
	var overlays []PhaseOverlay
	if err := strictUnmarshal(data, &overlays); err != nil {
		if _, ok := err.(ConfigError); ok {
			return nil, err
		}
		return nil, newConfigError("invalid mission file: %s", err)
	}
	if len(overlays) == 0 {
		return nil, newConfigError("mission file contains no phases")
	}
	return overlays, nil
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// mergeInto applies the overlay onto the running effective phase. Missing and
// null fields keep the inherited value; engines and tables are replaced
// wholesale. It reports whether propellant was explicitly reset.
func (p *Phase) mergeInto(o PhaseOverlay) (propellantReset *float64, err error) {
	if o.PlanetModel != nil {
		p.Planet = o.PlanetModel.planet
	}
	if o.Atmosphere != nil {
		if o.Atmosphere.Enabled != nil {
			p.Atmosphere.Enabled = *o.Atmosphere.Enabled
		}
		if o.Atmosphere.Wind != nil {
			if len(*o.Atmosphere.Wind) != 3 {
				return nil, newConfigError("wind must be a 3-vector")
			}
			p.Atmosphere.Wind = append([]float64(nil), *o.Atmosphere.Wind...)
		}
	}
	if o.Vehicle != nil {
		v := o.Vehicle
		if v.StructureMass != nil {
			p.Vehicle.StructureMass = *v.StructureMass
		}
		if v.PropellantMass != nil {
			propellantReset = v.PropellantMass
		}
		if v.ReferenceArea != nil {
			p.Vehicle.ReferenceArea = *v.ReferenceArea
		}
		if v.DragCoeff != nil {
			if p.Vehicle.DragCoeff, err = v.DragCoeff.table(); err != nil {
				return nil, err
			}
		}
		if v.LiftCoeff != nil {
			if p.Vehicle.LiftCoeff, err = v.LiftCoeff.table(); err != nil {
				return nil, err
			}
		}
		if v.SideForceCoeff != nil {
			if p.Vehicle.SideForceCoeff, err = v.SideForceCoeff.table(); err != nil {
				return nil, err
			}
		}
		if v.Engines != nil {
			p.Vehicle.Engines = make([]Engine, len(*v.Engines))
			for i, spec := range *v.Engines {
				p.Vehicle.Engines[i] = spec.engine()
			}
		}
	}
	if o.MaxAcceleration != nil {
		// A non-positive value disables the auto-throttle again.
		if *o.MaxAcceleration <= 0 {
			p.Vehicle.MaxAcceleration = math.Inf(1)
		} else {
			p.Vehicle.MaxAcceleration = *o.MaxAcceleration
		}
	}
	if o.Steering != nil {
		if o.Steering.Roll != nil {
			p.Steering.Roll = o.Steering.Roll.poly
		}
		if o.Steering.Yaw != nil {
			p.Steering.Yaw = o.Steering.Yaw.poly
		}
		if o.Steering.Pitch != nil {
			p.Steering.Pitch = o.Steering.Pitch.poly
		}
	}
	if o.Stepsize != nil {
		if *o.Stepsize <= 0 {
			return nil, newConfigError("stepsize must be positive")
		}
		p.Stepsize = *o.Stepsize
	}
	if o.EndCriterion != nil {
		p.EndKey = o.EndCriterion.Key
		p.EndValue = o.EndCriterion.Target
	}
	return propellantReset, nil
}

// Settings are the optional global defaults, loaded from conf.toml in the
// directory named by POST_SETTINGS. Absence of the variable or the file
// means built-in defaults; the simulator needs no environment.
type Settings struct {
	CSVDir         string
	MaxSteps       int
	EventTolerance float64
	Verbose        bool
}

// LoadSettings reads the optional settings file.
func LoadSettings() Settings {
	s := Settings{MaxSteps: DefaultMaxSteps, EventTolerance: DefaultEventTolerance}
	confPath := os.Getenv("POST_SETTINGS")
	if confPath == "" {
		return s
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		return s
	}
	if dir := viper.GetString("output.csv_path"); dir != "" {
		s.CSVDir = dir
	}
	if n := viper.GetInt("limits.max_steps"); n > 0 {
		s.MaxSteps = n
	}
	if tol := viper.GetFloat64("limits.event_tolerance"); tol > 0 {
		s.EventTolerance = tol
	}
	s.Verbose = viper.GetBool("logging.verbose")
	return s
}

// defaultPhase is the phase 0 starting point before any overlay.
func defaultPhase() Phase {
	return Phase{
		Planet:     EarthSpherical,
		Atmosphere: NewAtmosphere(),
		Steering:   NewSteering(),
		Vehicle:    Vehicle{MaxAcceleration: math.Inf(1)},
	}
}
