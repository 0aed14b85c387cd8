package post

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseExampleMission(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("examples", "mission.json"))
	if err != nil {
		t.Fatalf("reading example: %s", err)
	}
	overlays, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("parsing example: %s", err)
	}
	if len(overlays) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(overlays))
	}
	if overlays[0].Vehicle == nil || len(*overlays[0].Vehicle.Engines) != 1 {
		t.Fatal("phase 0 should carry one engine")
	}
	if !overlays[1].Steering.Pitch.poly.AnchorC0 {
		t.Fatal("phase 1 pitch c0 should anchor")
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := ParseConfig([]byte(`[{"warp_drive": true}]`))
	if err == nil {
		t.Fatal("unknown field should fail")
	}
}

func TestParseUnknownStateVariable(t *testing.T) {
	_, err := ParseConfig([]byte(`[{"end_criterion": ["specific_impulse", 1]}]`))
	if _, ok := err.(ConfigError); !ok {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestParseSteeringCoeffCount(t *testing.T) {
	_, err := ParseConfig([]byte(`[{"steering": {"pitch": ["time", [0, 1]]}}]`))
	if err == nil {
		t.Fatal("wrong coefficient count should fail")
	}
}

func TestParseCustomPlanet(t *testing.T) {
	overlays, err := ParseConfig([]byte(`[{
		"planet_model": {
			"equatorial_radius": 6378137,
			"polar_radius": 6356752,
			"gravitational_parameters": [3.986004418e14, 1.0826e-3, 0, 0],
			"rotation_rate": 7.292115e-5
		}
	}]`))
	if err != nil {
		t.Fatalf("custom planet: %s", err)
	}
	p := overlays[0].PlanetModel.planet
	if p.EquatorialRadius != 6378137 || p.GravitationalParameters[1] != 1.0826e-3 {
		t.Fatalf("custom planet mis-parsed: %+v", p)
	}
}

func TestParseIncompleteCustomPlanet(t *testing.T) {
	_, err := ParseConfig([]byte(`[{"planet_model": {"equatorial_radius": 6378137}}]`))
	if err == nil {
		t.Fatal("incomplete custom planet should fail")
	}
}

func TestMergeInheritance(t *testing.T) {
	effective := defaultPhase()
	overlays, err := ParseConfig([]byte(`[{
		"vehicle": {"structure_mass": 10, "reference_area": 4},
		"stepsize": 0.5,
		"end_criterion": ["time", 10]
	}, {
		"stepsize": 2
	}]`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := effective.mergeInto(overlays[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := effective.mergeInto(overlays[1]); err != nil {
		t.Fatal(err)
	}
	// Phase 1 changed only the stepsize.
	if effective.Stepsize != 2 {
		t.Fatalf("stepsize: %f", effective.Stepsize)
	}
	if effective.Vehicle.StructureMass != 10 || effective.Vehicle.ReferenceArea != 4 {
		t.Fatal("inherited vehicle fields lost")
	}
	if effective.EndKey != VarTime || effective.EndValue != 10 {
		t.Fatal("inherited end criterion lost")
	}
}

func TestMergeTableClear(t *testing.T) {
	effective := defaultPhase()
	overlays, err := ParseConfig([]byte(`[{
		"vehicle": {"drag_coeff": {"x": ["mach_number", [0, 1]], "data": [0.3, 0.5]}}
	}, {
		"vehicle": {"drag_coeff": {"x": ["mach_number", []], "data": []}}
	}]`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := effective.mergeInto(overlays[0]); err != nil {
		t.Fatal(err)
	}
	if effective.Vehicle.DragCoeff.Rank() != 1 {
		t.Fatal("table not set")
	}
	if _, err := effective.mergeInto(overlays[1]); err != nil {
		t.Fatal(err)
	}
	if effective.Vehicle.DragCoeff.Rank() != 0 {
		t.Fatal("table not cleared")
	}
	s := newState()
	if effective.Vehicle.DragCoeff.Lookup(&s) != 0 {
		t.Fatal("cleared table should return 0")
	}
}

func TestMergeMaxAccelerationDisable(t *testing.T) {
	effective := defaultPhase()
	overlays, err := ParseConfig([]byte(`[
		{"max_acceleration": 30},
		{"max_acceleration": 0}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	effective.mergeInto(overlays[0])
	if effective.Vehicle.MaxAcceleration != 30 {
		t.Fatalf("max acceleration: %f", effective.Vehicle.MaxAcceleration)
	}
	effective.mergeInto(overlays[1])
	if !math.IsInf(effective.Vehicle.MaxAcceleration, 1) {
		t.Fatalf("zero should disable the limit: %f", effective.Vehicle.MaxAcceleration)
	}
}

func TestMergeNullKeepsValue(t *testing.T) {
	effective := defaultPhase()
	overlays, err := ParseConfig([]byte(`[
		{"stepsize": 0.5, "max_acceleration": 30},
		{"stepsize": null, "max_acceleration": null}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	effective.mergeInto(overlays[0])
	effective.mergeInto(overlays[1])
	if effective.Stepsize != 0.5 || effective.Vehicle.MaxAcceleration != 30 {
		t.Fatal("null must not overwrite inherited values")
	}
}

func TestRank3TableFromJSON(t *testing.T) {
	overlays, err := ParseConfig([]byte(`[{
		"vehicle": {"drag_coeff": {
			"x": ["mach_number", [0, 1]],
			"y": ["alpha", [-1, 1]],
			"z": ["altitude", [0, 10]],
			"data": [[[1, 2], [3, 4]], [[5, 6], [7, 8]]]
		}}
	}]`))
	if err != nil {
		t.Fatal(err)
	}
	table, err := overlays[0].Vehicle.DragCoeff.table()
	if err != nil {
		t.Fatal(err)
	}
	if table.Rank() != 3 {
		t.Fatalf("rank: %d", table.Rank())
	}
	s := newState()
	s.MachNumber = 0.5
	s.Alpha = 0
	s.Altitude = 5
	if got := table.Lookup(&s); got != 4.5 {
		t.Fatalf("trilinear midpoint: %f", got)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	os.Unsetenv("POST_SETTINGS")
	s := LoadSettings()
	if s.MaxSteps != DefaultMaxSteps || s.EventTolerance != DefaultEventTolerance {
		t.Fatalf("defaults: %+v", s)
	}
}
