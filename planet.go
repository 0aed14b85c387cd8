package post

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// Planet defines the central body: ellipsoid, gravitational harmonics and
// rotation. The preset values below are from the 1970 POST formulation manual
// and are published in imperial units, hence the conversion factors.
type Planet struct {
	Name             string
	EquatorialRadius float64
	PolarRadius      float64
	// [mu, J2, J3, J4]
	GravitationalParameters [4]float64
	RotationRate            float64
}

// EarthSpherical is the symmetric, non-rotating Earth: central gravity only.
var EarthSpherical = Planet{"spherical", 2.0925741e7 * MeterPerFoot, 2.0925741e7 * MeterPerFoot,
	[4]float64{1.4076539e16 * CubicMeterPerCubicFoot, 0, 0, 0}, 0}

// EarthFisher1960 is the Fisher 1960 ellipsoid with the J2 zonal term.
var EarthFisher1960 = Planet{"fisher_1960", 2.0925741e7 * MeterPerFoot, 2.0855590e7 * MeterPerFoot,
	[4]float64{1.4076539e16 * CubicMeterPerCubicFoot, 1.0823e-3, 0, 0}, 7.29211e-5}

// EarthSmithsonian is the Smithsonian ellipsoid with J2 through J4.
var EarthSmithsonian = Planet{"smithsonian", 2.0925741e7 * MeterPerFoot, 2.0855590e7 * MeterPerFoot,
	[4]float64{1.407645794e16 * CubicMeterPerCubicFoot, 1.082639e-3, -2.565e-6, -1.608e-6}, 7.29211e-5}

// PlanetFromName returns the preset for a planet model tag.
func PlanetFromName(name string) (Planet, error) {
	switch name {
	case "spherical":
		return EarthSpherical, nil
	case "fisher_1960":
		return EarthFisher1960, nil
	case "smithsonian":
		return EarthSmithsonian, nil
	default:
		return Planet{}, newConfigError("undefined planet model %q", name)
	}
}

// Mu returns the gravitational parameter.
func (p Planet) Mu() float64 {
	return p.GravitationalParameters[0]
}

// Gravity returns the inertial gravitational acceleration at the given
// inertial position, including the J2..J4 zonal harmonics.
func (p Planet) Gravity(position []float64) []float64 {
	r := norm(position)
	R := p.EquatorialRadius / r
	Z := position[2] / r
	J := 3. / 2. * p.GravitationalParameters[1]
	H := 5. / 2. * p.GravitationalParameters[2]
	D := -35. / 8. * p.GravitationalParameters[3]
	P := 1. +
		J*R*R*(1.-5.*Z*Z) +
		H*R*R*R/r*(3.-7.*Z*Z)*position[2] +
		D*R*R*R*R*(9.*Z*Z*Z*Z-6.*Z*Z+3./7.)

	mu := p.Mu()
	r3 := r * r * r
	return []float64{
		-mu * position[0] / r3 * P,
		-mu * position[1] / r3 * P,
		-mu / r3 * ((1.+J*R*R*(3.-5.*Z*Z))*position[2] +
			H*R*R*R/r*(6.*position[2]*position[2]-
				7.*position[2]*position[2]*Z*Z-
				3./5.*r*r) +
			D*R*R*R*R*(15./7.-10.*Z*Z+9.*Z*Z*Z*Z)*position[2]),
	}
}

// GeodeticToInertial seeds phase 0 from a geodetic launch site. Angles in
// radians, altitude in meters above the ellipsoid. It returns the inertial
// position and velocity (at rest relative to the rotating planet) and the
// inertial-to-launch rotation.
func (p Planet) GeodeticToInertial(lat, long, alt, azimuth float64) (position, velocity []float64, il *mat64.Dense) {
	k := math.Pow(p.EquatorialRadius/p.PolarRadius, 2)
	geocentricLat := math.Atan(k * k * math.Tan(lat))

	surface := p.EquatorialRadius / math.Sqrt(1.+(k-1.)*math.Pow(math.Sin(geocentricLat), 2))

	sLat, cLat := math.Sincos(geocentricLat)
	sLong, cLong := math.Sincos(long)
	position = scale(surface+alt, []float64{cLat * cLong, cLat * sLong, sLat})

	// At rest on the pad: the inertial velocity is the pad's rotation.
	velocity = scale(-1, p.RelVelocity(position, []float64{0, 0, 0}))

	return position, velocity, InertialToLaunch(geocentricLat, long, azimuth)
}

// PositionPlanet rotates an inertial position into the Earth-rotating frame
// at simulation time t.
func (p Planet) PositionPlanet(position []float64, t float64) []float64 {
	return MxV33(R3(p.RotationRate*t), position)
}

// RelVelocity returns the planet-relative velocity, expressed in inertial
// axes.
func (p Planet) RelVelocity(position, velocity []float64) []float64 {
	return sub(velocity, cross([]float64{0, 0, p.RotationRate}, position))
}

// Altitude returns the geometric altitude above the ellipsoid. The spherical
// variant has a closed form; the oblate ones project onto the geodetic
// normal iteratively.
func (p Planet) Altitude(position []float64) float64 {
	if p.EquatorialRadius == p.PolarRadius {
		return norm(position) - p.EquatorialRadius
	}

	e2 := 1. - math.Pow(p.PolarRadius/p.EquatorialRadius, 2)
	rho := math.Hypot(position[0], position[1])
	z := position[2]
	if rho < 1 {
		return math.Abs(z) - p.PolarRadius
	}

	lat := math.Atan2(z, rho*(1.-e2))
	var alt float64
	for i := 0; i < 10; i++ {
		sLat := math.Sin(lat)
		n := p.EquatorialRadius / math.Sqrt(1.-e2*sLat*sLat)
		alt = rho/math.Cos(lat) - n
		newLat := math.Atan2(z, rho*(1.-e2*n/(n+alt)))
		if math.Abs(newLat-lat) < 1e-12 {
			break
		}
		lat = newLat
	}
	return alt
}

// GeopotentialAltitude converts geometric to geopotential altitude using the
// mean radius.
func (p Planet) GeopotentialAltitude(altitude float64) float64 {
	avgRadius := 0.5 * (p.EquatorialRadius + p.PolarRadius)
	return avgRadius * altitude / (avgRadius + altitude)
}
