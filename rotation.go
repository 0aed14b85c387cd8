package post

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// MxM33 multiplies two 3x3 matrices.
func MxM33(a, b *mat64.Dense) *mat64.Dense {
	var r mat64.Dense
	r.Mul(a, b)
	return &r
}

// transpose33 returns the transpose, which inverts an orthonormal rotation.
func transpose33(m *mat64.Dense) *mat64.Dense {
	var r mat64.Dense
	r.Clone(m.T())
	return &r
}

// InertialToLaunch returns the rotation from the inertial frame to the launch
// frame for the given geocentric latitude, longitude and launch azimuth.
// The launch frame X axis points along the local radial at the launch point,
// Z toward the pole rotated by the azimuth; it does not co-rotate.
func InertialToLaunch(lat, long, az float64) *mat64.Dense {
	sLat, cLat := math.Sincos(lat)
	sLong, cLong := math.Sincos(long)
	sAz, cAz := math.Sincos(az)
	return mat64.NewDense(3, 3, []float64{
		cLat * cLong, cLat * sLong, sLat,
		sLat*cLong*sAz - cAz*sLong, cAz*cLong + sAz*sLat*sLong, -sAz * cLat,
		-sAz*sLong - cAz*sLat*cLong, sAz*cLong - cAz*sLat*sLong, cAz * cLat,
	})
}

// LaunchToBody returns the rotation from the launch frame to the body frame
// for the given Euler angles in radians, applied in roll-yaw-pitch order.
func LaunchToBody(roll, yaw, pitch float64) *mat64.Dense {
	return MxM33(R2(pitch), MxM33(R3(yaw), R1(roll)))
}
