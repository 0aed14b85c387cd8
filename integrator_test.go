package post

import (
	"math"
	"testing"
)

// The test problem has the closed-form solution
//   x = 1/3 t^3 + t^2 + t - 0.5 e^t
//   y = t^2 + 2t + 1 - 0.5 e^t
// for x' = y, y' = y - t^2 + 1 with x(0) = -0.5, y(0) = 0.5.
func testSystem(t float64, s []float64) []float64 {
	return []float64{s[1], s[1] - t*t + 1}
}

func testSolution(t float64) []float64 {
	return []float64{
		1./3.*math.Pow(t, 3) + t*t + t - 0.5*math.Exp(t),
		t*t + 2*t + 1 - 0.5*math.Exp(t),
	}
}

func TestRK4(t *testing.T) {
	state := []float64{-0.5, 0.5}
	time := 0.
	h := 0.5

	avgErr := 0.
	steps := 0
	for time < 4 {
		state = rk4Step(testSystem, time, state, h)
		time += h
		steps++
		sol := testSolution(time)
		avgErr += math.Hypot(sol[0]-state[0], sol[1]-state[1])
	}
	avgErr /= float64(steps)
	if avgErr > 5e-2 {
		t.Fatalf("average error too large: %e", avgErr)
	}
}

func TestRK4SmallerStepsize(t *testing.T) {
	state := []float64{-0.5, 0.5}
	time := 0.
	h := 0.1

	avgErr := 0.
	steps := 0
	for time < 4 {
		state = rk4Step(testSystem, time, state, h)
		time += h
		steps++
		sol := testSolution(time)
		avgErr += math.Hypot(sol[0]-state[0], sol[1]-state[1])
	}
	avgErr /= float64(steps)
	if avgErr > 5e-5 {
		t.Fatalf("average error too large: %e", avgErr)
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	y := []float64{1, 2}
	rk4Step(testSystem, 0, y, 0.1)
	if y[0] != 1 || y[1] != 2 {
		t.Fatalf("input mutated: %+v", y)
	}
}
