package post

// rk4Step advances the 7-dim primary state vector by one fixed step of the
// classic explicit Runge-Kutta 4. The derivative closure owns all physics;
// the stepper makes no decisions.
func rk4Step(f func(t float64, y []float64) []float64, t float64, y []float64, h float64) []float64 {
	k1 := f(t, y)
	k2 := f(t+h/2, axpy(h/2, k1, y))
	k3 := f(t+h/2, axpy(h/2, k2, y))
	k4 := f(t+h, axpy(h, k3, y))

	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

// axpy returns y + a*x without touching its inputs.
func axpy(a float64, x, y []float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + a*x[i]
	}
	return out
}
