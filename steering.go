package post

// SteeringPolynomial is an up-to-cubic polynomial in one state variable,
// giving one Euler angle in degrees.
type SteeringPolynomial struct {
	Variable StateVariable
	Coeffs   [4]float64
	// AnchorC0 marks that c0 was not given and is re-anchored at phase
	// start to the previous phase's terminal angle (zero for phase 0).
	AnchorC0 bool
}

func (p SteeringPolynomial) eval(s *State) float64 {
	y := p.Variable.Value(s)
	return p.Coeffs[0] + y*(p.Coeffs[1]+y*(p.Coeffs[2]+y*p.Coeffs[3]))
}

// Steering holds the three per-axis polynomials. A zero polynomial means no
// steering on that axis.
type Steering struct {
	Roll  SteeringPolynomial
	Yaw   SteeringPolynomial
	Pitch SteeringPolynomial
}

// NewSteering returns a Steering with all axes keyed on time and zero
// coefficients.
func NewSteering() Steering {
	return Steering{
		Roll:  SteeringPolynomial{Variable: VarTime, AnchorC0: true},
		Yaw:   SteeringPolynomial{Variable: VarTime, AnchorC0: true},
		Pitch: SteeringPolynomial{Variable: VarTime, AnchorC0: true},
	}
}

// Angles evaluates the three polynomials against the state. Degrees.
func (st Steering) Angles(s *State) (roll, yaw, pitch float64) {
	return st.Roll.eval(s), st.Yaw.eval(s), st.Pitch.eval(s)
}

// Anchor re-anchors the constant coefficients at a phase boundary so that
// the orientation is continuous. The previous angles are in degrees.
func (st *Steering) Anchor(prevRoll, prevYaw, prevPitch float64) {
	if st.Roll.AnchorC0 {
		st.Roll.Coeffs[0] = prevRoll
	}
	if st.Yaw.AnchorC0 {
		st.Yaw.Coeffs[0] = prevYaw
	}
	if st.Pitch.AnchorC0 {
		st.Pitch.Coeffs[0] = prevPitch
	}
}
