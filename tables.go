package post

// Interpolated lookup tables for the aerodynamic coefficients. A table is a
// value type: axes keyed by state variables plus one flat data buffer indexed
// by stride, so copying a Phase copies its tables wholesale.

// TableAxis is one lookup dimension: the state variable providing the key and
// its sorted breakpoints.
type TableAxis struct {
	Variable    StateVariable
	Breakpoints []float64
}

// Table is a rank 0-3 piecewise-(multi)linear lookup table. Rank 0 is the
// well-formed empty table, which always returns 0.
type Table struct {
	axes []TableAxis
	data []float64 // flat, row-major: last axis varies fastest
}

// Rank returns the number of axes.
func (t Table) Rank() int {
	return len(t.axes)
}

// NewEmptyTable returns the rank-0 table (lookups return 0).
func NewEmptyTable() Table {
	return Table{}
}

// NewTable1D builds a rank-1 table.
func NewTable1D(x TableAxis, data []float64) (Table, error) {
	if err := validateAxis(x, len(data)); err != nil {
		return Table{}, err
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return Table{[]TableAxis{x}, buf}, nil
}

// NewTable2D builds a rank-2 table. data is indexed data[i][j] for x[i], y[j].
func NewTable2D(x, y TableAxis, data [][]float64) (Table, error) {
	if err := validateAxis(x, len(data)); err != nil {
		return Table{}, err
	}
	buf := make([]float64, 0, len(data)*len(y.Breakpoints))
	for _, row := range data {
		if err := validateAxis(y, len(row)); err != nil {
			return Table{}, err
		}
		buf = append(buf, row...)
	}
	return Table{[]TableAxis{x, y}, buf}, nil
}

// NewTable3D builds a rank-3 table. data is indexed data[i][j][k].
func NewTable3D(x, y, z TableAxis, data [][][]float64) (Table, error) {
	if err := validateAxis(x, len(data)); err != nil {
		return Table{}, err
	}
	buf := make([]float64, 0, len(data)*len(y.Breakpoints)*len(z.Breakpoints))
	for _, plane := range data {
		if err := validateAxis(y, len(plane)); err != nil {
			return Table{}, err
		}
		for _, row := range plane {
			if err := validateAxis(z, len(row)); err != nil {
				return Table{}, err
			}
			buf = append(buf, row...)
		}
	}
	return Table{[]TableAxis{x, y, z}, buf}, nil
}

func validateAxis(a TableAxis, dataLen int) error {
	if err := a.Variable.Validate(); err != nil {
		return err
	}
	if len(a.Breakpoints) == 0 {
		return newConfigError("table axis %q has no breakpoints", string(a.Variable))
	}
	for i := 1; i < len(a.Breakpoints); i++ {
		if a.Breakpoints[i-1] >= a.Breakpoints[i] {
			return newConfigError("table axis %q breakpoints are not strictly increasing", string(a.Variable))
		}
	}
	if dataLen != len(a.Breakpoints) {
		return newConfigError("table axis %q has %d breakpoints but %d data entries",
			string(a.Variable), len(a.Breakpoints), dataLen)
	}
	return nil
}

// bracket finds the interpolation cell and fraction for value v on the axis.
// Values outside the breakpoint range clamp to the nearest breakpoint.
func (a TableAxis) bracket(v float64) (idx int, frac float64) {
	bp := a.Breakpoints
	if len(bp) == 1 || v <= bp[0] {
		return 0, 0
	}
	if v >= bp[len(bp)-1] {
		return len(bp) - 2, 1
	}
	idx = 0
	for bp[idx+1] < v {
		idx++
	}
	return idx, (v - bp[idx]) / (bp[idx+1] - bp[idx])
}

// Lookup extracts each axis key from the state, clamps to the axis bounds and
// interpolates multilinearly.
func (t Table) Lookup(s *State) float64 {
	if len(t.axes) == 0 {
		return 0
	}

	idx := make([]int, len(t.axes))
	frac := make([]float64, len(t.axes))
	for i, ax := range t.axes {
		idx[i], frac[i] = ax.bracket(ax.Variable.Value(s))
	}

	// Strides of the flat buffer, last axis fastest.
	stride := make([]int, len(t.axes))
	stride[len(t.axes)-1] = 1
	for i := len(t.axes) - 2; i >= 0; i-- {
		stride[i] = stride[i+1] * len(t.axes[i+1].Breakpoints)
	}

	// Blend the 2^rank cell corners.
	var out float64
	for corner := 0; corner < 1<<uint(len(t.axes)); corner++ {
		weight := 1.0
		offset := 0
		for i := range t.axes {
			hi := corner>>uint(i)&1 == 1
			j := idx[i]
			if hi {
				weight *= frac[i]
				if len(t.axes[i].Breakpoints) > 1 {
					j++
				}
			} else {
				weight *= 1 - frac[i]
			}
			offset += j * stride[i]
		}
		if weight != 0 {
			out += weight * t.data[offset]
		}
	}
	return out
}
