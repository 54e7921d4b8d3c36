package mpmodel

// Stats summarizes a model for the exporters: variable classification counts
// and the zero-padding widths used when deriving names from indices.
type Stats struct {
	// BinaryCount is the number of variables with an effective {0, 1} domain.
	BinaryCount int

	// IntegerCount is the number of integral variables that are not binary.
	IntegerCount int

	// ContinuousCount is the number of non-integral variables.
	ContinuousCount int

	// VariableDigits is the decimal width of the largest variable index.
	VariableDigits int

	// ConstraintDigits is the decimal width of the largest constraint index.
	ConstraintDigits int
}

// ComputeStats classifies every variable in one pass. The three counts
// always sum to len(m.Variables).
func ComputeStats(m *Model) Stats {
	s := Stats{
		VariableDigits:   decimalDigits(len(m.Variables) - 1),
		ConstraintDigits: decimalDigits(len(m.Constraints) - 1),
	}
	for i := range m.Variables {
		switch v := &m.Variables[i]; {
		case v.IsBoolean():
			s.BinaryCount++
		case v.Integer:
			s.IntegerCount++
		default:
			s.ContinuousCount++
		}
	}
	return s
}

// decimalDigits returns the number of decimal digits of n. Anything below
// ten, including negative n, counts as one digit.
func decimalDigits(n int) int {
	digits := 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}
