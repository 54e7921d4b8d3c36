package export

import "strconv"

// fixedValueWidth is the column width of fixed-format MPS value fields.
const fixedValueWidth = 12

// fitFixedValue renders v with the largest precision whose text fits the
// fixed value field. Extreme magnitudes lose significant digits; that is the
// documented cost of fixed format.
func fitFixedValue(v float64) string {
	precision := fixedValueWidth
	s := strconv.FormatFloat(v, 'G', precision, 64)
	for len(s) > fixedValueWidth && precision > 1 {
		precision--
		s = strconv.FormatFloat(v, 'G', precision, 64)
	}
	return s
}
