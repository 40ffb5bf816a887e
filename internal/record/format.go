package record

import (
	"math"
	"strconv"
)

// tieEpsilon bounds how far from an exact .5 a scaled fraction may sit and
// still count as a tie. The tolerance matters: values arriving through the
// float pipeline rarely hit .5 exactly.
const tieEpsilon = 1e-7

// FormatFixedOdd renders value with a fixed number of decimals, breaking
// exact .5 ties toward the odd neighbor. This matches the instrument
// vendor's reference output down to the last digit.
func FormatFixedOdd(value float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	scaled := value * scale
	sign := 1.0
	if scaled < 0 {
		sign = -1.0
	}
	abs := math.Abs(scaled)

	fl := math.Floor(abs)
	frac := abs - fl

	var rounded float64
	switch {
	case frac > 0.5+tieEpsilon:
		rounded = fl + 1
	case frac < 0.5-tieEpsilon:
		rounded = fl
	default:
		if int64(fl)%2 == 0 {
			rounded = fl + 1
		} else {
			rounded = fl
		}
	}

	rounded *= sign
	return strconv.FormatFloat(rounded/scale, 'f', decimals, 64)
}
