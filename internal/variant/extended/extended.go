package extended

import (
	"math"

	"github.com/Froscht/ProfoundVifReader/internal/record"
	"github.com/Froscht/ProfoundVifReader/internal/variant"
)

func init() {
	variant.Register(record.TypeExtended, Variant{})
}

// Variant decodes extended ("KB") records, whose secondary axis field holds
// a squared KB sample in the compact float encoding.
type Variant struct{}

// Name returns the canonical variant name.
func (Variant) Name() string { return "extended" }

// AxisLabel returns the header label of the secondary metric column.
func (Variant) AxisLabel() string { return "kb" }

// Decode expands the compact float, takes the square root and scales to
// physical units. Values at or below the noise floor clamp to zero.
func (Variant) Decode(raw int16, long bool) string {
	value := math.Sqrt(float64(record.SVFromFloat16(raw))) * 0.01
	if value <= 0.1 {
		value = 0.0
	}
	decimals := 2
	if long {
		decimals = 4
	}
	return record.FormatFixedOdd(value, decimals)
}
