package standard

import (
	"github.com/Froscht/ProfoundVifReader/internal/record"
	"github.com/Froscht/ProfoundVifReader/internal/variant"
)

func init() {
	variant.Register(record.TypeStandard, Variant{})
}

// Variant decodes standard records, whose secondary axis field is a
// zero-crossing period.
type Variant struct{}

// Name returns the canonical variant name.
func (Variant) Name() string { return "standard" }

// AxisLabel returns the header label of the secondary metric column.
func (Variant) AxisLabel() string { return "f_zc" }

// Decode converts a zero-crossing period into a frequency. Non-positive
// periods carry no measurement and render empty.
func (Variant) Decode(raw int16, long bool) string {
	if raw <= 0 {
		return ""
	}
	decimals := 2
	if long {
		decimals = 4
	}
	return record.FormatFixedOdd(1024.0/float64(raw), decimals)
}
