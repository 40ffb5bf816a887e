package record

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Decoded field values are scaled-down integers; these divisors restore the
// physical units.
const (
	float16Divisor = 1_000_000.0
	int16Divisor   = 2.0
)

// Status sentinels produced by the validity check. Values -1..-4 come straight
// from the instrument; the overload marker is synthesized locally.
const (
	StatusOK            int64 = 0
	StatusDisconnected  int64 = -1
	StatusDataInvalid   int64 = -2
	StatusNoData        int64 = -3
	StatusNotResponding int64 = -4
	StatusOverload      int64 = math.MaxInt64
)

const overloadLimit = 99_999_999

func u16(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

func i16(buf []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[off : off+2]))
}

// SVFromFloat16 expands the instrument's compact float encoding: a 5-bit
// exponent in the top bits and an 11-bit mantissa with an implicit leading
// one. Raw values whose exponent field is out of range pass through
// unchanged, which is how the status sentinels -1..-4 survive the decode.
func SVFromFloat16(raw int16) int64 {
	e := uint32(uint16(raw))>>11 - 1
	if e <= 0x13 {
		m := int64(raw)&0x7FF | 0x800
		return m << e
	}
	return int64(raw)
}

// svIsValueValid classifies a raw sample: 0 when plausible, the fault
// sentinel (-1..-4) when the raw value encodes one, StatusOverload when the
// expanded value exceeds the measurable range.
func svIsValueValid(raw uint16) int64 {
	e := uint32(raw)>>11 - 1
	if e > 0x13 {
		v := int64(int16(raw))
		if uint32(v) < 0xFFFFFFFC {
			return StatusOK
		}
		return v
	}
	m := uint32(raw) & 0x7FF
	m = m&0xFF | (m>>8|8)&0xFFFF<<8
	result := int64(m) << e
	if uint32(result+4) > 3 {
		if result <= overloadLimit {
			return StatusOK
		}
		return StatusOverload
	}
	return result
}

func isSpecialValue(v int64) bool {
	return v >= -4 && v <= -1
}

func isOverload(v int64) bool {
	return v > overloadLimit
}

// axisStatus tests the validity-bearing sub-fields of one axis block
// (velocity, displacement, acceleration, category velocity) and returns the
// first fault found.
func axisStatus(buf []byte, off int) int64 {
	s := svIsValueValid(u16(buf, off))
	if s == StatusOK {
		s = svIsValueValid(u16(buf, off+6))
	}
	if s == StatusOK {
		s = svIsValueValid(u16(buf, off+8))
	}
	if s == StatusOK {
		s = svIsValueValid(u16(buf, off+10))
	}
	return s
}

// overallStatus folds the three axis statuses: overload anywhere wins,
// otherwise the first faulting axis in x, y, z order.
func overallStatus(x, y, z int64) int64 {
	if x == StatusOverload || y == StatusOverload || z == StatusOverload {
		return StatusOverload
	}
	if x != StatusOK {
		return x
	}
	if y != StatusOK {
		return y
	}
	if z != StatusOK {
		return z
	}
	return StatusOK
}

// StatusString renders a status sentinel; OK renders empty.
func StatusString(status int64) string {
	switch status {
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusDataInvalid:
		return "DATA INVALID"
	case StatusNoData:
		return "NO DATA"
	case StatusNotResponding:
		return "NOT RESPONDING"
	case StatusOverload:
		return "OVERLOAD"
	default:
		return ""
	}
}

// formatFloat16 decodes a compact-float sample and renders it in physical
// units. Sentinels and overloads render empty.
func formatFloat16(raw uint16, long bool) string {
	iv := SVFromFloat16(int16(raw))
	if isSpecialValue(iv) || isOverload(iv) {
		return ""
	}
	decimals := 2
	if long {
		decimals = 4
	}
	return FormatFixedOdd(float64(iv)/float16Divisor, decimals)
}

// formatInt16 renders a half-unit fixed-point sample. Sentinels render empty.
func formatInt16(raw int16, long bool) string {
	if isSpecialValue(int64(raw)) {
		return ""
	}
	decimals := 1
	if long {
		decimals = 4
	}
	return FormatFixedOdd(float64(raw)/int16Divisor, decimals)
}

// GeophoneString decodes the sensor identifier: a type tag in the top two
// bits and a serial number in the low 14.
func GeophoneString(raw uint16) string {
	number := raw & 0x3FFF
	switch raw & 0xC000 {
	case 0x4000:
		return fmt.Sprintf("TDA%05d", number)
	case 0x8000:
		return fmt.Sprintf("TDS%05d", number)
	case 0xC000:
		return "???00000"
	default:
		return fmt.Sprintf("unknown%05d", number)
	}
}

// SignalQuality buckets the raw 5-bit signal strength.
func SignalQuality(raw byte) string {
	switch {
	case raw == 0:
		return "Unknown"
	case raw > 23:
		return "Excellent"
	case raw > 15:
		return "Good"
	case raw > 7:
		return "Low"
	default:
		return "Bad"
	}
}

// signalStrength renders the raw 5-bit strength as dBm; 0 means unknown and
// renders empty.
func signalStrength(raw byte) string {
	if raw == 0 {
		return ""
	}
	return strconv.Itoa(2*int(raw) - 113)
}

// PeakCategory maps the 2-bit peak type field. The default arm is
// unreachable for a 2-bit source but kept in case a wider variant appears.
func PeakCategory(peak byte) string {
	switch peak {
	case 0:
		return "vcatnone"
	case 1:
		return "vcat1"
	case 2:
		return "vcat2"
	case 3:
		return "vcat3"
	default:
		return "vcat"
	}
}

// Temperature converts the raw temperature byte to degrees Celsius.
func Temperature(raw byte) float64 {
	return float64(raw)*0.5 - 27.5
}

// Voltage converts the raw battery byte to volts.
func Voltage(raw byte) float64 {
	return float64(raw)*0.01 + 2.45
}
