package record

import (
	"fmt"
	"strconv"
)

// Record framing constants. Every decodable record is exactly 68 bytes on
// the wire; candidates are handed over zero-padded to 70 bytes.
const (
	ExpectedSize = 68
	BufferSize   = 70

	TypeStandard byte = 0x88
	TypeExtended byte = 0x8A

	typeMask byte = 0xFD
	typeBase byte = 0x88

	// Bit positions of the read types accepted for decoding (0, 2, 6).
	readTypeMask = 0x45
)

// Header carries the framing and timestamp fields of an accepted candidate.
type Header struct {
	Type   byte
	Size   uint16
	Second byte
	Minute byte
	Hour   byte
	Day    byte
	Month  byte
	YearYY byte
}

// Extended reports whether the record uses the extended ("KB") layout.
func (h Header) Extended() bool { return h.Type == TypeExtended }

// Date renders the record date as YYYY-MM-DD.
func (h Header) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", 2000+int(h.YearYY), h.Month, h.Day)
}

// Time renders the record time as hh:mm:ss.
func (h Header) Time() string {
	return fmt.Sprintf("%02d:%02d:%02d", h.Hour, h.Minute, h.Second)
}

// Parse validates a padded candidate against the read-type gate, the framing
// invariants and the calendar rules, and extracts its header. Any error means
// the candidate must be counted as skipped.
func Parse(buf []byte, readType int) (Header, error) {
	if len(buf) < ExpectedSize {
		return Header{}, fmt.Errorf("candidate too short: %d bytes", len(buf))
	}
	h := Header{
		Type:   buf[3],
		Size:   u16(buf, 4),
		Second: buf[6],
		Minute: buf[7],
		Hour:   buf[8],
		Day:    buf[9],
		Month:  buf[10],
		YearYY: buf[11],
	}
	if !validToProcess(h.Size, readType) {
		return Header{}, fmt.Errorf("read type %d with size %d rejected", readType, h.Size)
	}
	if h.Type&typeMask != typeBase {
		return Header{}, fmt.Errorf("unexpected record type 0x%02X", h.Type)
	}
	if h.Size != ExpectedSize {
		return Header{}, fmt.Errorf("unexpected record size %d", h.Size)
	}
	if !datetimeValid(h) {
		return Header{}, fmt.Errorf("invalid timestamp %02d-%02d-%02d %02d:%02d:%02d",
			h.YearYY, h.Month, h.Day, h.Hour, h.Minute, h.Second)
	}
	return h, nil
}

func validToProcess(size uint16, readType int) bool {
	return readType >= 0 && readType <= 9 &&
		size == ExpectedSize &&
		(1<<readType)&readTypeMask != 0
}

func datetimeValid(h Header) bool {
	if h.Second > 59 || h.Minute > 59 || h.Hour > 23 {
		return false
	}
	if h.YearYY > 99 {
		return false
	}
	if h.Month < 1 || h.Month > 12 {
		return false
	}
	return h.Day >= 1 && h.Day <= daysInMonth(h.Month, h.YearYY)
}

// daysInMonth applies the instrument's simplified leap rule: within the
// two-digit year domain 2000-2099 a plain mod-4 test is exact.
func daysInMonth(month, yearYY byte) byte {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if yearYY&3 == 0 {
			return 29
		}
		return 28
	}
}

// SecondaryMetric renders the mode-dependent per-axis column (zero-crossing
// frequency in standard records, KB in extended ones).
type SecondaryMetric interface {
	Decode(raw int16, long bool) string
}

// AxisSample holds the rendered values of one axis. When State is non-empty
// the axis faulted and every value field stays empty.
type AxisSample struct {
	State     string
	V         string
	Secondary string
	FT        string
	U         string
	A         string
	CV        string
	CF        string
}

// Decoded is one fully decoded and rendered record.
type Decoded struct {
	Header         Header
	Counter        string
	State          string
	Velocity       string
	Axes           [3]AxisSample
	Temperature    string
	Voltage        string
	MemoryUse      int
	USBPowered     int
	SignalStrength string
	SignalQuality  string
	Transmitted    int
	AllTransmitted int
	PeakCategory   string
	Code           string
	ErrorCode      int
	Geophone       string
	ClockChanged   int
}

// Axis block offsets within the record.
var axisOffsets = [3]int{14, 28, 42}

// Decode renders every field of a validated record. The buffer must hold the
// zero-padded candidate Parse accepted.
func Decode(buf []byte, h Header, long bool, metric SecondaryMetric) Decoded {
	d := Decoded{Header: h}

	if h.Size > 0x43 && len(buf) >= 67 {
		counter := int(buf[64]) | int(buf[65])<<8 | int(buf[66])<<16
		d.Counter = strconv.Itoa(counter)
	}

	var statuses [3]int64
	for i, off := range axisOffsets {
		statuses[i] = axisStatus(buf, off)
	}
	overall := overallStatus(statuses[0], statuses[1], statuses[2])
	d.State = StatusString(overall)
	if overall == StatusOK {
		d.Velocity = formatFloat16(u16(buf, 12), long)
	}

	for i, off := range axisOffsets {
		d.Axes[i] = decodeAxis(buf, off, long, metric, statuses[i])
	}

	tempDecimals, voltDecimals := 1, 2
	if long {
		tempDecimals, voltDecimals = 4, 4
	}
	d.Temperature = FormatFixedOdd(Temperature(buf[56]), tempDecimals)
	d.Voltage = FormatFixedOdd(Voltage(buf[57]), voltDecimals)

	d.MemoryUse = int(buf[58] & 0x7F)
	d.USBPowered = int(buf[58] >> 7)

	ss := buf[59] & 0x1F
	d.SignalStrength = signalStrength(ss)
	d.SignalQuality = SignalQuality(ss)
	d.Transmitted = bitSet(buf[59], 0x20)
	d.AllTransmitted = bitSet(buf[59], 0x40)

	d.PeakCategory = PeakCategory(buf[60] & 3)
	if buf[60]&4 != 0 {
		d.Code = "SBR"
	} else {
		d.Code = "DIN"
	}
	d.ErrorCode = int(buf[61])
	d.Geophone = GeophoneString(u16(buf, 62))
	d.ClockChanged = int(buf[60] >> 6)

	return d
}

func decodeAxis(buf []byte, off int, long bool, metric SecondaryMetric, status int64) AxisSample {
	if status != StatusOK {
		return AxisSample{State: StatusString(status)}
	}
	return AxisSample{
		V:         formatFloat16(u16(buf, off), long),
		Secondary: metric.Decode(i16(buf, off+2), long),
		FT:        formatInt16(i16(buf, off+4), long),
		U:         formatFloat16(u16(buf, off+6), long),
		A:         formatFloat16(u16(buf, off+8), long),
		CV:        formatFloat16(u16(buf, off+10), long),
		CF:        formatInt16(i16(buf, off+12), long),
	}
}

func bitSet(b, mask byte) int {
	if b&mask != 0 {
		return 1
	}
	return 0
}
