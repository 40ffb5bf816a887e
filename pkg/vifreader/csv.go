package vifreader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Froscht/ProfoundVifReader/internal/record"
	"github.com/Froscht/ProfoundVifReader/internal/variant"
)

// Decoded field values never contain quotes or commas, so rows are assembled
// by plain quoting without any escaping.

func writeRow(w io.Writer, d record.Decoded, opts Options) error {
	fields := make([]string, 0, 40)
	fields = append(fields, d.Header.Date(), d.Header.Time())
	if opts.Counter {
		fields = append(fields, d.Counter)
	}
	fields = append(fields, d.State, d.Velocity)
	for _, axis := range d.Axes {
		fields = append(fields,
			axis.State, axis.V, axis.Secondary, axis.FT,
			axis.U, axis.A, axis.CV, axis.CF)
	}
	fields = append(fields,
		d.Temperature,
		d.Voltage,
		strconv.Itoa(d.MemoryUse),
		strconv.Itoa(d.USBPowered),
		d.SignalStrength,
		d.SignalQuality,
		strconv.Itoa(d.Transmitted),
		strconv.Itoa(d.AllTransmitted),
		d.PeakCategory,
		d.Code,
		strconv.Itoa(d.ErrorCode),
		d.Geophone,
		strconv.Itoa(d.ClockChanged),
	)

	var b strings.Builder
	b.Grow(len(fields) * 8)
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func headerNames(opts Options, v variant.Variant) string {
	var b strings.Builder
	b.WriteString(`"date","time",`)
	if opts.Counter {
		b.WriteString(`"counter",`)
	}
	b.WriteString(`"state","|v|",`)
	for _, axis := range []string{"x", "y", "z"} {
		fmt.Fprintf(&b, `"state(%s)","v(%s)",`, axis, axis)
		fmt.Fprintf(&b, `"%s(%s)",`, v.AxisLabel(), axis)
		fmt.Fprintf(&b, `"f_ft(%s)","u(%s)","a(%s)","v_cat(%s)","f_cat(%s)",`,
			axis, axis, axis, axis, axis)
	}
	b.WriteString(`"temperature","battery","memory use","usb powered",`)
	b.WriteString(`"signal strength","signal quality","transmitted","all transmitted",`)
	b.WriteString(`"peak type","code","error code","geophone","clock changed",`)
	return strings.TrimSuffix(b.String(), ",")
}

func headerUnits(opts Options) string {
	var b strings.Builder
	b.WriteString(`"YYYY-MM-DD","hh:mm:ss",`)
	if opts.Counter {
		b.WriteString(`"count",`)
	}
	b.WriteString(`"","mm/s",`)
	for i := 0; i < 3; i++ {
		b.WriteString(`"","mm/s","Hz","Hz","mm","m/s2","mm/s","Hz",`)
	}
	b.WriteString(`"°C","V","%","",`)
	b.WriteString(`"dBm","","","",`)
	b.WriteString(`"","","","","",`)
	return strings.TrimSuffix(b.String(), ",")
}
