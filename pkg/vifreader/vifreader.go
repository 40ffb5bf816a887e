package vifreader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Froscht/ProfoundVifReader/internal/input"
	"github.com/Froscht/ProfoundVifReader/internal/options"
	"github.com/Froscht/ProfoundVifReader/internal/record"
	"github.com/Froscht/ProfoundVifReader/internal/scan"
	"github.com/Froscht/ProfoundVifReader/internal/variant"
	_ "github.com/Froscht/ProfoundVifReader/internal/variant/extended" // register variant
	_ "github.com/Froscht/ProfoundVifReader/internal/variant/standard" // register variant
)

const dateLayout = "2006-01-02"

// Options configures one decode pass.
type Options struct {
	// Header emits the two-line column header ahead of the data rows.
	Header bool
	// Counter includes the running counter column.
	Counter bool
	// TodayOnly keeps only records dated today (per the context clock).
	TodayOnly bool
	// LongFormat widens numeric output to four decimal places.
	LongFormat bool
	// DateFilter keeps only records from the given day, accepted as
	// YYYY-MM-DD or YY-MM-DD. Empty disables the filter.
	DateFilter string
}

// Result captures the outcome of one decode pass.
type Result struct {
	Processed int
	Skipped   int
	Total     int // candidates the scanner located, accepted or not
	Extended  bool
}

// String renders a one-line summary of the result.
func (r Result) String() string {
	mode := "standard"
	if r.Extended {
		mode = "extended"
	}
	return fmt.Sprintf("processed %d, skipped %d of %d candidates (%s mode)",
		r.Processed, r.Skipped, r.Total, mode)
}

// ProcessFile decodes one VIB log file into w. An unreadable path is a hard
// error; the caller decides whether remaining files continue.
func ProcessFile(ctx context.Context, path string, w io.Writer, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	src, err := input.NewReadSeeker(f)
	if err != nil {
		return Result{}, fmt.Errorf("read %q: %w", path, err)
	}
	return Process(ctx, src, w, opts)
}

// Process decodes the VIB byte stream from r into CSV rows on w. The source
// is read twice: a pre-scan fixes the record variant for the whole file,
// then the main pass scans, validates and decodes.
func Process(ctx context.Context, r io.ReadSeeker, w io.Writer, opts Options) (Result, error) {
	dateFilter, err := options.ParseDateFilter(opts.DateFilter)
	if err != nil {
		return Result{}, err
	}

	extended, err := scan.DetectExtended(r)
	if err != nil {
		return Result{}, fmt.Errorf("mode pre-scan: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("rewind after pre-scan: %w", err)
	}
	v, err := variant.Lookup(extended)
	if err != nil {
		return Result{}, err
	}

	result := Result{Extended: extended}

	if opts.Header {
		if _, err := io.WriteString(w, headerNames(opts, v)+"\n"); err != nil {
			return result, err
		}
		if _, err := io.WriteString(w, headerUnits(opts)+"\n"); err != nil {
			return result, err
		}
	}

	var today string
	if opts.TodayOnly {
		today = options.ReferenceTime(ctx).Format(dateLayout)
	}

	sc := scan.New(r)
	for sc.Scan() {
		c := sc.Candidate()
		h, err := record.Parse(c.Data[:], c.ReadType)
		if err != nil {
			result.Skipped++
			continue
		}
		date := h.Date()
		if opts.TodayOnly {
			if date != today {
				result.Skipped++
				continue
			}
		} else if dateFilter != "" && date != dateFilter {
			result.Skipped++
			continue
		}
		d := record.Decode(c.Data[:], h, opts.LongFormat, v)
		if err := writeRow(w, d, opts); err != nil {
			return result, err
		}
		result.Processed++
	}
	result.Total = sc.Total()
	if err := sc.Err(); err != nil {
		return result, fmt.Errorf("scan input: %w", err)
	}
	return result, nil
}
