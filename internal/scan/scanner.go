package scan

import (
	"io"

	"github.com/Froscht/ProfoundVifReader/internal/record"
)

const (
	chunkSize      = 256 * 1024
	minRecordBytes = 12

	// Read types derived from the spacing between consecutive candidates.
	// A normal cadence is exactly one record length; anything else marks
	// the predecessor as irregular. The final candidate has no successor
	// to measure against and is flushed with the normal cadence.
	ReadTypeNormal    = 2
	ReadTypeIrregular = 5
)

var marker = [3]byte{'V', 'I', 'B'}

// Candidate is one plausible record located in the stream, zero-padded to
// the holding-buffer size.
type Candidate struct {
	Data     [record.BufferSize]byte
	Offset   int64
	Size     uint16
	ReadType int
}

// Scanner locates record candidates in a byte stream, resynchronizing on the
// literal marker so noise, truncation and corrupt size fields cannot derail
// framing. Candidates are emitted one behind discovery: a record's read type
// depends on where its successor starts.
type Scanner struct {
	r       io.Reader
	window  []byte
	length  int   // valid bytes in window
	cursor  int   // next unscanned index
	base    int64 // absolute stream offset of window[0]
	pending *Candidate
	current Candidate
	done    bool
	err     error
	total   int
}

// New returns a Scanner reading from r.
func New(r io.Reader) *Scanner {
	return &Scanner{r: r, window: make([]byte, chunkSize*2)}
}

// Scan advances to the next emittable candidate. It returns false at stream
// end or on a read error; call Err to distinguish.
func (s *Scanner) Scan() bool {
	for !s.done {
		if !s.ensure(s.cursor + 3) {
			s.done = true
			break
		}

		i := s.cursor
		for i+2 < s.length {
			if s.window[i] == marker[0] && s.window[i+1] == marker[1] && s.window[i+2] == marker[2] {
				break
			}
			i++
		}
		if i+2 >= s.length {
			// Marker not found; keep the unscanned tail and refill.
			s.cursor = i
			continue
		}

		// The window may shift while pulling the record body, so pin the
		// candidate by absolute offset and re-derive its index afterwards.
		abs := s.base + int64(i)
		if !s.ensure(i + minRecordBytes) {
			s.done = true
			break
		}
		i = int(abs - s.base)

		size := uint16(s.window[i+4]) | uint16(s.window[i+5])<<8
		advance := int(size)
		if advance < minRecordBytes {
			advance = minRecordBytes
		}
		if !s.ensure(i + advance) {
			s.done = true
			break
		}
		i = int(abs - s.base)

		s.total++
		var next Candidate
		copyLen := advance
		if copyLen > record.BufferSize {
			copyLen = record.BufferSize
		}
		copy(next.Data[:], s.window[i:i+copyLen])
		next.Offset = abs
		next.Size = size
		s.cursor = i + advance

		if s.pending != nil {
			prev := *s.pending
			prev.ReadType = readTypeFromDelta(abs - prev.Offset)
			s.pending = &next
			s.current = prev
			return true
		}
		s.pending = &next
	}

	if s.err == nil && s.pending != nil {
		prev := *s.pending
		prev.ReadType = ReadTypeNormal
		s.pending = nil
		s.current = prev
		return true
	}
	return false
}

// Candidate returns the candidate located by the last successful Scan.
func (s *Scanner) Candidate() Candidate { return s.current }

// Err returns the first read error other than end of stream.
func (s *Scanner) Err() error { return s.err }

// Total returns how many candidates the scanner has located, including ones
// later rejected downstream.
func (s *Scanner) Total() int { return s.total }

func readTypeFromDelta(delta int64) int {
	if delta == record.ExpectedSize {
		return ReadTypeNormal
	}
	return ReadTypeIrregular
}

// ensure makes the window hold at least required valid bytes, compacting the
// consumed prefix before growing so steady-state memory stays bounded to the
// unresolved backlog. It returns false when the source runs out first.
func (s *Scanner) ensure(required int) bool {
	for required > s.length {
		if s.cursor > 0 {
			shift := s.cursor
			remaining := s.length - shift
			if remaining > 0 {
				copy(s.window, s.window[shift:s.length])
			}
			s.base += int64(shift)
			s.length = remaining
			s.cursor = 0
			required -= shift
		}
		if s.length == len(s.window) {
			size := len(s.window) * 2
			for size < required {
				size *= 2
			}
			bigger := make([]byte, size)
			copy(bigger, s.window[:s.length])
			s.window = bigger
		}
		n, err := s.r.Read(s.window[s.length:])
		s.length += n
		if err != nil {
			if err != io.EOF {
				s.err = err
				return false
			}
			if n == 0 {
				return s.length >= required
			}
		}
	}
	return true
}
