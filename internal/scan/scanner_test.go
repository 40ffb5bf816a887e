package scan

import (
	"bytes"
	"testing"

	"github.com/Froscht/ProfoundVifReader/internal/testutil"
)

func collect(t *testing.T, data []byte) []Candidate {
	t.Helper()
	sc := New(bytes.NewReader(data))
	var out []Candidate
	for sc.Scan() {
		out = append(out, sc.Candidate())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return out
}

func validRecord(day byte) []byte {
	return testutil.RecordSpec{Day: day, Month: 3, YearYY: 24, Hour: 14, Minute: 30}.Build()
}

func TestScanBackToBack(t *testing.T) {
	stream := append(validRecord(15), validRecord(16)...)
	got := collect(t, stream)
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[0].Offset != 0 || got[1].Offset != 68 {
		t.Fatalf("offsets = %d, %d", got[0].Offset, got[1].Offset)
	}
	if got[0].ReadType != ReadTypeNormal {
		t.Errorf("first read type = %d (delta 68 is normal cadence)", got[0].ReadType)
	}
	if got[1].ReadType != ReadTypeNormal {
		t.Errorf("flushed read type = %d, want forced normal", got[1].ReadType)
	}
}

func TestScanResyncAcrossNoise(t *testing.T) {
	recA, recB := validRecord(15), validRecord(16)
	clean := append(append([]byte{}, recA...), recB...)
	noisy := append([]byte("!!junk??"), clean...)
	noisy = append(noisy, []byte("trailing garbage")...)

	want := collect(t, clean)
	got := collect(t, noisy)
	if len(got) != len(want) {
		t.Fatalf("candidates = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Data != want[i].Data {
			t.Errorf("candidate %d bytes differ under noise", i)
		}
		if got[i].ReadType != want[i].ReadType {
			t.Errorf("candidate %d read type = %d, want %d", i, got[i].ReadType, want[i].ReadType)
		}
	}
	if got[0].Offset != 8 {
		t.Errorf("first offset = %d, want 8", got[0].Offset)
	}
}

func TestScanOneBehindEmission(t *testing.T) {
	// Three markers: two read types measured from deltas, the last forced.
	stream := append(validRecord(15), validRecord(16)...)
	stream = append(stream, 0xEE, 0xEE) // stretch the second delta to 70
	stream = append(stream, validRecord(17)...)

	got := collect(t, stream)
	if len(got) != 3 {
		t.Fatalf("candidates = %d, want 3", len(got))
	}
	if got[0].ReadType != ReadTypeNormal {
		t.Errorf("first read type = %d", got[0].ReadType)
	}
	if got[1].ReadType != ReadTypeIrregular {
		t.Errorf("second read type = %d, want irregular for delta 70", got[1].ReadType)
	}
	if got[2].ReadType != ReadTypeNormal {
		t.Errorf("final read type = %d, want forced normal", got[2].ReadType)
	}
}

func TestScanIrregularDeltas(t *testing.T) {
	for _, pad := range []int{1, 68} { // deltas 69 and 136
		stream := append(validRecord(15), make([]byte, pad)...)
		stream = append(stream, validRecord(16)...)
		got := collect(t, stream)
		if len(got) != 2 {
			t.Fatalf("pad %d: candidates = %d", pad, len(got))
		}
		if got[0].ReadType != ReadTypeIrregular {
			t.Errorf("pad %d: read type = %d, want irregular", pad, got[0].ReadType)
		}
	}
}

func TestScanShortDeclaredSize(t *testing.T) {
	// A 12-byte stub with declared size 67 puts the next marker 67 bytes in.
	stub := make([]byte, 67)
	copy(stub, "VIB")
	stub[3] = 0x88
	stub[4] = 67
	got := collect(t, append(stub, validRecord(16)...))
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[0].ReadType != ReadTypeIrregular {
		t.Errorf("delta 67 read type = %d, want irregular", got[0].ReadType)
	}
}

func TestScanForwardProgressOnZeroSize(t *testing.T) {
	// Corrupt zero size still advances by the minimum header length.
	stub := make([]byte, 12)
	copy(stub, "VIB")
	stub[3] = 0x88
	got := collect(t, append(stub, validRecord(16)...))
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[1].Offset != 12 {
		t.Errorf("second offset = %d, want 12", got[1].Offset)
	}
	if got[0].ReadType != ReadTypeIrregular {
		t.Errorf("delta 12 read type = %d, want irregular", got[0].ReadType)
	}
}

func TestScanDropsTruncatedTail(t *testing.T) {
	stream := append(validRecord(15), []byte("VIB\x88\x44")...) // 5 trailing bytes
	sc := New(bytes.NewReader(stream))
	var got []Candidate
	for sc.Scan() {
		got = append(got, sc.Candidate())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1 (truncated tail dropped)", len(got))
	}
	if sc.Total() != 1 {
		t.Errorf("total = %d, want 1", sc.Total())
	}
	if got[0].ReadType != ReadTypeNormal {
		t.Errorf("flushed read type = %d", got[0].ReadType)
	}
}

func TestScanDropsPartialBody(t *testing.T) {
	// Full header but the declared body is cut off mid-record.
	stream := append(validRecord(15), validRecord(16)[:30]...)
	got := collect(t, stream)
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
}

func TestScanWindowGrowthAndCompaction(t *testing.T) {
	// A tiny window forces repeated compaction and geometric growth.
	stream := append([]byte("noise"), validRecord(15)...)
	stream = append(stream, validRecord(16)...)
	stream = append(stream, validRecord(17)...)
	sc := &Scanner{r: bytes.NewReader(stream), window: make([]byte, 16)}
	var got []Candidate
	for sc.Scan() {
		got = append(got, sc.Candidate())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("candidates = %d, want 3", len(got))
	}
	for i, want := range []int64{5, 73, 141} {
		if got[i].Offset != want {
			t.Errorf("offset %d = %d, want %d", i, got[i].Offset, want)
		}
	}
	if len(sc.window) <= 16 {
		t.Errorf("window did not grow, still %d bytes", len(sc.window))
	}
}

func TestScanZeroPadsCandidate(t *testing.T) {
	got := collect(t, validRecord(15))
	if len(got) != 1 {
		t.Fatalf("candidates = %d", len(got))
	}
	data := got[0].Data
	if data[68] != 0 || data[69] != 0 {
		t.Errorf("padding bytes not zeroed: %v", data[68:])
	}
	if data[0] != 'V' || data[9] != 15 {
		t.Errorf("candidate bytes corrupted: %v", data[:12])
	}
}
