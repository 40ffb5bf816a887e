package scan

import (
	"bytes"
	"testing"

	"github.com/Froscht/ProfoundVifReader/internal/record"
	"github.com/Froscht/ProfoundVifReader/internal/testutil"
)

func TestDetectExtended(t *testing.T) {
	standard := testutil.RecordSpec{Day: 15, Month: 3, YearYY: 24}.Build()
	extended := testutil.RecordSpec{Type: record.TypeExtended, Day: 15, Month: 3, YearYY: 24}.Build()

	cases := []struct {
		name   string
		stream []byte
		want   bool
	}{
		{"empty", nil, false},
		{"standard only", append(append([]byte{}, standard...), standard...), false},
		{"extended first", append(append([]byte{}, extended...), standard...), true},
		{"extended later", append(append([]byte{}, standard...), extended...), true},
		{"noise then extended", append([]byte("garbage"), extended...), true},
		{"truncated header", []byte("VIB\x8A"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectExtended(bytes.NewReader(tc.stream))
			if err != nil {
				t.Fatalf("DetectExtended: %v", err)
			}
			if got != tc.want {
				t.Fatalf("DetectExtended = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectExtendedSkipsPayload(t *testing.T) {
	// An extended-looking marker inside a standard record's payload must be
	// skipped via the declared size, not mistaken for a record header.
	standard := testutil.RecordSpec{Day: 15, Month: 3, YearYY: 24}.Build()
	copy(standard[20:], []byte{'V', 'I', 'B', record.TypeExtended})

	got, err := DetectExtended(bytes.NewReader(standard))
	if err != nil {
		t.Fatalf("DetectExtended: %v", err)
	}
	if got {
		t.Fatal("DetectExtended = true for marker bytes inside a payload")
	}
}
