package testutil

import (
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LoadHex decodes a hex fixture from testdata relative to the repo root.
func LoadHex(t *testing.T, rel string) []byte {
	t.Helper()
	data := readTestdata(t, rel)
	clean := strings.Join(strings.Fields(string(data)), "")
	decoded, err := hex.DecodeString(clean)
	if err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
	return decoded
}

// LoadText returns a text fixture from testdata with line endings normalized.
func LoadText(t *testing.T, rel string) string {
	t.Helper()
	data := readTestdata(t, rel)
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}

// RecordSpec describes a synthetic VIB record for tests. Zero values yield a
// standard-type, correctly sized record full of valid zero samples.
type RecordSpec struct {
	Type        byte
	Size        uint16
	Second      byte
	Minute      byte
	Hour        byte
	Day         byte
	Month       byte
	YearYY      byte
	OverallV    uint16
	Axes        [3][7]uint16 // v, kb/zc, ft, u, a, cv, cf per axis
	Temperature byte
	Voltage     byte
	MemoryUSB   byte
	Signal      byte
	Flags       byte // peak type, code and clock-changed bits
	Error       byte
	Geophone    uint16
	Counter     uint32 // low 24 bits
}

// Build assembles the 68-byte wire form of the record.
func (s RecordSpec) Build() []byte {
	if s.Type == 0 {
		s.Type = 0x88
	}
	if s.Size == 0 {
		s.Size = 68
	}
	buf := make([]byte, 68)
	copy(buf, "VIB")
	buf[3] = s.Type
	binary.LittleEndian.PutUint16(buf[4:6], s.Size)
	buf[6] = s.Second
	buf[7] = s.Minute
	buf[8] = s.Hour
	buf[9] = s.Day
	buf[10] = s.Month
	buf[11] = s.YearYY
	binary.LittleEndian.PutUint16(buf[12:14], s.OverallV)
	for axis, fields := range s.Axes {
		off := 14 + axis*14
		for i, raw := range fields {
			binary.LittleEndian.PutUint16(buf[off+2*i:off+2*i+2], raw)
		}
	}
	buf[56] = s.Temperature
	buf[57] = s.Voltage
	buf[58] = s.MemoryUSB
	buf[59] = s.Signal
	buf[60] = s.Flags
	buf[61] = s.Error
	binary.LittleEndian.PutUint16(buf[62:64], s.Geophone)
	buf[64] = byte(s.Counter)
	buf[65] = byte(s.Counter >> 8)
	buf[66] = byte(s.Counter >> 16)
	return buf
}
