package scan

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/Froscht/ProfoundVifReader/internal/record"
)

// DetectExtended makes a lightweight pass over the whole stream looking for
// any record with the extended type byte. The result selects header column
// semantics for the entire file, so it runs ahead of, and independent from,
// the main Scanner.
func DetectExtended(r io.Reader) (bool, error) {
	br := bufio.NewReaderSize(r, chunkSize)
	var head [minRecordBytes]byte
	state := 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch {
		case state == 0 && b == marker[0]:
			state = 1
		case state == 1 && b == marker[1]:
			state = 2
		case state == 2 && b == marker[2]:
			if _, err := io.ReadFull(br, head[3:]); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return false, nil
				}
				return false, err
			}
			if head[3] == record.TypeExtended {
				return true, nil
			}
			size := int(binary.LittleEndian.Uint16(head[4:6]))
			if remaining := size - minRecordBytes; remaining > 0 {
				if _, err := br.Discard(remaining); err != nil {
					if errors.Is(err, io.EOF) {
						return false, nil
					}
					return false, err
				}
			}
			state = 0
		default:
			state = 0
		}
	}
}
