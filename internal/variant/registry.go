package variant

import (
	"fmt"
	"sync"

	"github.com/Froscht/ProfoundVifReader/internal/record"
)

// Variant decodes the pieces of a record that depend on its type byte: the
// mode-dependent per-axis metric and its header column label.
type Variant interface {
	Name() string
	AxisLabel() string
	Decode(raw int16, long bool) string
}

var (
	regMu    sync.RWMutex
	registry []registeredVariant
)

type registeredVariant struct {
	typeByte byte
	variant  Variant
}

// Register stores a type-byte/variant pair in memory.
func Register(typeByte byte, v Variant) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, registeredVariant{typeByte: typeByte, variant: v})
}

// Lookup returns the variant for the file mode the pre-scan determined.
func Lookup(extended bool) (Variant, error) {
	typeByte := record.TypeStandard
	if extended {
		typeByte = record.TypeExtended
	}
	regMu.RLock()
	defer regMu.RUnlock()
	for _, rv := range registry {
		if rv.typeByte == typeByte {
			return rv.variant, nil
		}
	}
	return nil, fmt.Errorf("variant not found for record type 0x%02X", typeByte)
}
