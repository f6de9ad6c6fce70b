package absence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID is a 128-bit time-sortable record identifier (UUIDv7).
//
// IDs are comparable with ==; equality is bitwise.
type ID [16]byte

// NewID mints a fresh UUIDv7 identifier.
//
// Panics if the random source fails (should never happen in practice).
func NewID() ID {
	return ID(uuid.Must(uuid.NewV7()))
}

// ParseID parses the canonical hyphenated form of an identifier.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid absence id %q: %w", s, err)
	}
	return ID(u), nil
}

// String returns the canonical lowercase hyphenated form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the all-zero identifier.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Compare orders identifiers by their raw bytes, which is creation order.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Time returns the millisecond creation timestamp embedded in the identifier.
func (id ID) Time() time.Time {
	var ms [8]byte
	copy(ms[2:], id[:6])
	return time.UnixMilli(int64(binary.BigEndian.Uint64(ms[:])))
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	parsed, err := ParseID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IDGenerator mints record identifiers.
type IDGenerator interface {
	Generate() ID
}

// UUIDv7Generator generates identifiers with NewID.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 identifier.
func (UUIDv7Generator) Generate() ID {
	return NewID()
}

// FixedGenerator returns predetermined identifiers in order, for tests.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []ID
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...ID) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined identifier.
//
// Panics if all identifiers have been consumed.
func (g *FixedGenerator) Generate() ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
