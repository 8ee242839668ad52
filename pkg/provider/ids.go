package provider

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator produces request identifiers. Implementations must be safe
// for concurrent use.
type IDGenerator interface {
	NewID(prefix string) string
}

// ULIDGenerator yields prefix_ULID identifiers. Entropy is monotonic within
// a millisecond, so identifiers from one generator never collide.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

func (g *ULIDGenerator) NewID(prefix string) string {
	g.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
	g.mu.Unlock()

	if prefix == "" {
		return id.String()
	}
	return prefix + "_" + id.String()
}

// SequenceGenerator yields prefix_000001, prefix_000002, ... and is meant
// for deterministic tests.
type SequenceGenerator struct {
	mu sync.Mutex
	n  uint64
}

func (g *SequenceGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s_%06d", prefix, g.n)
}
