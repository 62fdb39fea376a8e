package jackpot

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source is the random capability the engine draws from. *rand.Rand
// satisfies it.
type Source interface {
	Intn(n int) int
}

// lockedSource makes a *rand.Rand safe to share between event goroutines.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewSource returns a goroutine-safe source seeded from crypto/rand.
func NewSource() Source {
	var b [8]byte
	seed := int64(0)
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewSeededSource returns a deterministic source.
func NewSeededSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func pick[T any](src Source, pool []T) T {
	return pool[src.Intn(len(pool))]
}
