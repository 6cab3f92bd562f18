package orders

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

const (
	minOrderNumber = 1000
	maxOrderNumber = 9999
)

// ErrNumbersExhausted means every 4-digit number has been issued in this
// process lifetime.
var ErrNumbersExhausted = errors.New("all order numbers exhausted")

// NumberGenerator issues random 4-digit order numbers, collision-checked
// against everything issued so far. Issuance is serialized; a number,
// once issued, is never reissued while the process runs.
type NumberGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	issued map[int]struct{}
}

func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		issued: make(map[int]struct{}),
	}
}

// Next returns a fresh unique number in [1000, 9999].
func (g *NumberGenerator) Next() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	span := maxOrderNumber - minOrderNumber + 1
	if len(g.issued) >= span {
		return 0, ErrNumbersExhausted
	}
	for {
		n := minOrderNumber + g.rng.Intn(span)
		if _, taken := g.issued[n]; !taken {
			g.issued[n] = struct{}{}
			return n, nil
		}
	}
}
