package fixtures

import (
	"math/rand"
	"time"
)

// OrderProvider abstracts the shuffling used for elimination seeding and
// group partitioning. No permutation is guaranteed; tests inject a fixed
// order to pin bracket shapes down.
type OrderProvider interface {
	Shuffle(n int, swap func(i, j int))
}

type randomOrder struct {
	rnd *rand.Rand
}

func NewRandomOrder() OrderProvider {
	return &randomOrder{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (o *randomOrder) Shuffle(n int, swap func(i, j int)) {
	o.rnd.Shuffle(n, swap)
}

type identityOrder struct{}

// IdentityOrder keeps the input order untouched.
func IdentityOrder() OrderProvider {
	return identityOrder{}
}

func (identityOrder) Shuffle(int, func(i, j int)) {}
