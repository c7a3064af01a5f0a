package fixtures

import (
	"context"
	"fmt"
	"math"

	"github.com/Dastan11/league-fixtures/models"
)

type SingleEliminationGenerator struct {
	order OrderProvider
}

func NewSingleEliminationGenerator(order OrderProvider) Generator {
	return &SingleEliminationGenerator{order: order}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate builds the full knockout bracket for n teams: ceil(log2(n))
// rounds over a 2^rounds slot grid, the shortfall filled with byes. Every
// node is created up front, then wired to its successor; bye occupants are
// pushed into their next-round slot at generation time so no phantom match
// ever needs a result.
func (g *SingleEliminationGenerator) Generate(ctx context.Context, params GenerateParams) ([]*GeneratedMatch, error) {
	regs := params.Registrations
	n := len(regs)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d, min 2 required", ErrNotEnoughTeams, n)
	}

	seeded := make([]*models.TeamRegistration, n)
	copy(seeded, regs)
	g.order.Shuffle(n, func(i, j int) {
		seeded[i], seeded[j] = seeded[j], seeded[i]
	})

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	slots := 1 << uint(numRounds)
	byes := slots - n

	// Round r (1-based) holds 2^(numRounds-r) matches; roundBase[r] is the
	// arena index of its first match.
	roundBase := make([]int, numRounds+2)
	total := 0
	for r := 1; r <= numRounds; r++ {
		roundBase[r] = total
		total += 1 << uint(numRounds-r)
	}
	roundBase[numRounds+1] = total

	matches := make([]*GeneratedMatch, total)
	for r := 1; r <= numRounds; r++ {
		count := 1 << uint(numRounds-r)
		for pos := 0; pos < count; pos++ {
			idx := roundBase[r] + pos
			m := &GeneratedMatch{
				Round:       r,
				MatchNumber: idx + 1,
			}
			if r < numRounds {
				next := roundBase[r+1] + pos/2
				m.NextIndex = &next
				m.HomeSlotNext = pos%2 == 0
			}
			matches[idx] = m
		}
	}

	// Seed round one: the first `byes` matches take a single team and
	// advance it immediately, the rest take two teams each.
	teamIdx := 0
	firstRoundCount := slots / 2
	for pos := 0; pos < firstRoundCount; pos++ {
		m := matches[roundBase[1]+pos]
		id := seeded[teamIdx].ID
		teamIdx++
		m.HomeRegistrationID = &id

		if pos < byes {
			advanceInto(matches, m, id)
			continue
		}
		awayID := seeded[teamIdx].ID
		teamIdx++
		m.AwayRegistrationID = &awayID
	}

	return matches, nil
}

// advanceInto places a bye winner in the proper slot of its next match.
func advanceInto(matches []*GeneratedMatch, m *GeneratedMatch, registrationID int) {
	if m.NextIndex == nil {
		return
	}
	next := matches[*m.NextIndex]
	id := registrationID
	if m.HomeSlotNext {
		next.HomeRegistrationID = &id
	} else {
		next.AwayRegistrationID = &id
	}
}
