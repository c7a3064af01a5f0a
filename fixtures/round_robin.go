package fixtures

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate pairs every team against every other team exactly once using the
// circle method: one slot stays fixed while the rest rotate each round. An
// odd team count gets a synthetic bye slot whose pairings are skipped.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateParams) ([]*GeneratedMatch, error) {
	regs := params.Registrations
	if len(regs) == 0 {
		return nil, fmt.Errorf("%w: found 0, min 2 required", ErrNotEnoughTeams)
	}
	if len(regs) == 1 {
		return []*GeneratedMatch{}, nil
	}

	ids := make([]*int, 0, len(regs)+1)
	for _, r := range regs {
		id := r.ID
		ids = append(ids, &id)
	}
	if len(ids)%2 != 0 {
		ids = append(ids, nil) // bye slot
	}

	rounds := len(ids) - 1
	matchesPerRound := len(ids) / 2

	matches := make([]*GeneratedMatch, 0, rounds*matchesPerRound)
	for round := 0; round < rounds; round++ {
		position := 0
		for i := 0; i < matchesPerRound; i++ {
			home := ids[i]
			away := ids[len(ids)-1-i]
			if home == nil || away == nil {
				continue // the bye absorbs this pairing
			}
			matches = append(matches, &GeneratedMatch{
				Round:              round + 1,
				MatchNumber:        round*matchesPerRound + position + 1,
				HomeRegistrationID: home,
				AwayRegistrationID: away,
			})
			position++
		}
		rotate(ids)
	}
	return matches, nil
}

// rotate keeps ids[0] fixed and moves every other slot one step clockwise.
func rotate(ids []*int) {
	last := ids[len(ids)-1]
	copy(ids[2:], ids[1:len(ids)-1])
	ids[1] = last
}
