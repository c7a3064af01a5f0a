package fixtures

import (
	"context"
	"fmt"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/standings"
)

const (
	minGroupSize = 3
	maxGroupSize = 6

	// Keeps every group's match numbers in their own thousand block so the
	// numbers stay tournament-unique and group-identifiable.
	GroupNumberBlock = 1000

	qualifiersPerGroup = 2
)

// GroupStageGenerator partitions the field into round-robin groups and
// feeds each group's top finishers into a knockout phase.
type GroupStageGenerator struct {
	order      OrderProvider
	roundRobin Generator
	knockout   Generator
}

func NewGroupStageGenerator(order OrderProvider) Generator {
	return &GroupStageGenerator{
		order:      order,
		roundRobin: NewRoundRobinGenerator(),
		knockout:   NewSingleEliminationGenerator(order),
	}
}

func (g *GroupStageGenerator) Name() string {
	return "GroupStageAndElimination"
}

func (g *GroupStageGenerator) Generate(ctx context.Context, params GenerateParams) ([]*GeneratedMatch, error) {
	regs := params.Registrations
	n := len(regs)
	if n < minGroupSize*2 {
		return nil, fmt.Errorf("%w: found %d, min %d required", ErrNotEnoughTeamsForGroups, n, minGroupSize*2)
	}

	shuffled := make([]*models.TeamRegistration, n)
	copy(shuffled, regs)
	g.order.Shuffle(n, func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := partition(shuffled, optimalGroupCount(n))

	all := make([]*GeneratedMatch, 0)
	qualifiers := make([]*models.TeamRegistration, 0, len(groups)*qualifiersPerGroup)
	maxGroupRound := 0

	for gi, group := range groups {
		groupMatches, err := g.roundRobin.Generate(ctx, GenerateParams{
			Tournament:    params.Tournament,
			Registrations: group,
		})
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", gi+1, err)
		}
		for _, m := range groupMatches {
			m.MatchNumber += (gi + 1) * GroupNumberBlock
			if m.Round > maxGroupRound {
				maxGroupRound = m.Round
			}
		}
		all = append(all, groupMatches...)

		// Qualification is decided by the standings comparator over the
		// group's registrations as they stand right now, before any group
		// match has been played. That mirrors the historical behavior;
		// with fresh accumulators it degrades to partition order.
		ranked := make([]*models.TeamRegistration, len(group))
		copy(ranked, group)
		standings.Sort(ranked)
		qualifiers = append(qualifiers, ranked[:qualifiersPerGroup]...)
	}

	knockoutMatches, err := g.knockout.Generate(ctx, GenerateParams{
		Tournament:    params.Tournament,
		Registrations: qualifiers,
	})
	if err != nil {
		return nil, fmt.Errorf("elimination phase: %w", err)
	}

	// Knockout nodes land after the group nodes in the arena, so their
	// internal indices shift by the group-match count; rounds shift past
	// the last group round.
	offset := len(all)
	for _, m := range knockoutMatches {
		m.Round += maxGroupRound
		if m.NextIndex != nil {
			next := *m.NextIndex + offset
			m.NextIndex = &next
		}
	}
	return append(all, knockoutMatches...), nil
}

// optimalGroupCount picks the smallest power-of-two group count that keeps
// every group between minGroupSize and maxGroupSize teams; when no power of
// two fits the range, the minimum feasible count wins.
func optimalGroupCount(n int) int {
	lo := (n + maxGroupSize - 1) / maxGroupSize
	if lo < 2 {
		lo = 2 // a group stage is at least two groups
	}
	hi := n / minGroupSize
	for count := lo; count <= hi; count++ {
		if count&(count-1) == 0 {
			return count
		}
	}
	return lo
}

// partition splits teams into count groups, handing the remainder out to
// the first groups one extra team each.
func partition(regs []*models.TeamRegistration, count int) [][]*models.TeamRegistration {
	base := len(regs) / count
	extra := len(regs) % count

	groups := make([][]*models.TeamRegistration, 0, count)
	at := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		groups = append(groups, regs[at:at+size])
		at += size
	}
	return groups
}
