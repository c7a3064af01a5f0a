package standings

import (
	"testing"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/stretchr/testify/assert"
)

func TestSortTieBreakOrder(t *testing.T) {
	a := &models.TeamRegistration{ID: 1, Points: 6, GoalsFor: 5, GoalsAgainst: 2}
	b := &models.TeamRegistration{ID: 2, Points: 6, GoalsFor: 8, GoalsAgainst: 5}
	c := &models.TeamRegistration{ID: 3, Points: 6, GoalsFor: 9, GoalsAgainst: 6}
	d := &models.TeamRegistration{ID: 4, Points: 7, GoalsFor: 1, GoalsAgainst: 0}
	e := &models.TeamRegistration{ID: 5, Points: 2, GoalsFor: 10, GoalsAgainst: 1}

	regs := []*models.TeamRegistration{a, b, c, d, e}
	Sort(regs)

	// d leads on points; a, c, b share points and goal difference ties are
	// broken by goals scored (c over b over a... a and c and b all have
	// diff +3, so goals-for decides: c(9), b(8), a(5)); e trails on points
	// despite the best attack.
	ids := []int{regs[0].ID, regs[1].ID, regs[2].ID, regs[3].ID, regs[4].ID}
	assert.Equal(t, []int{4, 3, 2, 1, 5}, ids)
}

func TestSortGoalDifferenceBeforeGoalsFor(t *testing.T) {
	a := &models.TeamRegistration{ID: 1, Points: 3, GoalsFor: 9, GoalsAgainst: 8}
	b := &models.TeamRegistration{ID: 2, Points: 3, GoalsFor: 2, GoalsAgainst: 0}

	regs := []*models.TeamRegistration{a, b}
	Sort(regs)
	assert.Equal(t, 2, regs[0].ID, "higher goal difference ranks first")
}

func TestApplyResultHomeWin(t *testing.T) {
	home := &models.TeamRegistration{ID: 1}
	away := &models.TeamRegistration{ID: 2}

	ApplyResult(home, away, 3, 1)

	assert.Equal(t, 3, home.Points)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 0, home.Draws)
	assert.Equal(t, 3, home.GoalsFor)
	assert.Equal(t, 1, home.GoalsAgainst)
	assert.Equal(t, 2, home.GoalDifference())

	assert.Equal(t, 0, away.Points)
	assert.Equal(t, 1, away.Losses)
	assert.Equal(t, 1, away.GoalsFor)
	assert.Equal(t, 3, away.GoalsAgainst)
}

func TestApplyResultDraw(t *testing.T) {
	home := &models.TeamRegistration{ID: 1}
	away := &models.TeamRegistration{ID: 2}

	ApplyResult(home, away, 2, 2)

	for _, r := range []*models.TeamRegistration{home, away} {
		assert.Equal(t, 1, r.Points)
		assert.Equal(t, 1, r.Draws)
		assert.Equal(t, 0, r.Wins)
		assert.Equal(t, 0, r.Losses)
		assert.Equal(t, 2, r.GoalsFor)
		assert.Equal(t, 2, r.GoalsAgainst)
	}
}
