package standings

import (
	"sort"

	"github.com/Dastan11/league-fixtures/models"
)

const (
	PointsWin  = 3
	PointsDraw = 1
)

// Less reports whether a ranks strictly before b: points, then goal
// difference, then goals scored, all descending. Ties beyond that keep
// their input order (Sort is stable).
func Less(a, b *models.TeamRegistration) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	return a.GoalsFor > b.GoalsFor
}

// Sort orders registrations into standings order, in place.
func Sort(regs []*models.TeamRegistration) {
	sort.SliceStable(regs, func(i, j int) bool {
		return Less(regs[i], regs[j])
	})
}

// ApplyResult folds one completed match into both accumulators. Callers
// must invoke this exactly once per completed match.
func ApplyResult(home, away *models.TeamRegistration, homeScore, awayScore int) {
	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Points += PointsWin
		home.Wins++
		away.Losses++
	case awayScore > homeScore:
		away.Points += PointsWin
		away.Wins++
		home.Losses++
	default:
		home.Points += PointsDraw
		away.Points += PointsDraw
		home.Draws++
		away.Draws++
	}
}
