package models

import "time"

// TeamRegistration is the per-tournament accumulator for one team.
// All counters start at zero and are mutated only by result processing.
type TeamRegistration struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Points       int       `json:"points" db:"points"`
	GoalsFor     int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst int       `json:"goals_against" db:"goals_against"`
	Wins         int       `json:"wins" db:"wins"`
	Draws        int       `json:"draws" db:"draws"`
	Losses       int       `json:"losses" db:"losses"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

func (r *TeamRegistration) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}
