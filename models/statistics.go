package models

// TournamentStatistics is a read-only snapshot derived from the settled
// state of a tournament; nothing here is stored.
type TournamentStatistics struct {
	TournamentID     int     `json:"tournament_id"`
	TotalTeams       int     `json:"total_teams"`
	TotalMatches     int     `json:"total_matches"`
	CompletedMatches int     `json:"completed_matches"`
	TotalGoals       int     `json:"total_goals"`
	AverageGoals     float64 `json:"average_goals"`

	// Set only once the tournament has finished.
	ChampionTeamID *int `json:"champion_team_id,omitempty"`
	RunnerUpTeamID *int `json:"runner_up_team_id,omitempty"`

	// Extremal queries; ties resolve to the first registration encountered.
	TopScorerTeamID    *int `json:"top_scorer_team_id,omitempty"`
	BestDefenseTeamID  *int `json:"best_defense_team_id,omitempty"`
}
