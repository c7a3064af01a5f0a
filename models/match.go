package models

import "time"

type MatchStatus string

// Only scheduled, completed and cancelled are persisted. A scheduled match
// whose kickoff time has passed reads as in_progress, derived at read time
// so no clock-driven writes are needed.
const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

type TournamentMatch struct {
	ID                 int         `json:"id" db:"id"`
	TournamentID       int         `json:"tournament_id" db:"tournament_id"`
	HomeRegistrationID *int        `json:"home_registration_id,omitempty" db:"home_registration_id"`
	AwayRegistrationID *int        `json:"away_registration_id,omitempty" db:"away_registration_id"`
	VenueID            *int        `json:"venue_id,omitempty" db:"venue_id"`
	ScheduledAt        *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	Round              int         `json:"round" db:"round"`
	MatchNumber        int         `json:"match_number" db:"match_number"`
	Status             MatchStatus `json:"-" db:"status"`
	HomeScore          *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore          *int        `json:"away_score,omitempty" db:"away_score"`
	NextMatchID        *int        `json:"next_match_id,omitempty" db:"next_match_id"`
	HomeSlotNext       bool        `json:"home_slot_next" db:"home_slot_next"`
	ConfirmedMatchID   *int        `json:"confirmed_match_id,omitempty" db:"confirmed_match_id"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`

	// EffectiveStatus(now), serialized in place of the stored status.
	DerivedStatus MatchStatus `json:"status" db:"-"`
}

// EffectiveStatus derives the externally visible status. A scheduled match
// becomes in_progress as soon as its kickoff time has passed.
func (m *TournamentMatch) EffectiveStatus(now time.Time) MatchStatus {
	if m.Status == MatchStatusScheduled && m.ScheduledAt != nil && now.After(*m.ScheduledAt) {
		return MatchStatusInProgress
	}
	return m.Status
}

// Resolved reports whether both team slots are populated.
func (m *TournamentMatch) Resolved() bool {
	return m.HomeRegistrationID != nil && m.AwayRegistrationID != nil
}
