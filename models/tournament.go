package models

import "time"

// TournamentFormat matches the ENUM in the tournaments table.
type TournamentFormat string

const (
	FormatRoundRobin         TournamentFormat = "round_robin"
	FormatSingleElimination  TournamentFormat = "single_elimination"
	FormatGroupAndKnockout   TournamentFormat = "group_stage_and_elimination"
)

func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatRoundRobin, FormatSingleElimination, FormatGroupAndKnockout:
		return true
	}
	return false
}

type Tournament struct {
	ID               int              `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Description      *string          `json:"description,omitempty" db:"description"`
	Format           TournamentFormat `json:"format" db:"format"`
	OrganizerID      int              `json:"organizer_id" db:"organizer_id"`
	StartDate        time.Time        `json:"start_date" db:"start_date"`
	EndDate          *time.Time       `json:"end_date,omitempty" db:"end_date"`
	RegistrationOpen bool             `json:"registration_open" db:"registration_open"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Populated on demand, not mapped directly.
	Organizer     *User             `json:"-" db:"-"`
	Registrations []TeamRegistration `json:"registrations,omitempty" db:"-"`
	Matches       []TournamentMatch  `json:"matches,omitempty" db:"-"`
}

// TournamentUpdate is a merge patch over the mutable tournament fields.
// Nil means "leave as is".
type TournamentUpdate struct {
	Name             *string    `json:"name,omitempty"`
	Description      *string    `json:"description,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	RegistrationOpen *bool      `json:"registration_open,omitempty"`
	Format           *TournamentFormat `json:"format,omitempty"`
}
