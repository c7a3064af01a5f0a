package fixtures

import (
	"context"
	"errors"

	"github.com/Dastan11/league-fixtures/models"
)

var (
	ErrNotEnoughTeams         = errors.New("not enough teams to generate a fixture")
	ErrNotEnoughTeamsForGroups = errors.New("group format requires at least two groups of three teams")
)

// GeneratedMatch is one node of the match graph a generator produces.
// Elimination linkage is expressed as an index into the returned slice
// rather than a pointer, so the whole graph stays serializable and can be
// persisted in two passes.
type GeneratedMatch struct {
	Round       int
	MatchNumber int

	HomeRegistrationID *int
	AwayRegistrationID *int

	// NextIndex points at the match this one's winner advances into;
	// nil for the final and for round-robin matches.
	NextIndex    *int
	HomeSlotNext bool
}

type GenerateParams struct {
	Tournament    *models.Tournament
	Registrations []*models.TeamRegistration
}

type Generator interface {
	Generate(ctx context.Context, params GenerateParams) ([]*GeneratedMatch, error)

	Name() string
}
