package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dastan11/league-fixtures/fixtures"
	"github.com/Dastan11/league-fixtures/models"
)

const (
	testOrganizerID = 10
	testOutsiderID  = 99
)

type fixtureEnv struct {
	svc           *fixtureService
	tournaments   *fakeTournamentRepo
	registrations *fakeRegistrationRepo
	matches       *fakeMatchRepo
	venues        *fakeVenueRepo
	bookings      *fakeBookingRepo
	clock         time.Time
}

// newFixtureEnv wires a fixture service over in-memory fakes: one tournament
// with closed registration starting Monday 2026-06-01, one always-open venue
// and a deterministic seeding order.
func newFixtureEnv(format models.TournamentFormat, teamCount int) *fixtureEnv {
	tournament := &models.Tournament{
		ID:          1,
		Name:        "Summer Cup",
		Format:      format,
		OrganizerID: testOrganizerID,
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	regs := make([]*models.TeamRegistration, 0, teamCount)
	for i := 1; i <= teamCount; i++ {
		regs = append(regs, &models.TeamRegistration{
			ID:           i,
			TournamentID: tournament.ID,
			TeamID:       100 + i,
		})
	}

	env := &fixtureEnv{
		tournaments:   newFakeTournamentRepo(tournament),
		registrations: newFakeRegistrationRepo(regs...),
		matches:       newFakeMatchRepo(),
		venues:        newFakeVenueRepo(&models.Venue{ID: 1, Name: "Arena One", Active: true}),
		bookings:      newFakeBookingRepo(),
		clock:         time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	env.venues.openAllWeek(1, 8, 20)

	svc := NewFixtureService(
		fakeTransactor{},
		env.tournaments,
		env.registrations,
		env.matches,
		env.venues,
		env.bookings,
		fixtures.IdentityOrder(),
		testLogger(),
	).(*fixtureService)
	svc.now = func() time.Time { return env.clock }
	env.svc = svc
	return env
}

func (e *fixtureEnv) tournament() *models.Tournament {
	return e.tournaments.tournaments[1]
}

func TestGenerateFixtureRoundRobin(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)

	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	for _, m := range matches {
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		assert.True(t, m.Resolved())
		assert.Nil(t, m.NextMatchID)
		require.NotNil(t, m.VenueID)
		require.NotNil(t, m.ScheduledAt)
		assert.NotNil(t, m.ConfirmedMatchID)
	}

	// Four kickoffs on day one, then the schedule rolls over.
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), *matches[0].ScheduledAt)
	assert.Equal(t, time.Date(2026, 6, 1, 16, 0, 0, 0, time.UTC), *matches[3].ScheduledAt)
	assert.Equal(t, time.Date(2026, 6, 2, 10, 0, 0, 0, time.UTC), *matches[4].ScheduledAt)

	assert.Len(t, env.bookings.bookings, 6)
	assert.Len(t, env.bookings.confirmed, 6)
	for _, b := range env.bookings.bookings {
		assert.Equal(t, testOrganizerID, b.OrganizerID)
	}
}

func TestGenerateFixtureSingleEliminationLinks(t *testing.T) {
	env := newFixtureEnv(models.FormatSingleElimination, 4)

	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	semi1, semi2, final := matches[0], matches[1], matches[2]
	require.NotNil(t, semi1.NextMatchID)
	require.NotNil(t, semi2.NextMatchID)
	assert.Equal(t, final.ID, *semi1.NextMatchID)
	assert.Equal(t, final.ID, *semi2.NextMatchID)
	assert.True(t, semi1.HomeSlotNext)
	assert.False(t, semi2.HomeSlotNext)
	assert.Nil(t, final.NextMatchID)

	// The final has no teams yet, so only the semis get bookings.
	assert.False(t, final.Resolved())
	assert.Nil(t, final.ConfirmedMatchID)
	assert.Len(t, env.bookings.bookings, 2)
}

func TestGenerateFixturePreconditions(t *testing.T) {
	t.Run("registration still open", func(t *testing.T) {
		env := newFixtureEnv(models.FormatRoundRobin, 4)
		env.tournament().RegistrationOpen = true
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		assert.ErrorIs(t, err, ErrRegistrationStillOpen)
	})

	t.Run("already generated", func(t *testing.T) {
		env := newFixtureEnv(models.FormatRoundRobin, 4)
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		require.NoError(t, err)
		_, err = env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		assert.ErrorIs(t, err, ErrFixtureAlreadyGenerated)
	})

	t.Run("not the organizer", func(t *testing.T) {
		env := newFixtureEnv(models.FormatRoundRobin, 4)
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOutsiderID)
		assert.ErrorIs(t, err, ErrNotTournamentOwner)
	})

	t.Run("no teams registered", func(t *testing.T) {
		env := newFixtureEnv(models.FormatRoundRobin, 0)
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		assert.ErrorIs(t, err, ErrNoTeamsRegistered)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		env := newFixtureEnv(models.FormatRoundRobin, 4)
		_, err := env.svc.GenerateFixture(context.Background(), 42, testOrganizerID)
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("unsupported format", func(t *testing.T) {
		env := newFixtureEnv(models.TournamentFormat("swiss"), 4)
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("single team rejected", func(t *testing.T) {
		env := newFixtureEnv(models.FormatSingleElimination, 1)
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		assert.ErrorIs(t, err, ErrNotEnoughTeams)
	})

	t.Run("venue closed at kickoff", func(t *testing.T) {
		env := newFixtureEnv(models.FormatRoundRobin, 4)
		env.venues.openAllWeek(1, 18, 22)
		_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
		assert.ErrorIs(t, err, ErrVenueHoursUnavailable)
	})
}

func TestUpdateMatchResultRoundRobin(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	// Match one is registration 1 at home against registration 4.
	updated, err := env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOrganizerID, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, updated.Status)

	home := env.registrations.registrations[1]
	away := env.registrations.registrations[4]
	assert.Equal(t, 3, home.Points)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 3, home.GoalsFor)
	assert.Equal(t, 1, home.GoalsAgainst)
	assert.Equal(t, 0, away.Points)
	assert.Equal(t, 1, away.Losses)

	// Results are one-shot.
	_, err = env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOrganizerID, 2, 2)
	assert.ErrorIs(t, err, ErrMatchAlreadyCompleted)
}

func TestUpdateMatchResultValidation(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	_, err = env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOrganizerID, -1, 0)
	assert.ErrorIs(t, err, ErrNegativeScore)

	_, err = env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOutsiderID, 1, 0)
	assert.ErrorIs(t, err, ErrNotTournamentOwner)

	_, err = env.svc.UpdateMatchResult(context.Background(), 999, testOrganizerID, 1, 0)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRoundRobinCompletionStampsEndDate(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	for i, m := range matches {
		require.Nil(t, env.tournament().EndDate)
		_, err := env.svc.UpdateMatchResult(context.Background(), m.ID, testOrganizerID, i+1, i)
		require.NoError(t, err)
	}
	require.NotNil(t, env.tournament().EndDate)
	assert.Equal(t, env.clock, *env.tournament().EndDate)
}

func TestSingleEliminationAdvancement(t *testing.T) {
	env := newFixtureEnv(models.FormatSingleElimination, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)
	semi1, semi2, final := matches[0], matches[1], matches[2]

	// The final cannot take a result until both slots are filled.
	_, err = env.svc.UpdateMatchResult(context.Background(), final.ID, testOrganizerID, 1, 0)
	assert.ErrorIs(t, err, ErrMatchUnresolved)

	_, err = env.svc.UpdateMatchResult(context.Background(), semi1.ID, testOrganizerID, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, final.HomeRegistrationID)
	assert.Equal(t, 1, *final.HomeRegistrationID)
	assert.Nil(t, final.AwayRegistrationID)
	assert.Nil(t, final.ConfirmedMatchID)

	_, err = env.svc.UpdateMatchResult(context.Background(), semi2.ID, testOrganizerID, 0, 1)
	require.NoError(t, err)
	require.NotNil(t, final.AwayRegistrationID)
	assert.Equal(t, 4, *final.AwayRegistrationID)

	// Both slots known: the final gets its booking.
	require.NotNil(t, final.ConfirmedMatchID)
	assert.Len(t, env.bookings.bookings, 3)
	assert.Nil(t, env.tournament().EndDate)

	_, err = env.svc.UpdateMatchResult(context.Background(), final.ID, testOrganizerID, 3, 2)
	require.NoError(t, err)
	require.NotNil(t, env.tournament().EndDate)
}

func TestEliminationDrawDoesNotAdvance(t *testing.T) {
	env := newFixtureEnv(models.FormatSingleElimination, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)
	semi1, final := matches[0], matches[2]

	_, err = env.svc.UpdateMatchResult(context.Background(), semi1.ID, testOrganizerID, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, final.HomeRegistrationID)
	assert.Nil(t, final.AwayRegistrationID)

	// Drawn results still count toward the table.
	assert.Equal(t, 1, env.registrations.registrations[1].Points)
	assert.Equal(t, 1, env.registrations.registrations[2].Points)
}

func TestCancelMatch(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelMatch(context.Background(), matches[0].ID, testOrganizerID))
	assert.Equal(t, models.MatchStatusCancelled, matches[0].Status)

	// A cancelled match cannot take a result.
	_, err = env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOrganizerID, 1, 0)
	assert.ErrorIs(t, err, ErrMatchNotResolvable)

	// A completed match cannot be cancelled.
	_, err = env.svc.UpdateMatchResult(context.Background(), matches[1].ID, testOrganizerID, 1, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, env.svc.CancelMatch(context.Background(), matches[1].ID, testOrganizerID), ErrMatchAlreadyCompleted)

	assert.ErrorIs(t, env.svc.CancelMatch(context.Background(), matches[2].ID, testOutsiderID), ErrNotTournamentOwner)
}

func TestGetFixtureDerivesInProgress(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	_, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	env.clock = time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC)
	matches, err := env.svc.GetFixture(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	// 10:00 kickoff has passed, 12:00 has not.
	assert.Equal(t, models.MatchStatusInProgress, matches[0].DerivedStatus)
	assert.Equal(t, models.MatchStatusScheduled, matches[1].DerivedStatus)
}

func TestGetStandingsSorted(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	// Registration 4 beats registration 1 away from home.
	_, err = env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOrganizerID, 0, 2)
	require.NoError(t, err)

	table, err := env.svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, table, 4)
	assert.Equal(t, 4, table[0].ID)
	assert.Equal(t, 3, table[0].Points)
}

func TestHybridFormatGroupMatchesDoNotAdvance(t *testing.T) {
	env := newFixtureEnv(models.FormatGroupAndKnockout, 6)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)

	// Two groups of three (three matches each) feeding a four-team knockout.
	require.Len(t, matches, 9)

	var group, knockout []*models.TournamentMatch
	for _, m := range matches {
		if m.MatchNumber >= fixtures.GroupNumberBlock {
			group = append(group, m)
		} else {
			knockout = append(knockout, m)
		}
	}
	require.Len(t, group, 6)
	require.Len(t, knockout, 3)

	// A group result updates the table but never the bracket or the end date.
	_, err = env.svc.UpdateMatchResult(context.Background(), group[0].ID, testOrganizerID, 2, 0)
	require.NoError(t, err)
	assert.Nil(t, env.tournament().EndDate)
	assert.Equal(t, 3, env.registrations.registrations[*group[0].HomeRegistrationID].Points)

	// Playing out the knockout finishes the tournament.
	semi1, semi2, final := knockout[0], knockout[1], knockout[2]
	_, err = env.svc.UpdateMatchResult(context.Background(), semi1.ID, testOrganizerID, 1, 0)
	require.NoError(t, err)
	_, err = env.svc.UpdateMatchResult(context.Background(), semi2.ID, testOrganizerID, 0, 2)
	require.NoError(t, err)
	require.True(t, final.Resolved())
	_, err = env.svc.UpdateMatchResult(context.Background(), final.ID, testOrganizerID, 4, 2)
	require.NoError(t, err)
	assert.NotNil(t, env.tournament().EndDate)
}

func TestGenerateFixtureWithoutVenues(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	env.venues.venues = nil

	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)
	for _, m := range matches {
		assert.Nil(t, m.VenueID)
		assert.Nil(t, m.ConfirmedMatchID)
	}
	assert.Empty(t, env.bookings.bookings)
}
