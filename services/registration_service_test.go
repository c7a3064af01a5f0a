package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dastan11/league-fixtures/models"
)

const testPlayerID = 20

func newRegistrationEnv() (RegistrationService, *fakeTournamentRepo, *fakeTeamRepo) {
	tournaments := newFakeTournamentRepo(&models.Tournament{
		ID:               1,
		Name:             "Autumn Cup",
		Format:           models.FormatRoundRobin,
		OrganizerID:      testOrganizerID,
		StartDate:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		RegistrationOpen: true,
	})
	teams := newFakeTeamRepo(&models.Team{ID: 1, Name: "Rovers", OwnerID: testPlayerID})
	svc := NewRegistrationService(tournaments, teams, newFakeRegistrationRepo(), testLogger())
	return svc, tournaments, teams
}

func TestRegisterTeam(t *testing.T) {
	svc, _, _ := newRegistrationEnv()

	reg, err := svc.RegisterTeam(context.Background(), 1, 1, testPlayerID)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.TournamentID)
	assert.Equal(t, 1, reg.TeamID)
	assert.Zero(t, reg.Points)

	// One entry per team per tournament.
	_, err = svc.RegisterTeam(context.Background(), 1, 1, testPlayerID)
	assert.ErrorIs(t, err, ErrRegistrationConflict)
}

func TestRegisterTeamWhileClosed(t *testing.T) {
	svc, tournaments, _ := newRegistrationEnv()
	tournaments.tournaments[1].RegistrationOpen = false

	_, err := svc.RegisterTeam(context.Background(), 1, 1, testPlayerID)
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestRegisterTeamOwnershipAndLookups(t *testing.T) {
	svc, _, _ := newRegistrationEnv()

	_, err := svc.RegisterTeam(context.Background(), 1, 1, testOutsiderID)
	assert.ErrorIs(t, err, ErrNotTeamOwner)

	_, err = svc.RegisterTeam(context.Background(), 42, 1, testPlayerID)
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	_, err = svc.RegisterTeam(context.Background(), 1, 42, testPlayerID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestListRegistrationsIncludesTeams(t *testing.T) {
	svc, _, teams := newRegistrationEnv()
	require.NoError(t, teams.Create(context.Background(), &models.Team{Name: "United", OwnerID: testPlayerID}))

	_, err := svc.RegisterTeam(context.Background(), 1, 1, testPlayerID)
	require.NoError(t, err)
	_, err = svc.RegisterTeam(context.Background(), 1, 2, testPlayerID)
	require.NoError(t, err)

	regs, err := svc.ListByTournament(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	require.NotNil(t, regs[0].Team)
	assert.Equal(t, "Rovers", regs[0].Team.Name)
	assert.Equal(t, "United", regs[1].Team.Name)
}
