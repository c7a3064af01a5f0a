package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dastan11/league-fixtures/models"
)

func intPtr(v int) *int { return &v }

func TestComputeStatisticsUnfinished(t *testing.T) {
	tournament := &models.Tournament{ID: 1, Format: models.FormatRoundRobin}
	regs := []*models.TeamRegistration{
		{ID: 1, TeamID: 101, GoalsFor: 5, GoalsAgainst: 2},
		{ID: 2, TeamID: 102, GoalsFor: 2, GoalsAgainst: 5},
	}
	matches := []*models.TournamentMatch{
		{ID: 1, Status: models.MatchStatusCompleted, HomeScore: intPtr(3), AwayScore: intPtr(1)},
		{ID: 2, Status: models.MatchStatusCompleted, HomeScore: intPtr(2), AwayScore: intPtr(1)},
		{ID: 3, Status: models.MatchStatusScheduled},
	}

	stats := computeStatistics(tournament, regs, matches)
	assert.Equal(t, 2, stats.TotalTeams)
	assert.Equal(t, 3, stats.TotalMatches)
	assert.Equal(t, 2, stats.CompletedMatches)
	assert.Equal(t, 7, stats.TotalGoals)
	assert.InDelta(t, 3.5, stats.AverageGoals, 0.0001)

	// No end date means no podium yet.
	assert.Nil(t, stats.ChampionTeamID)
	assert.Nil(t, stats.RunnerUpTeamID)

	require.NotNil(t, stats.TopScorerTeamID)
	assert.Equal(t, 101, *stats.TopScorerTeamID)
	require.NotNil(t, stats.BestDefenseTeamID)
	assert.Equal(t, 101, *stats.BestDefenseTeamID)
}

func TestComputeStatisticsRoundRobinPodium(t *testing.T) {
	end := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	tournament := &models.Tournament{ID: 1, Format: models.FormatRoundRobin, EndDate: &end}
	regs := []*models.TeamRegistration{
		{ID: 1, TeamID: 101, Points: 4, GoalsFor: 3, GoalsAgainst: 1},
		{ID: 2, TeamID: 102, Points: 6, GoalsFor: 5, GoalsAgainst: 2},
		{ID: 3, TeamID: 103, Points: 1, GoalsFor: 1, GoalsAgainst: 6},
	}

	stats := computeStatistics(tournament, regs, nil)
	require.NotNil(t, stats.ChampionTeamID)
	assert.Equal(t, 102, *stats.ChampionTeamID)
	require.NotNil(t, stats.RunnerUpTeamID)
	assert.Equal(t, 101, *stats.RunnerUpTeamID)
}

func TestComputeStatisticsEliminationPodium(t *testing.T) {
	end := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	tournament := &models.Tournament{ID: 1, Format: models.FormatSingleElimination, EndDate: &end}
	regs := []*models.TeamRegistration{
		{ID: 1, TeamID: 101},
		{ID: 2, TeamID: 102},
	}
	final := &models.TournamentMatch{
		ID:                 3,
		Status:             models.MatchStatusCompleted,
		HomeRegistrationID: intPtr(1),
		AwayRegistrationID: intPtr(2),
		HomeScore:          intPtr(1),
		AwayScore:          intPtr(2),
	}
	semis := &models.TournamentMatch{ID: 1, NextMatchID: intPtr(3), Status: models.MatchStatusCompleted}

	stats := computeStatistics(tournament, regs, []*models.TournamentMatch{semis, final})
	require.NotNil(t, stats.ChampionTeamID)
	assert.Equal(t, 102, *stats.ChampionTeamID)
	require.NotNil(t, stats.RunnerUpTeamID)
	assert.Equal(t, 101, *stats.RunnerUpTeamID)
}

func TestGetTournamentStatistics(t *testing.T) {
	env := newFixtureEnv(models.FormatRoundRobin, 4)
	matches, err := env.svc.GenerateFixture(context.Background(), 1, testOrganizerID)
	require.NoError(t, err)
	_, err = env.svc.UpdateMatchResult(context.Background(), matches[0].ID, testOrganizerID, 3, 1)
	require.NoError(t, err)

	statsSvc := NewStatisticsService(env.tournaments, env.registrations, env.matches, testLogger())
	stats, err := statsSvc.GetTournamentStatistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalTeams)
	assert.Equal(t, 6, stats.TotalMatches)
	assert.Equal(t, 1, stats.CompletedMatches)
	assert.Equal(t, 4, stats.TotalGoals)

	_, err = statsSvc.GetTournamentStatistics(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
