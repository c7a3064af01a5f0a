package services

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dastan11/league-fixtures/fixtures"
	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
	"github.com/Dastan11/league-fixtures/standings"
)

type StatisticsService interface {
	GetTournamentStatistics(ctx context.Context, tournamentID int) (*models.TournamentStatistics, error)
}

type statisticsService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	logger           *slog.Logger
}

func NewStatisticsService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) StatisticsService {
	return &statisticsService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		logger:           logger,
	}
}

func (s *statisticsService) GetTournamentStatistics(ctx context.Context, tournamentID int) (*models.TournamentStatistics, error) {
	var (
		tournament    *models.Tournament
		registrations []*models.TeamRegistration
		matches       []*models.TournamentMatch
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, nil, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		regs, err := s.registrationRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return err
		}
		registrations = regs
		return nil
	})
	g.Go(func() error {
		ms, err := s.matchRepo.ListByTournament(gCtx, nil, tournamentID)
		if err != nil {
			return err
		}
		matches = ms
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return computeStatistics(tournament, registrations, matches), nil
}

// computeStatistics derives the snapshot from settled state only: goal totals
// and averages count completed matches, champion and runner-up appear once
// the tournament has an end date.
func computeStatistics(
	tournament *models.Tournament,
	registrations []*models.TeamRegistration,
	matches []*models.TournamentMatch,
) *models.TournamentStatistics {
	stats := &models.TournamentStatistics{
		TournamentID: tournament.ID,
		TotalTeams:   len(registrations),
		TotalMatches: len(matches),
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			continue
		}
		stats.CompletedMatches++
		if m.HomeScore != nil && m.AwayScore != nil {
			stats.TotalGoals += *m.HomeScore + *m.AwayScore
		}
	}
	if stats.CompletedMatches > 0 {
		stats.AverageGoals = float64(stats.TotalGoals) / float64(stats.CompletedMatches)
	}

	registrationsByID := indexRegistrations(registrations)

	if len(registrations) > 0 {
		top := registrations[0]
		best := registrations[0]
		for _, r := range registrations[1:] {
			if r.GoalsFor > top.GoalsFor {
				top = r
			}
			if r.GoalsAgainst < best.GoalsAgainst {
				best = r
			}
		}
		topID, bestID := top.TeamID, best.TeamID
		stats.TopScorerTeamID = &topID
		stats.BestDefenseTeamID = &bestID
	}

	if tournament.EndDate != nil {
		champion, runnerUp := podium(tournament, registrations, matches, registrationsByID)
		stats.ChampionTeamID = champion
		stats.RunnerUpTeamID = runnerUp
	}
	return stats
}

// podium resolves first and second place for a finished tournament. Formats
// with a final read it off the final's result; a round robin reads the top of
// the table.
func podium(
	tournament *models.Tournament,
	registrations []*models.TeamRegistration,
	matches []*models.TournamentMatch,
	registrationsByID map[int]*models.TeamRegistration,
) (champion, runnerUp *int) {
	if tournament.Format == models.FormatRoundRobin {
		ranked := make([]*models.TeamRegistration, len(registrations))
		copy(ranked, registrations)
		standings.Sort(ranked)
		if len(ranked) > 0 {
			champion = &ranked[0].TeamID
		}
		if len(ranked) > 1 {
			runnerUp = &ranked[1].TeamID
		}
		return champion, runnerUp
	}

	final := findFinal(tournament, matches)
	if final == nil || final.Status != models.MatchStatusCompleted ||
		final.HomeScore == nil || final.AwayScore == nil || !final.Resolved() {
		return nil, nil
	}

	winnerReg, loserReg := *final.HomeRegistrationID, *final.AwayRegistrationID
	if *final.AwayScore > *final.HomeScore {
		winnerReg, loserReg = loserReg, winnerReg
	}
	if r, ok := registrationsByID[winnerReg]; ok {
		champion = &r.TeamID
	}
	if r, ok := registrationsByID[loserReg]; ok {
		runnerUp = &r.TeamID
	}
	return champion, runnerUp
}

// findFinal locates the elimination match with no successor. Group-phase
// matches carry their own match-number blocks and never qualify.
func findFinal(tournament *models.Tournament, matches []*models.TournamentMatch) *models.TournamentMatch {
	for _, m := range matches {
		if m.NextMatchID != nil {
			continue
		}
		if tournament.Format == models.FormatGroupAndKnockout && m.MatchNumber >= fixtures.GroupNumberBlock {
			continue
		}
		if tournament.Format == models.FormatSingleElimination || tournament.Format == models.FormatGroupAndKnockout {
			return m
		}
	}
	return nil
}
