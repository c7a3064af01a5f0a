package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
)

type RegistrationService interface {
	RegisterTeam(ctx context.Context, tournamentID, teamID, principalID int) (*models.TeamRegistration, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.TeamRegistration, error)
}

type registrationService struct {
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	registrationRepo repositories.RegistrationRepository
	logger           *slog.Logger
}

func NewRegistrationService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	registrationRepo repositories.RegistrationRepository,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// RegisterTeam enters a team into a tournament while registration is open.
// Only the team's owner can register it.
func (s *registrationService) RegisterTeam(ctx context.Context, tournamentID, teamID, principalID int) (*models.TeamRegistration, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if !tournament.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.OwnerID != principalID {
		return nil, ErrNotTeamOwner
	}

	registration := &models.TeamRegistration{
		TournamentID: tournamentID,
		TeamID:       teamID,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	s.logger.InfoContext(ctx, "team registered",
		slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	return registration, nil
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TeamRegistration, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	registrations, err := s.registrationRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, r := range registrations {
		team, err := s.teamRepo.GetByID(ctx, r.TeamID)
		if err == nil {
			r.Team = team
		}
	}
	return registrations, nil
}
