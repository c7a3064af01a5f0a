package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
	"github.com/Dastan11/league-fixtures/storage"
)

type CreateTournamentInput struct {
	Name        string                  `json:"name" validate:"required,min=2,max=150"`
	Description *string                 `json:"description,omitempty" validate:"omitempty,max=2000"`
	Format      models.TournamentFormat `json:"format" validate:"required"`
	StartDate   time.Time               `json:"start_date" validate:"required"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error)
	Update(ctx context.Context, tournamentID, principalID int, patch models.TournamentUpdate) (*models.Tournament, error)
	Delete(ctx context.Context, tournamentID, principalID int) error
	CloseRegistration(ctx context.Context, tournamentID, principalID int) (*models.Tournament, error)
	UploadLogo(ctx context.Context, tournamentID, principalID int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	if !input.Format.Valid() {
		return nil, ErrUnsupportedFormat
	}
	tournament := &models.Tournament{
		Name:             input.Name,
		Description:      input.Description,
		Format:           input.Format,
		OrganizerID:      organizerID,
		StartDate:        input.StartDate,
		RegistrationOpen: true,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, fmt.Errorf("%w: tournament name already in use", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

// Update applies a merge patch. The format is immutable once the fixture
// exists, and registration cannot reopen after matches were generated.
func (s *tournamentService) Update(ctx context.Context, tournamentID, principalID int, patch models.TournamentUpdate) (*models.Tournament, error) {
	tournament, err := s.ownedTournament(ctx, tournamentID, principalID)
	if err != nil {
		return nil, err
	}

	matchCount, err := s.matchRepo.CountByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	if patch.Format != nil && *patch.Format != tournament.Format {
		if matchCount > 0 {
			return nil, ErrTournamentHasMatches
		}
		if !patch.Format.Valid() {
			return nil, ErrUnsupportedFormat
		}
		tournament.Format = *patch.Format
	}
	if patch.RegistrationOpen != nil && *patch.RegistrationOpen && matchCount > 0 {
		return nil, ErrTournamentHasMatches
	}

	if patch.Name != nil {
		tournament.Name = *patch.Name
	}
	if patch.Description != nil {
		tournament.Description = patch.Description
	}
	if patch.StartDate != nil {
		tournament.StartDate = *patch.StartDate
	}
	if patch.RegistrationOpen != nil {
		tournament.RegistrationOpen = *patch.RegistrationOpen
	}

	if err := s.tournamentRepo.Update(ctx, nil, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, fmt.Errorf("%w: tournament name already in use", ErrValidationFailed)
		}
		return nil, err
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, tournamentID, principalID int) error {
	tournament, err := s.ownedTournament(ctx, tournamentID, principalID)
	if err != nil {
		return err
	}
	matchCount, err := s.matchRepo.CountByTournament(ctx, nil, tournamentID)
	if err != nil {
		return err
	}
	if matchCount > 0 {
		return ErrTournamentHasMatches
	}
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		return err
	}
	if tournament.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete tournament logo from storage",
				slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		}
	}
	return nil
}

func (s *tournamentService) CloseRegistration(ctx context.Context, tournamentID, principalID int) (*models.Tournament, error) {
	tournament, err := s.ownedTournament(ctx, tournamentID, principalID)
	if err != nil {
		return nil, err
	}
	if !tournament.RegistrationOpen {
		return tournament, nil
	}
	if err := s.tournamentRepo.SetRegistrationOpen(ctx, nil, tournamentID, false); err != nil {
		return nil, err
	}
	tournament.RegistrationOpen = false
	s.logger.InfoContext(ctx, "registration closed", slog.Int("tournament_id", tournamentID))
	return tournament, nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, tournamentID, principalID int, contentType string, file io.Reader) (*models.Tournament, error) {
	tournament, err := s.ownedTournament(ctx, tournamentID, principalID)
	if err != nil {
		return nil, err
	}

	ext := extensionFor(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported logo content type %q", ErrValidationFailed, contentType)
	}

	key := fmt.Sprintf("tournaments/%d/logo%s", tournamentID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &result.Key); err != nil {
		return nil, err
	}
	tournament.LogoKey = &result.Key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ownedTournament(ctx context.Context, tournamentID, principalID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != principalID {
		return nil, ErrNotTournamentOwner
	}
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.LogoKey)
	if url != "" {
		t.LogoURL = &url
	}
}
