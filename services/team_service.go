package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
	"github.com/Dastan11/league-fixtures/storage"
)

type CreateTeamInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type TeamService interface {
	Create(ctx context.Context, ownerID int, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, limit, offset int) ([]*models.Team, error)
	Rename(ctx context.Context, teamID, principalID int, name string) (*models.Team, error)
	Delete(ctx context.Context, teamID, principalID int) error
	UploadLogo(ctx context.Context, teamID, principalID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader, logger: logger}
}

func (s *teamService) Create(ctx context.Context, ownerID int, input CreateTeamInput) (*models.Team, error) {
	team := &models.Team{
		Name:    input.Name,
		OwnerID: ownerID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context, limit, offset int) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		s.populateLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) Rename(ctx context.Context, teamID, principalID int, name string) (*models.Team, error) {
	team, err := s.ownedTeam(ctx, teamID, principalID)
	if err != nil {
		return nil, err
	}
	team.Name = name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, teamID, principalID int) error {
	team, err := s.ownedTeam(ctx, teamID, principalID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return err
	}
	if team.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete team logo from storage",
				slog.Int("team_id", teamID), slog.String("key", *team.LogoKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, principalID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.ownedTeam(ctx, teamID, principalID)
	if err != nil {
		return nil, err
	}

	ext := extensionFor(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported logo content type %q", ErrValidationFailed, contentType)
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, err
	}
	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ownedTeam(ctx context.Context, teamID, principalID int) (*models.Team, error) {
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
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 &&
		strings.HasPrefix(contentType, "image/") {
		return exts[0]
	}
	return ""
}
