package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrTeamOwnerInvalid = errors.New("team owner conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, limit, offset int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, owner_id, logo_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.OwnerID, team.LogoKey).
		Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, owner_id, logo_key, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.OwnerID, &team.LogoKey, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, limit, offset int) ([]*models.Team, error) {
	query := `
		SELECT id, name, owner_id, logo_key, created_at
		FROM teams
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.OwnerID, &team.LogoKey, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "teams_name_key":
			return ErrTeamNameConflict
		case "teams_owner_id_fkey":
			return ErrTeamOwnerInvalid
		}
	}
	return err
}
