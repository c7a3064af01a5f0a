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
	ErrRegistrationNotFound  = errors.New("team registration not found")
	ErrRegistrationConflict  = errors.New("team is already registered for this tournament")
	ErrRegistrationRefInvalid = errors.New("registration tournament or team reference invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.TeamRegistration) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TeamRegistration, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TeamRegistration, error)
	UpdateStats(ctx context.Context, exec SQLExecutor, registration *models.TeamRegistration) error
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.TeamRegistration) error {
	query := `
		INSERT INTO team_registrations (tournament_id, team_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, reg.TournamentID, reg.TeamID).
		Scan(&reg.ID, &reg.CreatedAt)
	return r.handleRegistrationError(err)
}

func (r *postgresRegistrationRepository) scanRegistration(row interface{ Scan(...interface{}) error }) (*models.TeamRegistration, error) {
	reg := &models.TeamRegistration{}
	err := row.Scan(
		&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.Points,
		&reg.GoalsFor, &reg.GoalsAgainst, &reg.Wins, &reg.Draws, &reg.Losses,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TeamRegistration, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, team_id, points, goals_for, goals_against,
		       wins, draws, losses, created_at
		FROM team_registrations
		WHERE id = $1`
	return r.scanRegistration(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TeamRegistration, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, team_id, points, goals_for, goals_against,
		       wins, draws, losses, created_at
		FROM team_registrations
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	regs := make([]*models.TeamRegistration, 0)
	for rows.Next() {
		reg, err := r.scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *postgresRegistrationRepository) UpdateStats(ctx context.Context, exec SQLExecutor, reg *models.TeamRegistration) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE team_registrations
		SET points = $1, goals_for = $2, goals_against = $3, wins = $4, draws = $5, losses = $6
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		reg.Points, reg.GoalsFor, reg.GoalsAgainst, reg.Wins, reg.Draws, reg.Losses, reg.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_registrations WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	return count, err
}

func (r *postgresRegistrationRepository) handleRegistrationError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "team_registrations_tournament_id_team_id_key":
			return ErrRegistrationConflict
		case "team_registrations_tournament_id_fkey", "team_registrations_team_id_fkey":
			return ErrRegistrationRefInvalid
		}
	}
	return err
}
