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
	ErrMatchNotFound           = errors.New("tournament match not found")
	ErrMatchTournamentInvalid  = errors.New("match tournament conflict or invalid")
	ErrMatchRegistrationInvalid = errors.New("match registration conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.TournamentMatch) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TournamentMatch, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentMatch, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	CountIncompleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	UpdateNextMatch(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID *int, homeSlotNext bool) error
	UpdateSlots(ctx context.Context, exec SQLExecutor, matchID int, homeRegistrationID, awayRegistrationID *int) error
	UpdateResult(ctx context.Context, exec SQLExecutor, matchID int, homeScore, awayScore int, status models.MatchStatus) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, matchID int, status models.MatchStatus) error
	UpdateConfirmedMatch(ctx context.Context, exec SQLExecutor, matchID int, confirmedMatchID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, tournament_id, home_registration_id, away_registration_id, venue_id,
	scheduled_at, round, match_number, status, home_score, away_score,
	next_match_id, home_slot_next, confirmed_match_id, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.TournamentMatch) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_matches
			(tournament_id, home_registration_id, away_registration_id, venue_id,
			 scheduled_at, round, match_number, status, home_score, away_score,
			 next_match_id, home_slot_next, confirmed_match_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		m.TournamentID, m.HomeRegistrationID, m.AwayRegistrationID, m.VenueID,
		m.ScheduledAt, m.Round, m.MatchNumber, m.Status, m.HomeScore, m.AwayScore,
		m.NextMatchID, m.HomeSlotNext, m.ConfirmedMatchID,
	).Scan(&m.ID, &m.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.TournamentMatch, error) {
	m := &models.TournamentMatch{}
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.HomeRegistrationID, &m.AwayRegistrationID, &m.VenueID,
		&m.ScheduledAt, &m.Round, &m.MatchNumber, &m.Status, &m.HomeScore, &m.AwayScore,
		&m.NextMatchID, &m.HomeSlotNext, &m.ConfirmedMatchID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TournamentMatch, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM tournament_matches WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentMatch, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT ` + matchColumns + `
		FROM tournament_matches
		WHERE tournament_id = $1
		ORDER BY round ASC, match_number ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.TournamentMatch, 0)
	for rows.Next() {
		m, err := r.scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tournament_matches WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) CountIncompleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tournament_matches WHERE tournament_id = $1 AND status <> $2`,
		tournamentID, models.MatchStatusCompleted,
	).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) UpdateNextMatch(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID *int, homeSlotNext bool) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournament_matches SET next_match_id = $1, home_slot_next = $2 WHERE id = $3`,
		nextMatchID, homeSlotNext, matchID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSlots(ctx context.Context, exec SQLExecutor, matchID int, homeRegistrationID, awayRegistrationID *int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournament_matches SET home_registration_id = $1, away_registration_id = $2 WHERE id = $3`,
		homeRegistrationID, awayRegistrationID, matchID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, matchID int, homeScore, awayScore int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournament_matches SET home_score = $1, away_score = $2, status = $3 WHERE id = $4`,
		homeScore, awayScore, status, matchID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, matchID int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournament_matches SET status = $1 WHERE id = $2`, status, matchID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateConfirmedMatch(ctx context.Context, exec SQLExecutor, matchID int, confirmedMatchID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournament_matches SET confirmed_match_id = $1 WHERE id = $2`, confirmedMatchID, matchID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "tournament_matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "tournament_matches_home_registration_id_fkey", "tournament_matches_away_registration_id_fkey":
			return ErrMatchRegistrationInvalid
		}
	}
	return err
}
