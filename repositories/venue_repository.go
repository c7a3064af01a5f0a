package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dastan11/league-fixtures/models"
)

var (
	ErrVenueNotFound         = errors.New("venue not found")
	ErrVenueScheduleNotFound = errors.New("venue has no schedule for that day")
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	// ListActive returns active venues in a stable order; the scheduler
	// round-robins matches across this list.
	ListActive(ctx context.Context, exec SQLExecutor) ([]*models.Venue, error)
	GetOpenHours(ctx context.Context, exec SQLExecutor, venueID int, day time.Weekday) (*models.VenueSchedule, error)
	ReplaceSchedule(ctx context.Context, venueID int, schedule []models.VenueSchedule) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, active)
		VALUES ($1, $2)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, venue.Name, venue.Active).
		Scan(&venue.ID, &venue.CreatedAt)
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT id, name, active, created_at FROM venues WHERE id = $1`

	venue := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID, &venue.Name, &venue.Active, &venue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (r *postgresVenueRepository) ListActive(ctx context.Context, exec SQLExecutor) ([]*models.Venue, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, active, created_at FROM venues WHERE active ORDER BY id`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active venues: %w", err)
	}
	defer rows.Close()

	venues := make([]*models.Venue, 0)
	for rows.Next() {
		venue := &models.Venue{}
		if err := rows.Scan(&venue.ID, &venue.Name, &venue.Active, &venue.CreatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, rows.Err()
}

func (r *postgresVenueRepository) GetOpenHours(ctx context.Context, exec SQLExecutor, venueID int, day time.Weekday) (*models.VenueSchedule, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, venue_id, day_of_week, open_hour, close_hour
		FROM venue_schedules
		WHERE venue_id = $1 AND day_of_week = $2`

	s := &models.VenueSchedule{}
	var dayOfWeek int
	err := executor.QueryRowContext(ctx, query, venueID, int(day)).Scan(
		&s.ID, &s.VenueID, &dayOfWeek, &s.OpenHour, &s.CloseHour,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueScheduleNotFound
		}
		return nil, err
	}
	s.DayOfWeek = time.Weekday(dayOfWeek)
	return s, nil
}

func (r *postgresVenueRepository) ReplaceSchedule(ctx context.Context, venueID int, schedule []models.VenueSchedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM venue_schedules WHERE venue_id = $1`, venueID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO venue_schedules (venue_id, day_of_week, open_hour, close_hour)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range schedule {
		if _, err := stmt.ExecContext(ctx, venueID, int(s.DayOfWeek), s.OpenHour, s.CloseHour); err != nil {
			return err
		}
	}
	return tx.Commit()
}
