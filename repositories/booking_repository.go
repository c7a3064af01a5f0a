package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingSlotTaken     = errors.New("venue slot is already booked")
	ErrConfirmedMatchExists = errors.New("confirmed match already exists for booking")
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, exec SQLExecutor, booking *models.Booking) error
	CreateConfirmedMatch(ctx context.Context, exec SQLExecutor, confirmed *models.ConfirmedMatch) error
	ListBookingsByOrganizer(ctx context.Context, organizerID int) ([]*models.Booking, error)
}

type postgresBookingRepository struct {
	db *sql.DB
}

func NewPostgresBookingRepository(db *sql.DB) BookingRepository {
	return &postgresBookingRepository{db: db}
}

func (r *postgresBookingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresBookingRepository) CreateBooking(ctx context.Context, exec SQLExecutor, b *models.Booking) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO bookings (venue_id, organizer_id, date, hour)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, b.VenueID, b.OrganizerID, b.Date, b.Hour).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "bookings_venue_id_date_hour_key" {
			return ErrBookingSlotTaken
		}
		return err
	}
	return nil
}

func (r *postgresBookingRepository) CreateConfirmedMatch(ctx context.Context, exec SQLExecutor, c *models.ConfirmedMatch) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO confirmed_matches (booking_id, home_team_id, away_team_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, c.BookingID, c.HomeTeamID, c.AwayTeamID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "confirmed_matches_booking_id_key" {
			return ErrConfirmedMatchExists
		}
		return err
	}
	return nil
}

func (r *postgresBookingRepository) ListBookingsByOrganizer(ctx context.Context, organizerID int) ([]*models.Booking, error) {
	query := `
		SELECT id, venue_id, organizer_id, date, hour, created_at
		FROM bookings
		WHERE organizer_id = $1
		ORDER BY date, hour`

	rows, err := r.db.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*models.Booking, 0)
	for rows.Next() {
		b := &models.Booking{}
		if err := rows.Scan(&b.ID, &b.VenueID, &b.OrganizerID, &b.Date, &b.Hour, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
