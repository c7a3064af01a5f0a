package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound         = errors.New("tournament not found")
	ErrTournamentNameConflict     = errors.New("tournament name conflict for this organizer")
	ErrTournamentOrganizerInvalid = errors.New("invalid organizer reference")
)

type ListTournamentsFilter struct {
	OrganizerID      *int
	Format           *models.TournamentFormat
	RegistrationOpen *bool
	Limit            int
	Offset           int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error)
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	SetRegistrationOpen(ctx context.Context, exec SQLExecutor, id int, open bool) error
	SetEndDate(ctx context.Context, exec SQLExecutor, id int, endDate time.Time) error
	UpdateLogoKey(ctx context.Context, tournamentID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, description, format, organizer_id, start_date, registration_open, logo_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.Format, t.OrganizerID, t.StartDate, t.RegistrationOpen, t.LogoKey,
	).Scan(&t.ID, &t.CreatedAt)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, description, format, organizer_id, start_date, end_date,
		       registration_open, logo_key, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Format, &t.OrganizerID, &t.StartDate,
		&t.EndDate, &t.RegistrationOpen, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]*models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, description, format, organizer_id, start_date, end_date,
		       registration_open, logo_key, created_at
		FROM tournaments
		WHERE 1=1`)

	args := []interface{}{}
	placeholder := 1
	addFilter := func(clause string, value interface{}) {
		queryBuilder.WriteString(" AND " + clause + " $" + strconv.Itoa(placeholder))
		args = append(args, value)
		placeholder++
	}

	if filter.OrganizerID != nil {
		addFilter("organizer_id =", *filter.OrganizerID)
	}
	if filter.Format != nil {
		addFilter("format =", *filter.Format)
	}
	if filter.RegistrationOpen != nil {
		addFilter("registration_open =", *filter.RegistrationOpen)
	}

	queryBuilder.WriteString(" ORDER BY start_date DESC, id DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(placeholder))
		args = append(args, filter.Limit)
		placeholder++
		queryBuilder.WriteString(" OFFSET $" + strconv.Itoa(placeholder))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t := &models.Tournament{}
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Format, &t.OrganizerID, &t.StartDate,
			&t.EndDate, &t.RegistrationOpen, &t.LogoKey, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournaments
		SET name = $1, description = $2, format = $3, start_date = $4, registration_open = $5
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query,
		t.Name, t.Description, t.Format, t.StartDate, t.RegistrationOpen, t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetRegistrationOpen(ctx context.Context, exec SQLExecutor, id int, open bool) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournaments SET registration_open = $1 WHERE id = $2`, open, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetEndDate(ctx context.Context, exec SQLExecutor, id int, endDate time.Time) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE tournaments SET end_date = $1 WHERE id = $2`, endDate, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, tournamentID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET logo_key = $1 WHERE id = $2`, logoKey, tournamentID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "tournaments_organizer_id_name_key":
			return ErrTournamentNameConflict
		case "tournaments_organizer_id_fkey":
			return ErrTournamentOrganizerInvalid
		}
	}
	return err
}
