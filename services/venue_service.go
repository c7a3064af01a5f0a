package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
)

type CreateVenueInput struct {
	Name   string `json:"name" validate:"required,min=2,max=150"`
	Active bool   `json:"active"`
}

type VenueScheduleInput struct {
	DayOfWeek int `json:"day_of_week" validate:"min=0,max=6"`
	OpenHour  int `json:"open_hour" validate:"min=0,max=23"`
	CloseHour int `json:"close_hour" validate:"min=1,max=24"`
}

type VenueService interface {
	Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	ListActive(ctx context.Context) ([]*models.Venue, error)
	SetSchedule(ctx context.Context, venueID int, schedule []VenueScheduleInput) error
	ListBookings(ctx context.Context, organizerID int) ([]*models.Booking, error)
}

type venueService struct {
	venueRepo   repositories.VenueRepository
	bookingRepo repositories.BookingRepository
}

func NewVenueService(venueRepo repositories.VenueRepository, bookingRepo repositories.BookingRepository) VenueService {
	return &venueService{venueRepo: venueRepo, bookingRepo: bookingRepo}
}

func (s *venueService) Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error) {
	venue := &models.Venue{
		Name:   input.Name,
		Active: input.Active,
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (s *venueService) ListActive(ctx context.Context) ([]*models.Venue, error) {
	return s.venueRepo.ListActive(ctx, nil)
}

func (s *venueService) SetSchedule(ctx context.Context, venueID int, schedule []VenueScheduleInput) error {
	if _, err := s.GetByID(ctx, venueID); err != nil {
		return err
	}
	rows := make([]models.VenueSchedule, 0, len(schedule))
	for _, in := range schedule {
		if in.CloseHour <= in.OpenHour {
			return fmt.Errorf("%w: close hour must be after open hour", ErrValidationFailed)
		}
		rows = append(rows, models.VenueSchedule{
			VenueID:   venueID,
			DayOfWeek: time.Weekday(in.DayOfWeek),
			OpenHour:  in.OpenHour,
			CloseHour: in.CloseHour,
		})
	}
	return s.venueRepo.ReplaceSchedule(ctx, venueID, rows)
}

func (s *venueService) ListBookings(ctx context.Context, organizerID int) ([]*models.Booking, error) {
	return s.bookingRepo.ListBookingsByOrganizer(ctx, organizerID)
}
