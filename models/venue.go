package models

import "time"

type Venue struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VenueSchedule holds the weekly open hours of a venue for one day of the
// week. Hours are whole-hour boundaries, close exclusive.
type VenueSchedule struct {
	ID        int          `json:"id" db:"id"`
	VenueID   int          `json:"venue_id" db:"venue_id"`
	DayOfWeek time.Weekday `json:"day_of_week" db:"day_of_week"`
	OpenHour  int          `json:"open_hour" db:"open_hour"`
	CloseHour int          `json:"close_hour" db:"close_hour"`
}

// Covers reports whether a match starting at the given hour fits the window.
func (s *VenueSchedule) Covers(hour int) bool {
	return hour >= s.OpenHour && hour < s.CloseHour
}
