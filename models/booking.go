package models

import "time"

// Booking reserves a venue for one hour slot on behalf of the organizer.
type Booking struct {
	ID          int       `json:"id" db:"id"`
	VenueID     int       `json:"venue_id" db:"venue_id"`
	OrganizerID int       `json:"organizer_id" db:"organizer_id"`
	Date        time.Time `json:"date" db:"date"`
	Hour        int       `json:"hour" db:"hour"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ConfirmedMatch is the externally visible record of a fully resolved
// fixture match: both teams known and a booking in place.
type ConfirmedMatch struct {
	ID         int       `json:"id" db:"id"`
	BookingID  int       `json:"booking_id" db:"booking_id"`
	HomeTeamID int       `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int       `json:"away_team_id" db:"away_team_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
