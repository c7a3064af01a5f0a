package services

import (
	"time"

	"github.com/Dastan11/league-fixtures/fixtures"
	"github.com/Dastan11/league-fixtures/models"
)

// Scheduling constants: kickoff at 10:00 on the tournament start date, one
// match every two hours, four matches per day before rolling to the next
// calendar day.
const (
	kickoffHour   = 10
	matchesPerDay = 4
	matchSpacing  = 2 * time.Hour
)

// buildMatches turns generator output into persistable match rows. Next-match
// linkage stays as arena indices until the rows have database ids.
func buildMatches(tournament *models.Tournament, generated []*fixtures.GeneratedMatch) []*models.TournamentMatch {
	matches := make([]*models.TournamentMatch, len(generated))
	for i, gm := range generated {
		matches[i] = &models.TournamentMatch{
			TournamentID:       tournament.ID,
			HomeRegistrationID: gm.HomeRegistrationID,
			AwayRegistrationID: gm.AwayRegistrationID,
			Round:              gm.Round,
			MatchNumber:        gm.MatchNumber,
			Status:             models.MatchStatusScheduled,
			HomeSlotNext:       gm.HomeSlotNext,
		}
	}
	return matches
}

// scheduleKickoffs assigns venues and kickoff times in match order: venues
// wrap modulo the active venue list, kickoffs advance by matchSpacing and
// roll to the next day after matchesPerDay matches. With no active venues
// the matches stay unvenued.
func scheduleKickoffs(matches []*models.TournamentMatch, venues []*models.Venue, startDate time.Time) {
	day0 := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), kickoffHour, 0, 0, 0, startDate.Location())

	for i, m := range matches {
		if len(venues) > 0 {
			venueID := venues[i%len(venues)].ID
			m.VenueID = &venueID
		}
		kickoff := day0.AddDate(0, 0, i/matchesPerDay).Add(time.Duration(i%matchesPerDay) * matchSpacing)
		at := kickoff
		m.ScheduledAt = &at
	}
}
