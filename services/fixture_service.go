package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dastan11/league-fixtures/fixtures"
	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
	"github.com/Dastan11/league-fixtures/standings"
)

// FixtureService owns the lifecycle of a tournament's match graph: one-shot
// generation with venue/time assignment, result processing with standings
// update and bracket advancement, and read access in (round, match number)
// order.
type FixtureService interface {
	GenerateFixture(ctx context.Context, tournamentID, principalID int) ([]*models.TournamentMatch, error)
	GetFixture(ctx context.Context, tournamentID int) ([]*models.TournamentMatch, error)
	UpdateMatchResult(ctx context.Context, matchID, principalID, homeScore, awayScore int) (*models.TournamentMatch, error)
	CancelMatch(ctx context.Context, matchID, principalID int) error
	GetStandings(ctx context.Context, tournamentID int) ([]*models.TeamRegistration, error)
}

type fixtureService struct {
	tx               repositories.Transactor
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	venueRepo        repositories.VenueRepository
	bookingRepo      repositories.BookingRepository
	order            fixtures.OrderProvider
	logger           *slog.Logger
	now              func() time.Time
}

func NewFixtureService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	venueRepo repositories.VenueRepository,
	bookingRepo repositories.BookingRepository,
	order fixtures.OrderProvider,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		tx:               tx,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		venueRepo:        venueRepo,
		bookingRepo:      bookingRepo,
		order:            order,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *fixtureService) generatorFor(format models.TournamentFormat) (fixtures.Generator, error) {
	switch format {
	case models.FormatRoundRobin:
		return fixtures.NewRoundRobinGenerator(), nil
	case models.FormatSingleElimination:
		return fixtures.NewSingleEliminationGenerator(s.order), nil
	case models.FormatGroupAndKnockout:
		return fixtures.NewGroupStageGenerator(s.order), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (s *fixtureService) GenerateFixture(ctx context.Context, tournamentID, principalID int) ([]*models.TournamentMatch, error) {
	var created []*models.TournamentMatch

	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		tournament, err := s.tournamentRepo.GetByID(ctx, exec, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		if tournament.OrganizerID != principalID {
			return ErrNotTournamentOwner
		}

		existing, err := s.matchRepo.CountByTournament(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrFixtureAlreadyGenerated
		}
		if tournament.RegistrationOpen {
			return ErrRegistrationStillOpen
		}

		registrations, err := s.registrationRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if len(registrations) == 0 {
			return ErrNoTeamsRegistered
		}

		generator, err := s.generatorFor(tournament.Format)
		if err != nil {
			return err
		}
		generated, err := generator.Generate(ctx, fixtures.GenerateParams{
			Tournament:    tournament,
			Registrations: registrations,
		})
		if err != nil {
			if errors.Is(err, fixtures.ErrNotEnoughTeams) || errors.Is(err, fixtures.ErrNotEnoughTeamsForGroups) {
				return fmt.Errorf("%w: %v", ErrNotEnoughTeams, err)
			}
			return err
		}

		venues, err := s.venueRepo.ListActive(ctx, exec)
		if err != nil {
			return err
		}

		matches := buildMatches(tournament, generated)
		scheduleKickoffs(matches, venues, tournament.StartDate)

		if err := s.checkVenueHours(ctx, exec, matches); err != nil {
			return err
		}

		// First pass: persist every node; second pass: wire next-match
		// links once database ids exist for the whole arena.
		for _, m := range matches {
			if err := s.matchRepo.Create(ctx, exec, m); err != nil {
				return err
			}
		}
		for i, gm := range generated {
			if gm.NextIndex == nil {
				continue
			}
			nextID := matches[*gm.NextIndex].ID
			matches[i].NextMatchID = &nextID
			if err := s.matchRepo.UpdateNextMatch(ctx, exec, matches[i].ID, &nextID, gm.HomeSlotNext); err != nil {
				return err
			}
		}

		// Fully resolved matches get their booking and externally visible
		// record up front; matches awaiting a slot materialize later,
		// during advancement.
		registrationsByID := indexRegistrations(registrations)
		for _, m := range matches {
			if !m.Resolved() {
				continue
			}
			if err := s.materializeConfirmedMatch(ctx, exec, tournament, m, registrationsByID); err != nil {
				return err
			}
		}

		s.logger.InfoContext(ctx, "fixture generated",
			slog.Int("tournament_id", tournamentID),
			slog.String("format", string(tournament.Format)),
			slog.Int("matches", len(matches)),
		)
		created = matches
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// checkVenueHours validates that every resolved match falls inside its
// venue's weekly open hours. A gap fails the whole generation.
func (s *fixtureService) checkVenueHours(ctx context.Context, exec repositories.SQLExecutor, matches []*models.TournamentMatch) error {
	for _, m := range matches {
		if !m.Resolved() || m.VenueID == nil || m.ScheduledAt == nil {
			continue
		}
		schedule, err := s.venueRepo.GetOpenHours(ctx, exec, *m.VenueID, m.ScheduledAt.Weekday())
		if err != nil {
			if errors.Is(err, repositories.ErrVenueScheduleNotFound) {
				return fmt.Errorf("%w: venue %d on %s", ErrVenueHoursUnavailable, *m.VenueID, m.ScheduledAt.Weekday())
			}
			return err
		}
		if !schedule.Covers(m.ScheduledAt.Hour()) {
			return fmt.Errorf("%w: venue %d at %02d:00 on %s", ErrVenueHoursUnavailable, *m.VenueID, m.ScheduledAt.Hour(), m.ScheduledAt.Weekday())
		}
	}
	return nil
}

// materializeConfirmedMatch creates the booking and the externally visible
// confirmed-match record for a fully resolved, venued match. Safe to call
// again once the records exist.
func (s *fixtureService) materializeConfirmedMatch(
	ctx context.Context,
	exec repositories.SQLExecutor,
	tournament *models.Tournament,
	match *models.TournamentMatch,
	registrationsByID map[int]*models.TeamRegistration,
) error {
	if match.ConfirmedMatchID != nil {
		return nil
	}
	if match.VenueID == nil || match.ScheduledAt == nil {
		s.logger.WarnContext(ctx, "match resolved but unschedulable, skipping booking",
			slog.Int("match_id", match.ID))
		return nil
	}

	home, ok := registrationsByID[*match.HomeRegistrationID]
	if !ok {
		return fmt.Errorf("registration %d not loaded for match %d", *match.HomeRegistrationID, match.ID)
	}
	away, ok := registrationsByID[*match.AwayRegistrationID]
	if !ok {
		return fmt.Errorf("registration %d not loaded for match %d", *match.AwayRegistrationID, match.ID)
	}

	at := *match.ScheduledAt
	booking := &models.Booking{
		VenueID:     *match.VenueID,
		OrganizerID: tournament.OrganizerID,
		Date:        time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		Hour:        at.Hour(),
	}
	if err := s.bookingRepo.CreateBooking(ctx, exec, booking); err != nil {
		return err
	}
	confirmed := &models.ConfirmedMatch{
		BookingID:  booking.ID,
		HomeTeamID: home.TeamID,
		AwayTeamID: away.TeamID,
	}
	if err := s.bookingRepo.CreateConfirmedMatch(ctx, exec, confirmed); err != nil {
		return err
	}
	if err := s.matchRepo.UpdateConfirmedMatch(ctx, exec, match.ID, confirmed.ID); err != nil {
		return err
	}
	match.ConfirmedMatchID = &confirmed.ID
	return nil
}

func (s *fixtureService) GetFixture(ctx context.Context, tournamentID int) ([]*models.TournamentMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, m := range matches {
		m.DerivedStatus = m.EffectiveStatus(now)
	}
	return matches, nil
}

func (s *fixtureService) UpdateMatchResult(ctx context.Context, matchID, principalID, homeScore, awayScore int) (*models.TournamentMatch, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrNegativeScore
	}

	var updated *models.TournamentMatch
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		tournament, err := s.tournamentRepo.GetByID(ctx, exec, match.TournamentID)
		if err != nil {
			return err
		}
		if tournament.OrganizerID != principalID {
			return ErrNotTournamentOwner
		}

		switch match.Status {
		case models.MatchStatusCompleted:
			return ErrMatchAlreadyCompleted
		case models.MatchStatusCancelled:
			return ErrMatchNotResolvable
		}
		if !match.Resolved() {
			return ErrMatchUnresolved
		}

		if err := s.matchRepo.UpdateResult(ctx, exec, match.ID, homeScore, awayScore, models.MatchStatusCompleted); err != nil {
			return err
		}
		match.HomeScore = &homeScore
		match.AwayScore = &awayScore
		match.Status = models.MatchStatusCompleted

		registrations, err := s.registrationRepo.ListByTournament(ctx, exec, match.TournamentID)
		if err != nil {
			return err
		}
		registrationsByID := indexRegistrations(registrations)

		if err := s.materializeConfirmedMatch(ctx, exec, tournament, match, registrationsByID); err != nil {
			return err
		}

		home := registrationsByID[*match.HomeRegistrationID]
		away := registrationsByID[*match.AwayRegistrationID]
		if home == nil || away == nil {
			return fmt.Errorf("registrations missing for match %d", match.ID)
		}
		standings.ApplyResult(home, away, homeScore, awayScore)
		if err := s.registrationRepo.UpdateStats(ctx, exec, home); err != nil {
			return err
		}
		if err := s.registrationRepo.UpdateStats(ctx, exec, away); err != nil {
			return err
		}

		if err := s.advance(ctx, exec, tournament, match, homeScore, awayScore, registrationsByID); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "match result recorded",
			slog.Int("match_id", match.ID),
			slog.Int("tournament_id", match.TournamentID),
			slog.Int("home_score", homeScore),
			slog.Int("away_score", awayScore),
		)
		updated = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// advance pushes a completed match's consequences through the graph: the
// winner moves into the next elimination slot, or the tournament finishes
// when nothing is left to play.
func (s *fixtureService) advance(
	ctx context.Context,
	exec repositories.SQLExecutor,
	tournament *models.Tournament,
	match *models.TournamentMatch,
	homeScore, awayScore int,
	registrationsByID map[int]*models.TeamRegistration,
) error {
	if !s.isEliminationMatch(tournament, match) {
		// Round-robin play (including the group phase of the hybrid
		// format) has no per-match advancement; a pure round robin
		// finishes once every match is completed.
		if tournament.Format != models.FormatRoundRobin {
			return nil
		}
		incomplete, err := s.matchRepo.CountIncompleteByTournament(ctx, exec, tournament.ID)
		if err != nil {
			return err
		}
		if incomplete == 0 {
			return s.finish(ctx, exec, tournament)
		}
		return nil
	}

	winnerID := winnerRegistrationID(match, homeScore, awayScore)
	if winnerID == nil {
		// Drawn elimination match: result stands, nobody advances.
		s.logger.WarnContext(ctx, "elimination match drawn, no advancement",
			slog.Int("match_id", match.ID))
		return nil
	}

	if match.NextMatchID == nil {
		// The final. Winner is the champion.
		return s.finish(ctx, exec, tournament)
	}

	next, err := s.matchRepo.GetByID(ctx, exec, *match.NextMatchID)
	if err != nil {
		return err
	}
	if match.HomeSlotNext {
		next.HomeRegistrationID = winnerID
	} else {
		next.AwayRegistrationID = winnerID
	}
	if err := s.matchRepo.UpdateSlots(ctx, exec, next.ID, next.HomeRegistrationID, next.AwayRegistrationID); err != nil {
		return err
	}
	if next.Resolved() {
		return s.materializeConfirmedMatch(ctx, exec, tournament, next, registrationsByID)
	}
	return nil
}

// isEliminationMatch reports whether a match takes part in bracket
// advancement. In the hybrid format, group-phase matches live in their own
// match-number blocks and never advance anyone.
func (s *fixtureService) isEliminationMatch(tournament *models.Tournament, match *models.TournamentMatch) bool {
	switch tournament.Format {
	case models.FormatSingleElimination:
		return true
	case models.FormatGroupAndKnockout:
		return match.MatchNumber < fixtures.GroupNumberBlock
	default:
		return false
	}
}

func (s *fixtureService) finish(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament) error {
	endDate := s.now()
	if err := s.tournamentRepo.SetEndDate(ctx, exec, tournament.ID, endDate); err != nil {
		return err
	}
	tournament.EndDate = &endDate
	s.logger.InfoContext(ctx, "tournament finished", slog.Int("tournament_id", tournament.ID))
	return nil
}

func (s *fixtureService) CancelMatch(ctx context.Context, matchID, principalID int) error {
	return s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		tournament, err := s.tournamentRepo.GetByID(ctx, exec, match.TournamentID)
		if err != nil {
			return err
		}
		if tournament.OrganizerID != principalID {
			return ErrNotTournamentOwner
		}
		if match.Status == models.MatchStatusCompleted {
			return ErrMatchAlreadyCompleted
		}
		return s.matchRepo.UpdateStatus(ctx, exec, match.ID, models.MatchStatusCancelled)
	})
}

func (s *fixtureService) GetStandings(ctx context.Context, tournamentID int) ([]*models.TeamRegistration, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	registrations, err := s.registrationRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	standings.Sort(registrations)
	return registrations, nil
}

// winnerRegistrationID returns the strictly higher-scoring side, nil on a
// draw.
func winnerRegistrationID(match *models.TournamentMatch, homeScore, awayScore int) *int {
	switch {
	case homeScore > awayScore:
		return match.HomeRegistrationID
	case awayScore > homeScore:
		return match.AwayRegistrationID
	default:
		return nil
	}
}

func indexRegistrations(registrations []*models.TeamRegistration) map[int]*models.TeamRegistration {
	byID := make(map[int]*models.TeamRegistration, len(registrations))
	for _, r := range registrations {
		byID[r.ID] = r
	}
	return byID
}
