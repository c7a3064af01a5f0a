package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
)

// In-memory fakes backing the service tests. The pass-through transactor
// runs the unit of work directly; fakes ignore the executor argument.

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(ts ...*models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: map[int]*models.Tournament{}}
	for _, t := range ts {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = len(r.tournaments) + 1
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	out := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) SetRegistrationOpen(ctx context.Context, exec repositories.SQLExecutor, id int, open bool) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.RegistrationOpen = open
	return nil
}

func (r *fakeTournamentRepo) SetEndDate(ctx context.Context, exec repositories.SQLExecutor, id int, endDate time.Time) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.EndDate = &endDate
	return nil
}

func (r *fakeTournamentRepo) UpdateLogoKey(ctx context.Context, tournamentID int, logoKey *string) error {
	t, ok := r.tournaments[tournamentID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeRegistrationRepo struct {
	registrations map[int]*models.TeamRegistration
}

func newFakeRegistrationRepo(regs ...*models.TeamRegistration) *fakeRegistrationRepo {
	r := &fakeRegistrationRepo{registrations: map[int]*models.TeamRegistration{}}
	for _, reg := range regs {
		r.registrations[reg.ID] = reg
	}
	return r
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *models.TeamRegistration) error {
	for _, existing := range r.registrations {
		if existing.TournamentID == reg.TournamentID && existing.TeamID == reg.TeamID {
			return repositories.ErrRegistrationConflict
		}
	}
	reg.ID = len(r.registrations) + 1
	r.registrations[reg.ID] = reg
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.TeamRegistration, error) {
	reg, ok := r.registrations[id]
	if !ok {
		return nil, repositories.ErrRegistrationNotFound
	}
	return reg, nil
}

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.TeamRegistration, error) {
	out := make([]*models.TeamRegistration, 0)
	for _, reg := range r.registrations {
		if reg.TournamentID == tournamentID {
			out = append(out, reg)
		}
	}
	// Stable order by id, matching the SQL repository.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRegistrationRepo) UpdateStats(ctx context.Context, exec repositories.SQLExecutor, reg *models.TeamRegistration) error {
	if _, ok := r.registrations[reg.ID]; !ok {
		return repositories.ErrRegistrationNotFound
	}
	r.registrations[reg.ID] = reg
	return nil
}

func (r *fakeRegistrationRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	regs, _ := r.ListByTournament(ctx, exec, tournamentID)
	return len(regs), nil
}

type fakeMatchRepo struct {
	matches map[int]*models.TournamentMatch
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[int]*models.TournamentMatch{}, nextID: 1}
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.TournamentMatch) error {
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	r.matches[m.ID] = m
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.TournamentMatch, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.TournamentMatch, error) {
	out := make([]*models.TournamentMatch, 0)
	for id := 1; id < r.nextID; id++ {
		if m, ok := r.matches[id]; ok && m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) CountByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	ms, _ := r.ListByTournament(ctx, exec, tournamentID)
	return len(ms), nil
}

func (r *fakeMatchRepo) CountIncompleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	ms, _ := r.ListByTournament(ctx, exec, tournamentID)
	count := 0
	for _, m := range ms {
		if m.Status != models.MatchStatusCompleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeMatchRepo) UpdateNextMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int, nextMatchID *int, homeSlotNext bool) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.NextMatchID = nextMatchID
	m.HomeSlotNext = homeSlotNext
	return nil
}

func (r *fakeMatchRepo) UpdateSlots(ctx context.Context, exec repositories.SQLExecutor, matchID int, homeRegistrationID, awayRegistrationID *int) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.HomeRegistrationID = homeRegistrationID
	m.AwayRegistrationID = awayRegistrationID
	return nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, matchID int, homeScore, awayScore int, status models.MatchStatus) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.Status = status
	return nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, matchID int, status models.MatchStatus) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeMatchRepo) UpdateConfirmedMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int, confirmedMatchID int) error {
	m, ok := r.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.ConfirmedMatchID = &confirmedMatchID
	return nil
}

type fakeVenueRepo struct {
	venues    []*models.Venue
	schedules map[int]map[time.Weekday]*models.VenueSchedule
}

func newFakeVenueRepo(venues ...*models.Venue) *fakeVenueRepo {
	return &fakeVenueRepo{
		venues:    venues,
		schedules: map[int]map[time.Weekday]*models.VenueSchedule{},
	}
}

// openAllWeek gives a venue the same open window every day of the week.
func (r *fakeVenueRepo) openAllWeek(venueID, openHour, closeHour int) {
	days := map[time.Weekday]*models.VenueSchedule{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = &models.VenueSchedule{
			VenueID:   venueID,
			DayOfWeek: d,
			OpenHour:  openHour,
			CloseHour: closeHour,
		}
	}
	r.schedules[venueID] = days
}

func (r *fakeVenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	venue.ID = len(r.venues) + 1
	r.venues = append(r.venues, venue)
	return nil
}

func (r *fakeVenueRepo) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	for _, v := range r.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, repositories.ErrVenueNotFound
}

func (r *fakeVenueRepo) ListActive(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Venue, error) {
	out := make([]*models.Venue, 0)
	for _, v := range r.venues {
		if v.Active {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVenueRepo) GetOpenHours(ctx context.Context, exec repositories.SQLExecutor, venueID int, day time.Weekday) (*models.VenueSchedule, error) {
	days, ok := r.schedules[venueID]
	if !ok {
		return nil, repositories.ErrVenueScheduleNotFound
	}
	s, ok := days[day]
	if !ok {
		return nil, repositories.ErrVenueScheduleNotFound
	}
	return s, nil
}

func (r *fakeVenueRepo) ReplaceSchedule(ctx context.Context, venueID int, schedule []models.VenueSchedule) error {
	days := map[time.Weekday]*models.VenueSchedule{}
	for i := range schedule {
		s := schedule[i]
		days[s.DayOfWeek] = &s
	}
	r.schedules[venueID] = days
	return nil
}

type fakeBookingRepo struct {
	bookings  []*models.Booking
	confirmed []*models.ConfirmedMatch
	taken     map[string]bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{taken: map[string]bool{}}
}

func slotKey(b *models.Booking) string {
	return fmt.Sprintf("%d/%s/%02d", b.VenueID, b.Date.Format("2006-01-02"), b.Hour)
}

func (r *fakeBookingRepo) CreateBooking(ctx context.Context, exec repositories.SQLExecutor, b *models.Booking) error {
	key := slotKey(b)
	if r.taken[key] {
		return repositories.ErrBookingSlotTaken
	}
	r.taken[key] = true
	b.ID = len(r.bookings) + 1
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) CreateConfirmedMatch(ctx context.Context, exec repositories.SQLExecutor, c *models.ConfirmedMatch) error {
	c.ID = len(r.confirmed) + 1
	r.confirmed = append(r.confirmed, c)
	return nil
}

func (r *fakeBookingRepo) ListBookingsByOrganizer(ctx context.Context, organizerID int) ([]*models.Booking, error) {
	out := make([]*models.Booking, 0)
	for _, b := range r.bookings {
		if b.OrganizerID == organizerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: map[int]*models.Team{}}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = len(r.teams) + 1
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) List(ctx context.Context, limit, offset int) ([]*models.Team, error) {
	out := make([]*models.Team, 0, len(r.teams))
	for id := 1; id <= len(r.teams); id++ {
		if t, ok := r.teams[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	t, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
