package services

import "errors"

// Sentinel errors shared across services and the HTTP mapping layer. The
// four families line up with handler status codes: not-found, forbidden,
// conflict, invalid-input.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrVenueNotFound      = errors.New("venue not found")

	// Permission
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrNotTournamentOwner   = errors.New("only the tournament organizer can perform this action")
	ErrNotTeamOwner         = errors.New("only the team owner can perform this action")

	// Conflicts
	ErrUsernameConflict        = errors.New("username is already taken")
	ErrEmailConflict           = errors.New("email address is already in use")
	ErrTeamNameConflict        = errors.New("team name is already in use")
	ErrRegistrationConflict    = errors.New("team is already registered for this tournament")
	ErrFixtureAlreadyGenerated = errors.New("fixture has already been generated for this tournament")
	ErrRegistrationStillOpen   = errors.New("tournament registration is still open")
	ErrMatchNotResolvable      = errors.New("match is not in a state that accepts a result")
	ErrMatchAlreadyCompleted   = errors.New("match result has already been recorded")
	ErrTournamentHasMatches    = errors.New("tournament already has matches")

	// Invalid input
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrUnsupportedFormat      = errors.New("unsupported tournament format")
	ErrNoTeamsRegistered      = errors.New("no teams registered for this tournament")
	ErrNotEnoughTeams         = errors.New("not enough teams for this tournament format")
	ErrNegativeScore          = errors.New("scores must be non-negative")
	ErrMatchUnresolved        = errors.New("match slots are not resolved yet")
	ErrVenueHoursUnavailable  = errors.New("venue is not open at the scheduled time")
	ErrRegistrationClosed     = errors.New("tournament registration is closed")
)
