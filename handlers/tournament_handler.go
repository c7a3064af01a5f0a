package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dastan11/league-fixtures/middleware"
	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/repositories"
	"github.com/Dastan11/league-fixtures/services"
)

type TournamentHandler struct {
	tournamentService   services.TournamentService
	registrationService services.RegistrationService
	statisticsService   services.StatisticsService
}

func NewTournamentHandler(
	tournamentService services.TournamentService,
	registrationService services.RegistrationService,
	statisticsService services.StatisticsService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService:   tournamentService,
		registrationService: registrationService,
		statisticsService:   statisticsService,
	}
}

// CreateHandler handles POST /tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /tournaments/{tournamentID}
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListTournamentsFilter{Limit: 20}
	query := r.URL.Query()

	if s := query.Get("organizer_id"); s != "" {
		if id, err := strconv.Atoi(s); err == nil && id > 0 {
			filter.OrganizerID = &id
		} else {
			badRequestResponse(w, r, errors.New("invalid organizer_id query parameter"))
			return
		}
	}
	if s := query.Get("format"); s != "" {
		format := models.TournamentFormat(s)
		if !format.Valid() {
			badRequestResponse(w, r, errors.New("invalid format query parameter"))
			return
		}
		filter.Format = &format
	}
	if s := query.Get("registration_open"); s != "" {
		open, err := strconv.ParseBool(s)
		if err != nil {
			badRequestResponse(w, r, errors.New("invalid registration_open query parameter"))
			return
		}
		filter.RegistrationOpen = &open
	}
	if s := query.Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			filter.Limit = v
		} else {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
	}
	if s := query.Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			filter.Offset = v
		} else {
			badRequestResponse(w, r, errors.New("invalid offset query parameter"))
			return
		}
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PATCH /tournaments/{tournamentID}
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var patch models.TournamentUpdate
	if err := readJSON(w, r, &patch); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Update(r.Context(), id, userID, patch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.tournamentService.Delete(r.Context(), id, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseRegistrationHandler handles POST /tournaments/{tournamentID}/close-registration
func (h *TournamentHandler) CloseRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.CloseRegistration(r.Context(), id, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogoHandler handles POST /tournaments/{tournamentID}/logo
func (h *TournamentHandler) UploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		badRequestResponse(w, r, errors.New("could not parse multipart form"))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing logo file"))
		return
	}
	defer file.Close()

	tournament, err := h.tournamentService.UploadLogo(r.Context(), id, userID, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterTeamHandler handles POST /tournaments/{tournamentID}/registrations
func (h *TournamentHandler) RegisterTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID int `json:"team_id" validate:"required,min=1"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	registration, err := h.registrationService.RegisterTeam(r.Context(), id, input.TeamID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRegistrationsHandler handles GET /tournaments/{tournamentID}/registrations
func (h *TournamentHandler) ListRegistrationsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	registrations, err := h.registrationService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StatisticsHandler handles GET /tournaments/{tournamentID}/statistics
func (h *TournamentHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	stats, err := h.statisticsService.GetTournamentStatistics(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
