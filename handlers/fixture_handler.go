package handlers

import (
	"net/http"

	"github.com/Dastan11/league-fixtures/middleware"
	"github.com/Dastan11/league-fixtures/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

// GenerateHandler handles POST /tournaments/{tournamentID}/fixture
func (h *FixtureHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
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

	matches, err := h.fixtureService.GenerateFixture(r.Context(), id, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFixtureHandler handles GET /tournaments/{tournamentID}/fixture
func (h *FixtureHandler) GetFixtureHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.fixtureService.GetFixture(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler handles GET /tournaments/{tournamentID}/standings
func (h *FixtureHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	table, err := h.fixtureService.GetStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateResultHandler handles PUT /matches/{matchID}/result
func (h *FixtureHandler) UpdateResultHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		HomeScore int `json:"home_score" validate:"min=0"`
		AwayScore int `json:"away_score" validate:"min=0"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	match, err := h.fixtureService.UpdateMatchResult(r.Context(), id, userID, input.HomeScore, input.AwayScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelHandler handles POST /matches/{matchID}/cancel
func (h *FixtureHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.fixtureService.CancelMatch(r.Context(), id, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
