package handlers

import (
	"net/http"

	"github.com/Dastan11/league-fixtures/middleware"
	"github.com/Dastan11/league-fixtures/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// CreateHandler handles POST /venues
func (h *VenueHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	venue, err := h.venueService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /venues/{venueID}
func (h *VenueHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	venue, err := h.venueService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListActiveHandler handles GET /venues
func (h *VenueHandler) ListActiveHandler(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.ListActive(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"venues": venues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetScheduleHandler handles PUT /venues/{venueID}/schedule
func (h *VenueHandler) SetScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Schedule []services.VenueScheduleInput `json:"schedule" validate:"required,dive"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := validateStruct(input); problems != nil {
		failedValidationResponse(w, r, problems)
		return
	}

	if err := h.venueService.SetSchedule(r.Context(), id, input.Schedule); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBookingsHandler handles GET /bookings (the caller's own bookings)
func (h *VenueHandler) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	bookings, err := h.venueService.ListBookings(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bookings": bookings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
