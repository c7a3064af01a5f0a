package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dastan11/league-fixtures/handlers"
	"github.com/Dastan11/league-fixtures/middleware"
	"github.com/Dastan11/league-fixtures/models"
	"github.com/Dastan11/league-fixtures/services"
)

func SetupRoutes(
	router *chi.Mux,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	tournamentHandler *handlers.TournamentHandler,
	fixtureHandler *handlers.FixtureHandler,
	venueHandler *handlers.VenueHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticated := middleware.Authenticate(authService)
	organizersOnly := middleware.Authorize(models.RoleOrganizer)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.RegisterHandler)
		r.Post("/login", authHandler.LoginHandler)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListHandler)
		r.Get("/{teamID}", teamHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", teamHandler.CreateHandler)
			r.Put("/{teamID}", teamHandler.RenameHandler)
			r.Delete("/{teamID}", teamHandler.DeleteHandler)
			r.Post("/{teamID}/logo", teamHandler.UploadLogoHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/registrations", tournamentHandler.ListRegistrationsHandler)
		r.Get("/{tournamentID}/fixture", fixtureHandler.GetFixtureHandler)
		r.Get("/{tournamentID}/standings", fixtureHandler.StandingsHandler)
		r.Get("/{tournamentID}/statistics", tournamentHandler.StatisticsHandler)

		// Team owners enter their teams while registration is open.
		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/{tournamentID}/registrations", tournamentHandler.RegisterTeamHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(organizersOnly)

			r.Post("/", tournamentHandler.CreateHandler)
			r.Patch("/{tournamentID}", tournamentHandler.UpdateHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogoHandler)
			r.Post("/{tournamentID}/close-registration", tournamentHandler.CloseRegistrationHandler)
			r.Post("/{tournamentID}/fixture", fixtureHandler.GenerateHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(authenticated)
		r.Use(organizersOnly)

		r.Put("/{matchID}/result", fixtureHandler.UpdateResultHandler)
		r.Post("/{matchID}/cancel", fixtureHandler.CancelHandler)
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.ListActiveHandler)
		r.Get("/{venueID}", venueHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(organizersOnly)

			r.Post("/", venueHandler.CreateHandler)
			r.Put("/{venueID}/schedule", venueHandler.SetScheduleHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticated)
		r.Use(organizersOnly)
		r.Get("/bookings", venueHandler.ListBookingsHandler)
	})
}
