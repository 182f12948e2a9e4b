package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestpass/internal/delivery/http/controllers"
	"guestpass/internal/delivery/http/middleware"
	"guestpass/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Attendee-facing routes (submission, lookup, token issuance) are open; the
// front-end channel supplies the owner identity. Check-in and event
// administration require a staff bearer token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	allowedOrigins []string,
	registrations *controllers.RegistrationController,
	events *controllers.EventController,
	checkIns *controllers.CheckInController,
	auth *controllers.AuthController,
) http.Handler {
	staff := middleware.RequireStaff(verifier)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /events", events.List)
	mux.HandleFunc("POST /events", staff(events.Create))
	mux.HandleFunc("PATCH /events/{eventID}/status", staff(events.SetStatus))

	mux.HandleFunc("POST /registrations", registrations.Submit)
	mux.HandleFunc("GET /registrations/{registrationID}", registrations.Get)
	mux.HandleFunc("POST /registrations/{registrationID}/qr", registrations.IssueToken)

	mux.HandleFunc("POST /checkins/scan", staff(checkIns.Scan))

	mux.HandleFunc("POST /auth/login", auth.Login)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux))
}
