package routes

import (
	"net/http"

	"github.com/Surabhi11/fantasy-cricket/handlers"
	"github.com/Surabhi11/fantasy-cricket/middleware"
	"github.com/Surabhi11/fantasy-cricket/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Cricket    *handlers.CricketHandler
	Contest    *handlers.ContestHandler
	Engagement *handlers.EngagementHandler
	User       *handlers.UserHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

func SetupRoutes(h Handlers, authService services.AuthService) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(authService)
	authenticateOptional := middleware.AuthenticateOptional(authService)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", h.Auth.CurrentUser)
			})
		})

		r.Route("/cricket", func(r chi.Router) {
			r.Get("/current-matches", h.Cricket.Matches)
			r.Get("/live-scores", h.Cricket.LiveScores)
			r.Get("/series", h.Cricket.Series)
			r.Get("/match/{matchId}", h.Cricket.MatchDetails)
			r.Get("/squad/{matchId}", h.Cricket.MatchSquad)
			r.Get("/scorecard/{matchId}", h.Cricket.MatchScorecard)
			r.Get("/points/{matchId}", h.Cricket.MatchPoints)
			r.Get("/stats/{matchId}", h.Cricket.MatchStats)
			r.Get("/player/{playerId}", h.Cricket.PlayerDetails)
		})

		r.Route("/contests", func(r chi.Router) {
			r.Get("/match/{matchId}", h.Contest.ListByMatch)
			r.Get("/{contestId}/leaderboard", h.Contest.Leaderboard)
			r.Post("/create", h.Contest.Create)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/{contestId}/join", h.Contest.Join)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/users/me", h.User.Profile)
			r.Post("/users/me/avatar", h.User.UploadAvatar)
			r.Get("/user/teams", h.Contest.MyTeams)
		})

		r.Post("/contact", h.Engagement.Contact)
		r.Post("/newsletter/subscribe", h.Engagement.Subscribe)
		r.With(authenticateOptional).Post("/cookie-consent", h.Engagement.CookieConsent)
	})

	router.Get("/ws/live-scores", h.WebSocket.LiveScores)

	// Every unknown path gets a JSON 404 rather than the default text one.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"the requested resource could not be found"}`))
	})

	return router
}
