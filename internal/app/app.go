package app

import (
	"fmt"
	"net/http"
	"wonderchain/internal/app/deps"
	"wonderchain/internal/app/services"
	"wonderchain/internal/http/handlers/auth"
	loginwithemail "wonderchain/internal/http/handlers/auth/log_in_with_email"
	logout "wonderchain/internal/http/handlers/auth/log_out"
	"wonderchain/internal/http/handlers/auth/me"
	requestpasswordreset "wonderchain/internal/http/handlers/auth/request_password_reset"
	resetpassword "wonderchain/internal/http/handlers/auth/reset_password"
	locatebyip "wonderchain/internal/http/handlers/geo/locate_by_ip"
	createplace "wonderchain/internal/http/handlers/places/create_place"
	listplaces "wonderchain/internal/http/handlers/places/list_places"
	placeevents "wonderchain/internal/http/handlers/places/place_events"
	updateplacestatus "wonderchain/internal/http/handlers/places/update_place_status"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	requestPasswordReset := requestpasswordreset.New(s.RequestPasswordReset)
	resetPassword := resetpassword.New(s.ResetPassword)

	authRouter := chi.NewRouter()
	authRouter.Use(auth.SetAuthTokenToContext)
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	authRouter.Method(http.MethodPost, "/password_reset/request", requestPasswordReset)
	authRouter.Method(http.MethodPost, "/password_reset", resetPassword)

	apiRouter := chi.NewRouter()
	apiRouter.Method(http.MethodPost, "/auth/request-reset", requestPasswordReset)
	apiRouter.Method(http.MethodPost, "/auth/reset-password", resetPassword)
	apiRouter.Method(http.MethodGet, "/places", listplaces.New(s.ListPlaces))
	apiRouter.Method(http.MethodGet, "/places/events", placeevents.New(deps.Logger, deps.SseServer))
	apiRouter.Method(http.MethodGet, "/geo/ip", locatebyip.New(s.LocateByIP))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.SetAuthTokenToContext)
	adminRouter.Method(http.MethodPost, "/places", createplace.New(s.CreatePlace))
	adminRouter.Method(
		http.MethodPut,
		"/places/{placeID:[0-9]+}/status",
		updateplacestatus.New(s.UpdatePlaceStatus),
	)

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(sentryHandler.Handle)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/api", apiRouter)
	router.Mount("/admin", adminRouter)

	return router
}
