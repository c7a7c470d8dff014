package services

import (
	"wonderchain/internal/app/deps"
	drl "wonderchain/internal/core/domain/rate_limiter"
	"wonderchain/internal/core/services"
	"wonderchain/internal/core/services/auth"
	createplace "wonderchain/internal/core/services/create_place"
	getuserbysessiontoken "wonderchain/internal/core/services/get_user_by_session_token"
	listplaces "wonderchain/internal/core/services/list_places"
	locatebyip "wonderchain/internal/core/services/locate_by_ip"
	loginwithemail "wonderchain/internal/core/services/log_in_with_email"
	logout "wonderchain/internal/core/services/log_out"
	ratelimiting "wonderchain/internal/core/services/rate_limiting"
	requestpasswordreset "wonderchain/internal/core/services/request_password_reset"
	resetpassword "wonderchain/internal/core/services/reset_password"
	updateplacestatus "wonderchain/internal/core/services/update_place_status"
)

type Services struct {
	RequestPasswordReset  services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	ResetPassword         services.Service[resetpassword.Input, resetpassword.Result]
	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	ListPlaces        services.Service[listplaces.Input, listplaces.Result]
	CreatePlace       services.Service[createplace.Input, createplace.Result]
	UpdatePlaceStatus services.Service[updateplacestatus.Input, updateplacestatus.Result]

	LocateByIP services.Service[locatebyip.Input, locatebyip.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RequestPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestpasswordreset.New(
			deps.Logger,
			deps.UserRepository,
			deps.UnitOfWork,
			deps.PasswordResetSecretGenerator,
			deps.Notifier,
			requestpasswordreset.Settings{
				ValidFor:      deps.Config.PasswordResetValidDuration,
				ResetPageURL:  deps.Config.PasswordResetBaseURL,
				NotifyTimeout: deps.Config.NotifierTimeout,
			},
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordResetTokenRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.UserSessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(),
	)

	s.ListPlaces = listplaces.New(
		deps.Logger,
		deps.PlaceRepository,
	)
	s.CreatePlace = auth.WithAuthentication(
		deps.SessionRepository,
		createplace.New(
			deps.Logger,
			deps.PlaceRepository,
			deps.Now,
		),
	)
	s.UpdatePlaceStatus = auth.WithAuthentication(
		deps.SessionRepository,
		updateplacestatus.New(
			deps.Logger,
			deps.PlaceRepository,
			deps.PlaceChangePublisher,
			deps.Now,
		),
	)

	s.LocateByIP = locatebyip.New(
		deps.Logger,
		deps.IPLocator,
	)

	return s
}
