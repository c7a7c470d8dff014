package requestpasswordreset

import (
	"context"
	"errors"
	"net/url"
	"time"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/notification"
	uow "wonderchain/internal/core/domain/unit_of_work"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
)

const MinEmailLength = 3

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "request-password-reset::" + string(i.Email)
}

type Result struct{}

type Settings struct {
	// ValidFor is the lifetime of an issued token.
	ValidFor time.Duration
	// ResetPageURL is the page that collects the new password, the secret
	// is appended as the "token" query parameter.
	ResetPageURL url.URL
	// NotifyTimeout bounds the time spent waiting for the notifier.
	NotifyTimeout time.Duration
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	unitOfWork      uow.UnitOfWork
	secretGenerator user.PasswordResetSecretGenerator
	notifier        notification.Notifier
	settings        Settings
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	unitOfWork uow.UnitOfWork,
	secretGenerator user.PasswordResetSecretGenerator,
	notifier notification.Notifier,
	settings Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if secretGenerator == nil {
		panic(e.NewNilArgumentError("secretGenerator"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		unitOfWork:      unitOfWork,
		secretGenerator: secretGenerator,
		notifier:        notifier,
		settings:        settings,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if len(input.Email) < MinEmailLength {
		s.log.Info(ctx, "Password reset requested for a malformed email, skip it.")
		return result, nil
	}

	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.")
		return result, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user for password reset.", logging.Entry("err", err))
		return result, err
	}

	secret, expiresAt, err := s.issueToken(ctx, u)
	if err != nil {
		return result, err
	}

	s.sendResetLink(ctx, u, secret, expiresAt)
	return result, nil
}

func (s *service) issueToken(
	ctx context.Context,
	u user.User,
) (secret user.PasswordResetSecret, expiresAt time.Time, err error) {
	secret, err = s.secretGenerator.GenerateSecret()
	if err != nil {
		s.log.Error(
			ctx,
			"Could not generate password reset secret.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return secret, expiresAt, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return secret, expiresAt, err
	}
	defer uow.Rollback(ctx)

	// Concurrent requests for the same user queue here, so each one sees
	// the token committed by the previous one.
	if err := uow.Users().LockByID(ctx, u.ID); err != nil {
		s.log.Error(
			ctx,
			"Could not lock user for password reset.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return secret, expiresAt, err
	}

	now := s.now()
	invalidated, err := uow.PasswordResetTokens().InvalidateActive(ctx, u.ID, now)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not invalidate active password reset tokens.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return secret, expiresAt, err
	}

	token, err := uow.PasswordResetTokens().Create(ctx, user.CreatePasswordResetTokenInput{
		UserID:    u.ID,
		Digest:    secret.Digest(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.settings.ValidFor),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return secret, expiresAt, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return secret, expiresAt, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("userId", u.ID),
		logging.Entry("tokenId", token.ID),
		logging.Entry("invalidated", invalidated),
		logging.Entry("expiresAt", token.ExpiresAt),
	)
	return secret, token.ExpiresAt, nil
}

// sendResetLink never fails, delivery errors are only logged.
func (s *service) sendResetLink(
	ctx context.Context,
	u user.User,
	secret user.PasswordResetSecret,
	expiresAt time.Time,
) {
	resetURL := BuildResetURL(s.settings.ResetPageURL, secret)
	body, err := renderEmail(resetURL, s.settings.ValidFor, expiresAt)
	if err != nil {
		s.log.Error(ctx, "Could not render password reset email.", logging.Entry("err", err))
		return
	}

	notifyCtx := ctx
	if s.settings.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		notifyCtx, cancel = context.WithTimeout(ctx, s.settings.NotifyTimeout)
		defer cancel()
	}

	err = s.notifier.Send(notifyCtx, notification.Message{
		To:       string(u.Email),
		Subject:  EmailSubject,
		HTMLBody: body,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return
	}

	s.log.Info(ctx, "Password reset email has been sent.", logging.Entry("userId", u.ID))
}

func BuildResetURL(page url.URL, secret user.PasswordResetSecret) string {
	query := page.Query()
	query.Set("token", string(secret))
	page.RawQuery = query.Encode()
	return page.String()
}
