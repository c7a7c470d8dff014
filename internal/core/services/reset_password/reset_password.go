package resetpassword

import (
	"context"
	"errors"
	"time"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/logging"
	uow "wonderchain/internal/core/domain/unit_of_work"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
)

type Input struct {
	Token        user.PasswordResetSecret
	NewPassword  user.RawPassword
	Confirmation c.Optional[user.RawPassword]
}

type Result struct {
	UserID user.ID
}

type service struct {
	log             logging.Logger
	unitOfWork      uow.UnitOfWork
	tokenRepository user.PasswordResetTokenRepository
	passwordHasher  user.PasswordHasher
	now             func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenRepository user.PasswordResetTokenRepository,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		unitOfWork:      unitOfWork,
		tokenRepository: tokenRepository,
		passwordHasher:  passwordHasher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := user.ValidateNewPassword(input.NewPassword); err != nil {
		return result, err
	}
	if input.Confirmation.IsPresent && input.Confirmation.Value != input.NewPassword {
		return result, user.ErrPasswordConfirmationMismatch
	}
	if !input.Token.IsWellFormed() {
		return result, user.ErrInvalidPasswordResetToken
	}

	digest := input.Token.Digest()

	// Hashing is slow, so unknown tokens are rejected before it.
	candidate, err := s.tokenRepository.GetActiveByDigest(ctx, digest, s.now())
	if errors.Is(err, user.ErrInvalidPasswordResetToken) || errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return result, err
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	userID, err := s.redeem(ctx, candidate.UserID, digest, passwordHash)
	if err != nil {
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userId", userID))
	return Result{UserID: userID}, nil
}

func (s *service) redeem(
	ctx context.Context,
	ownerID user.ID,
	digest user.PasswordResetTokenDigest,
	passwordHash user.PasswordHash,
) (userID user.ID, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return userID, err
	}
	defer uow.Rollback(ctx)

	// The user row is locked before the token row, in the same order as
	// token issuing does.
	err = uow.Users().LockByID(ctx, ownerID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(ctx, "Password reset token refers to a missing user.", logging.Entry("userId", ownerID))
		return userID, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		s.log.Error(ctx, "Could not lock user.", logging.Entry("userId", ownerID), logging.Entry("err", err))
		return userID, err
	}

	token, err := uow.PasswordResetTokens().GetActiveByDigestForUpdate(ctx, digest, s.now())
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Password reset token has been redeemed concurrently.")
		return userID, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not lock password reset token.", logging.Entry("err", err))
		return userID, err
	}

	err = uow.Users().SetPassword(ctx, token.UserID, passwordHash)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(ctx, "Password reset token refers to a missing user.", logging.Entry("userId", token.UserID))
		return userID, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userId", token.UserID),
			logging.Entry("err", err),
		)
		return userID, err
	}

	err = uow.PasswordResetTokens().MarkUsed(ctx, token.ID)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Password reset token has been redeemed concurrently.", logging.Entry("tokenId", token.ID))
		return userID, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not mark password reset token as used.",
			logging.Entry("tokenId", token.ID),
			logging.Entry("err", err),
		)
		return userID, err
	}

	deleted, err := uow.Sessions().DeleteByUserID(ctx, token.UserID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete user sessions.",
			logging.Entry("userId", token.UserID),
			logging.Entry("err", err),
		)
		return userID, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return userID, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been redeemed.",
		logging.Entry("tokenId", token.ID),
		logging.Entry("deletedSessions", deleted),
	)
	return token.UserID, nil
}
