package updateplacestatus

import (
	"context"
	"errors"
	"time"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
	"wonderchain/internal/core/services/auth"
)

type Input struct {
	User    user.User
	PlaceID place.ID
	Status  place.Status
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Place place.Place
}

type service struct {
	log             logging.Logger
	placeRepository place.Repository
	publisher       place.ChangePublisher
	now             func() time.Time
}

func New(
	log logging.Logger,
	placeRepository place.Repository,
	publisher place.ChangePublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if placeRepository == nil {
		panic(e.NewNilArgumentError("placeRepository"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		placeRepository: placeRepository,
		publisher:       publisher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	current, err := s.placeRepository.GetByID(ctx, input.PlaceID)
	if errors.Is(err, context.Canceled) || errors.Is(err, place.ErrPlaceDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get place.",
			logging.Entry("placeId", input.PlaceID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if current.Status == input.Status {
		return Result{Place: current}, nil
	}

	now := s.now()
	updated, err := s.placeRepository.SetStatus(ctx, input.PlaceID, input.Status, now)
	if errors.Is(err, context.Canceled) || errors.Is(err, place.ErrPlaceDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update place status.",
			logging.Entry("placeId", input.PlaceID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Place status has been updated.",
		logging.Entry("placeId", updated.ID),
		logging.Entry("status", updated.Status.String()),
		logging.Entry("userId", input.User.ID),
	)

	kind := place.ChangeUnpublished
	if updated.IsPublished() {
		kind = place.ChangePublished
	}
	err = s.publisher.PublishChange(ctx, place.Change{
		PlaceID: updated.ID,
		Slug:    updated.Slug,
		Kind:    kind,
		At:      now,
	})
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not publish place change.",
			logging.Entry("placeId", updated.ID),
			logging.Entry("err", err),
		)
	}
	return Result{Place: updated}, nil
}
