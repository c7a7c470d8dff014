package createplace

import (
	"context"
	"errors"
	"time"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
	"wonderchain/internal/core/services/auth"
)

type Input struct {
	User        user.User
	Slug        place.Slug
	Name        string
	Summary     c.Optional[string]
	Description c.Optional[string]
	Coordinates place.Coordinates
	ImageURL    c.Optional[string]
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
	now             func() time.Time
}

func New(
	log logging.Logger,
	placeRepository place.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if placeRepository == nil {
		panic(e.NewNilArgumentError("placeRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		placeRepository: placeRepository,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Coordinates.Validate(); err != nil {
		return result, err
	}

	p, err := s.placeRepository.Create(ctx, place.CreateInput{
		Slug:        input.Slug,
		Name:        input.Name,
		Summary:     input.Summary,
		Description: input.Description,
		Coordinates: input.Coordinates,
		ImageURL:    input.ImageURL,
		Status:      place.StatusDraft,
		CreatedAt:   s.now(),
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, place.ErrSlugAlreadyExists) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create place.",
			logging.Entry("slug", input.Slug),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Place has been created.",
		logging.Entry("placeId", p.ID),
		logging.Entry("userId", input.User.ID),
	)
	return Result{Place: p}, nil
}
