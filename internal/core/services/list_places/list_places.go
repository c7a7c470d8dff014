package listplaces

import (
	"context"
	"errors"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/services"
)

type Input struct{}

type Result struct {
	Places []place.Place
}

type service struct {
	log             logging.Logger
	placeRepository place.Repository
}

func New(
	log logging.Logger,
	placeRepository place.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if placeRepository == nil {
		panic(e.NewNilArgumentError("placeRepository"))
	}
	return &service{
		log:             log,
		placeRepository: placeRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	places, err := s.placeRepository.ListPublished(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list published places.", logging.Entry("err", err))
		return result, err
	}
	return Result{Places: places}, nil
}
