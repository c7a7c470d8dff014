package locatebyip

import (
	"context"
	"errors"
	"net"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/geo"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/services"
)

type Input struct {
	IP net.IP
}

type Result struct {
	Location geo.Location
}

type service struct {
	log     logging.Logger
	locator geo.Locator
}

func New(
	log logging.Logger,
	locator geo.Locator,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if locator == nil {
		panic(e.NewNilArgumentError("locator"))
	}
	return &service{
		log:     log,
		locator: locator,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !geo.IsPublic(input.IP) {
		return result, geo.ErrLocationUnavailable
	}

	location, err := s.locator.Locate(ctx, input.IP)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Warning(ctx, "Could not locate IP address.", logging.Entry("err", err))
		return result, geo.ErrLocationUnavailable
	}
	return Result{Location: location}, nil
}
