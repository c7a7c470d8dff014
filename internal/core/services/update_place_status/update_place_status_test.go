package updateplacestatus

import (
	"context"
	"testing"
	"time"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2025, 5, 10, 8, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Repository *place.FakeRepository
	Publisher  *place.FakeChangePublisher
	Service    services.Service[Input, Result]
	Place      place.Place
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repository = place.NewFakeRepository()
	suite.Publisher = place.NewFakeChangePublisher()
	suite.Service = New(suite.Logger, suite.Repository, suite.Publisher, func() time.Time { return Now })

	p, err := suite.Repository.Create(context.Background(), place.CreateInput{
		Slug:        "bukchon",
		Name:        "Bukchon Hanok Village",
		Coordinates: place.Coordinates{Latitude: 37.5826, Longitude: 126.9830},
		Status:      place.StatusDraft,
		CreatedAt:   Now.Add(-time.Hour),
	})
	suite.Require().NoError(err)
	suite.Place = p
}

func TestUpdatePlaceStatusService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestPublish() {
	result, err := s.Service.Run(context.Background(), Input{
		User:    user.User{ID: 1},
		PlaceID: s.Place.ID,
		Status:  place.StatusPublished,
	})

	assert := s.Require()
	assert.NoError(err)
	assert.True(result.Place.IsPublished())
	assert.Equal(Now, result.Place.UpdatedAt)
	assert.Len(s.Publisher.Published, 1)
	assert.Equal(place.ChangePublished, s.Publisher.Published[0].Kind)
	assert.Equal(place.Slug("bukchon"), s.Publisher.Published[0].Slug)
}

func (s *testSuite) TestUnpublish() {
	_, err := s.Service.Run(context.Background(), Input{PlaceID: s.Place.ID, Status: place.StatusPublished})
	s.Require().NoError(err)

	result, err := s.Service.Run(context.Background(), Input{PlaceID: s.Place.ID, Status: place.StatusDraft})

	assert := s.Require()
	assert.NoError(err)
	assert.False(result.Place.IsPublished())
	assert.Len(s.Publisher.Published, 2)
	assert.Equal(place.ChangeUnpublished, s.Publisher.Published[1].Kind)
}

func (s *testSuite) TestSameStatusPublishesNothing() {
	result, err := s.Service.Run(context.Background(), Input{PlaceID: s.Place.ID, Status: place.StatusDraft})

	s.Require().NoError(err)
	s.Require().Equal(s.Place.UpdatedAt, result.Place.UpdatedAt)
	s.Require().Empty(s.Publisher.Published)
}

func (s *testSuite) TestPlaceDoesNotExist() {
	_, err := s.Service.Run(context.Background(), Input{PlaceID: place.ID(404), Status: place.StatusPublished})

	s.Require().ErrorIs(err, place.ErrPlaceDoesNotExist)
	s.Require().Empty(s.Publisher.Published)
}

func (s *testSuite) TestPublisherErrorIsNotFatal() {
	s.Publisher.ReturnError = true

	result, err := s.Service.Run(context.Background(), Input{PlaceID: s.Place.ID, Status: place.StatusPublished})

	s.Require().NoError(err)
	s.Require().True(result.Place.IsPublished())
	s.Require().True(s.Logger.HasRecord(logging.WARNING, "Could not publish place change."))
}
