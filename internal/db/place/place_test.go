package place

import (
	"context"
	"testing"
	"time"
	c "wonderchain/internal/core/domain/common"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxPlaceRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxPlaceRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxPlaceRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreate() {
	p := s.createPlace("gyeongbokgung", place.StatusDraft, NOW)

	assert := s.Require()
	assert.NotZero(p.ID)
	assert.Equal(place.Slug("gyeongbokgung"), p.Slug)
	assert.Equal(place.StatusDraft, p.Status)
	assert.Equal(c.NewOptional("Royal palace", true), p.Summary)
	assert.False(p.Description.IsPresent)
	assert.False(p.ImageURL.IsPresent)
	assert.Equal(place.Coordinates{Latitude: 37.5796, Longitude: 126.977}, p.Coordinates)
	assert.True(NOW.Equal(p.UpdatedAt))
}

func (s *testSuite) TestSlugAlreadyExists() {
	s.createPlace("gyeongbokgung", place.StatusDraft, NOW)

	_, err := s.repo.Create(context.Background(), place.CreateInput{
		Slug:      "gyeongbokgung",
		Name:      "Duplicate",
		Status:    place.StatusDraft,
		CreatedAt: NOW,
	})

	s.Require().ErrorIs(err, place.ErrSlugAlreadyExists)
}

func (s *testSuite) TestListPublished() {
	s.createPlace("draft", place.StatusDraft, NOW)
	s.createPlace("older", place.StatusPublished, NOW)
	s.createPlace("newer", place.StatusPublished, NOW.Add(time.Hour))

	places, err := s.repo.ListPublished(context.Background())

	assert := s.Require()
	assert.NoError(err)
	assert.Len(places, 2)
	assert.Equal(place.Slug("newer"), places[0].Slug)
	assert.Equal(place.Slug("older"), places[1].Slug)
}

func (s *testSuite) TestListPublishedEmpty() {
	places, err := s.repo.ListPublished(context.Background())

	s.Require().NoError(err)
	s.Require().NotNil(places)
	s.Require().Empty(places)
}

func (s *testSuite) TestSetStatus() {
	p := s.createPlace("namsan-tower", place.StatusDraft, NOW)
	at := NOW.Add(time.Minute)

	updated, err := s.repo.SetStatus(context.Background(), p.ID, place.StatusPublished, at)

	s.Require().NoError(err)
	s.Require().True(updated.IsPublished())
	s.Require().True(at.Equal(updated.UpdatedAt))

	_, err = s.repo.SetStatus(context.Background(), place.ID(404), place.StatusPublished, at)
	s.Require().ErrorIs(err, place.ErrPlaceDoesNotExist)
}

func (s *testSuite) TestGetByID() {
	p := s.createPlace("bukchon", place.StatusDraft, NOW)

	found, err := s.repo.GetByID(context.Background(), p.ID)
	s.Require().NoError(err)
	s.Require().Equal(p.Slug, found.Slug)

	_, err = s.repo.GetByID(context.Background(), place.ID(404))
	s.Require().ErrorIs(err, place.ErrPlaceDoesNotExist)
}

func (s *testSuite) createPlace(slug place.Slug, status place.Status, at time.Time) place.Place {
	s.T().Helper()
	p, err := s.repo.Create(context.Background(), place.CreateInput{
		Slug:        slug,
		Name:        string(slug),
		Summary:     c.NewOptional("Royal palace", true),
		Coordinates: place.Coordinates{Latitude: 37.5796, Longitude: 126.977},
		Status:      status,
		CreatedAt:   at,
	})
	if err != nil {
		s.FailNow(err.Error())
	}
	return p
}
