package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
	"wonderchain/internal/app/deps"
	"wonderchain/internal/app/services"
	"wonderchain/internal/config"
	c "wonderchain/internal/core/domain/common"
	"wonderchain/internal/core/domain/geo"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/notification"
	"wonderchain/internal/core/domain/place"
	ratelimiter "wonderchain/internal/core/domain/rate_limiter"
	uow "wonderchain/internal/core/domain/unit_of_work"
	"wonderchain/internal/core/domain/user"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = "admin@wonderchain.test"
	OLD_PASSWORD = "old password"
	NEW_PASSWORD = "brand new password"
	SECRET       = "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0"
)

type testSuite struct {
	suite.Suite
	UnitOfWork     *uow.FakeUnitOfWork
	Notifier       *notification.FakeNotifier
	PasswordHasher *user.FakePasswordHasher
	PlacePublisher *place.FakeChangePublisher
	SseServer      *sse.Server
	Now            time.Time
	Router         http.Handler
}

func (suite *testSuite) SetupTest() {
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.Notifier = notification.NewFakeNotifier()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.PlacePublisher = place.NewFakeChangePublisher()
	suite.SseServer = sse.New()
	suite.Now = time.Date(2025, 5, 10, 8, 30, 0, 0, time.UTC)

	hash, err := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	suite.Require().Nil(err)
	suite.UnitOfWork.Context.UserRepository.Users = append(
		suite.UnitOfWork.Context.UserRepository.Users,
		user.User{ID: 1, Email: c.NewEmail(EMAIL), PasswordHash: hash, CreatedAt: suite.Now.Add(-24 * time.Hour)},
	)

	resetPageURL, err := url.Parse("http://localhost:3000/admin/reset")
	suite.Require().Nil(err)

	uowContext := suite.UnitOfWork.Context
	d := &deps.Deps{
		Config: &config.Config{
			AllowedOrigins:             []string{"http://localhost:3000"},
			PasswordResetValidDuration: time.Hour,
			PasswordResetBaseURL:       *resetPageURL,
			NotifierTimeout:            time.Second,
		},
		Logger:                       logging.NewFakeLogger(),
		SseServer:                    suite.SseServer,
		Now:                          func() time.Time { return suite.Now },
		UnitOfWork:                   suite.UnitOfWork,
		UserRepository:               uowContext.UserRepository,
		SessionRepository:            uowContext.SessionRepository,
		PasswordResetTokenRepository: uowContext.PasswordResetTokenRepository,
		PlaceRepository:              uowContext.PlaceRepository,
		RateLimiter:                  ratelimiter.NewFakeRateLimiter(true),
		Notifier:                     suite.Notifier,
		UserSessionTokenGenerator:    user.NewFakeSessionTokenGenerator("session-token"),
		PasswordHasher:               suite.PasswordHasher,
		PasswordResetSecretGenerator: user.NewFakePasswordResetSecretGenerator(SECRET),
		PlaceChangePublisher:         suite.PlacePublisher,
		IPLocator:                    geo.NewFakeLocator(geo.Location{Latitude: 37.56, Longitude: 126.97}),
	}
	suite.Router = NewRouter(d, services.InitServices(d))
}

func (suite *testSuite) TearDownTest() {
	suite.SseServer.Close()
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rw := httptest.NewRecorder()
	suite.Router.ServeHTTP(rw, req)
	return rw
}

func (suite *testSuite) logIn(password string) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, "/auth/login", `{"email":"`+EMAIL+`","password":"`+password+`"}`, "")
}

func (suite *testSuite) TestPasswordResetFlow() {
	assert := suite.Require()

	// Setup
	rw := suite.logIn(OLD_PASSWORD)
	assert.Equal(http.StatusOK, rw.Code)

	// Exercise
	rw = suite.do(http.MethodPost, "/auth/password_reset/request", `{"email":"`+EMAIL+`"}`, "")
	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"ok":true}`, rw.Body.String())
	assert.Equal(1, suite.Notifier.SentCount())
	assert.Contains(suite.Notifier.LastSent().HTMLBody, "token="+SECRET)

	rw = suite.do(
		http.MethodPost,
		"/auth/password_reset",
		`{"token":"`+SECRET+`","password":"`+NEW_PASSWORD+`","passwordConfirmation":"`+NEW_PASSWORD+`"}`,
		"",
	)

	// Verify
	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"ok":true}`, rw.Body.String())

	rw = suite.do(http.MethodGet, "/auth/me", "", "session-token")
	assert.Equal(http.StatusUnauthorized, rw.Code, "sessions must be revoked")

	rw = suite.logIn(OLD_PASSWORD)
	assert.Equal(http.StatusUnauthorized, rw.Code)
	rw = suite.logIn(NEW_PASSWORD)
	assert.Equal(http.StatusOK, rw.Code)

	rw = suite.do(
		http.MethodPost,
		"/auth/password_reset",
		`{"token":"`+SECRET+`","password":"another password"}`,
		"",
	)
	assert.Equal(http.StatusBadRequest, rw.Code)
	assert.JSONEq(`{"ok":false,"message":"Invalid or expired token."}`, rw.Body.String())
}

func (suite *testSuite) TestPasswordResetAliases() {
	assert := suite.Require()

	rw := suite.do(http.MethodPost, "/api/auth/request-reset", `{"email":"nobody@wonderchain.test"}`, "")
	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"ok":true}`, rw.Body.String())
	assert.Equal(0, suite.Notifier.SentCount())

	rw = suite.do(http.MethodPost, "/api/auth/reset-password", `{"token":"`+SECRET+`","password":"1234567"}`, "")
	assert.Equal(http.StatusBadRequest, rw.Code)
	assert.JSONEq(`{"ok":false,"message":"Password must be at least 8 characters."}`, rw.Body.String())
}

func (suite *testSuite) TestExpiredToken() {
	assert := suite.Require()
	rw := suite.do(http.MethodPost, "/auth/password_reset/request", `{"email":"`+EMAIL+`"}`, "")
	assert.Equal(http.StatusOK, rw.Code)

	suite.Now = suite.Now.Add(time.Hour)
	rw = suite.do(http.MethodPost, "/auth/password_reset", `{"token":"`+SECRET+`","password":"`+NEW_PASSWORD+`"}`, "")

	assert.Equal(http.StatusBadRequest, rw.Code)
	assert.JSONEq(`{"ok":false,"message":"Invalid or expired token."}`, rw.Body.String())
}

func (suite *testSuite) TestPlacesLifecycle() {
	assert := suite.Require()
	rw := suite.logIn(OLD_PASSWORD)
	assert.Equal(http.StatusOK, rw.Code)

	rw = suite.do(
		http.MethodPost,
		"/admin/places",
		`{"slug":"old-mill","name":"Old mill","latitude":59.43,"longitude":24.75}`,
		"",
	)
	assert.Equal(http.StatusUnauthorized, rw.Code)

	rw = suite.do(
		http.MethodPost,
		"/admin/places",
		`{"slug":"old-mill","name":"Old mill","latitude":59.43,"longitude":24.75}`,
		"session-token",
	)
	assert.Equal(http.StatusCreated, rw.Code)
	created := struct {
		Place struct {
			ID int64 `json:"id"`
		} `json:"place"`
	}{}
	assert.Nil(json.Unmarshal(rw.Body.Bytes(), &created))

	rw = suite.do(
		http.MethodPost,
		"/admin/places",
		`{"slug":"old-mill","name":"Another mill","latitude":1,"longitude":1}`,
		"session-token",
	)
	assert.Equal(http.StatusConflict, rw.Code)

	rw = suite.do(http.MethodGet, "/api/places", "", "")
	assert.Equal(http.StatusOK, rw.Code)
	assert.JSONEq(`{"type":"FeatureCollection","features":[]}`, rw.Body.String())

	rw = suite.do(
		http.MethodPut,
		"/admin/places/"+strconv.FormatInt(created.Place.ID, 10)+"/status",
		`{"status":"published"}`,
		"session-token",
	)
	assert.Equal(http.StatusOK, rw.Code)
	assert.Len(suite.PlacePublisher.Published, 1)

	rw = suite.do(http.MethodGet, "/api/places", "", "")
	assert.Equal(http.StatusOK, rw.Code)
	assert.Equal("no-store", rw.Header().Get("Cache-Control"))
	assert.Contains(rw.Body.String(), `"slug":"old-mill"`)
}

func (suite *testSuite) TestLocateByIP() {
	assert := suite.Require()

	req := httptest.NewRequest(http.MethodGet, "/api/geo/ip", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rw := httptest.NewRecorder()
	suite.Router.ServeHTTP(rw, req)
	assert.Equal(http.StatusOK, rw.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/geo/ip", nil)
	req.Header.Set("X-Real-IP", "127.0.0.1")
	rw = httptest.NewRecorder()
	suite.Router.ServeHTTP(rw, req)
	assert.Equal(http.StatusNotFound, rw.Code)
	assert.JSONEq(`{"ok":false,"message":"Location unavailable."}`, rw.Body.String())
}

func (suite *testSuite) TestCorsPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/auth/password_reset", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rw := httptest.NewRecorder()

	suite.Router.ServeHTTP(rw, req)

	suite.Equal("http://localhost:3000", rw.Header().Get("Access-Control-Allow-Origin"))
}
