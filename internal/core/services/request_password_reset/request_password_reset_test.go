package requestpasswordreset

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
	c "wonderchain/internal/core/domain/common"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/notification"
	uow "wonderchain/internal/core/domain/unit_of_work"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("user@x.com")
	UNKNOWN_EMAIL = c.Email("nobody@x.com")
	SECRET_1      = "1111111111111111111111111111111111111111111111111111111111111111"
	SECRET_2      = "2222222222222222222222222222222222222222222222222222222222222222"
)

var Now = time.Date(2025, 5, 10, 8, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	UnitOfWork *uow.FakeUnitOfWork
	Generator  *user.FakePasswordResetSecretGenerator
	Notifier   *notification.FakeNotifier
	Settings   Settings
	now        time.Time
	User       user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.Generator = user.NewFakePasswordResetSecretGenerator(SECRET_1, SECRET_2)
	suite.Notifier = notification.NewFakeNotifier()
	suite.now = Now

	resetPage, err := url.Parse("https://wonderchain.test/admin/reset")
	suite.Require().NoError(err)
	suite.Settings = Settings{
		ValidFor:      time.Hour,
		ResetPageURL:  *resetPage,
		NotifyTimeout: 50 * time.Millisecond,
	}

	u, err := suite.UnitOfWork.Context.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    Now.Add(-24 * time.Hour),
	})
	suite.Require().NoError(err)
	suite.User = u
}

func (suite *testSuite) createService() services.Service[Input, Result] {
	return New(
		suite.Logger,
		suite.UnitOfWork.Context.UserRepository,
		suite.UnitOfWork,
		suite.Generator,
		suite.Notifier,
		suite.Settings,
		func() time.Time { return suite.now },
	)
}

func (suite *testSuite) tokens() []user.PasswordResetToken {
	return suite.UnitOfWork.Context.PasswordResetTokenRepository.Tokens
}

func TestRequestPasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTokenIssuedForKnownEmail() {
	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NoError(err)
	assert.True(s.UnitOfWork.Context.WasCommitCalled)

	tokens := s.tokens()
	assert.Len(tokens, 1)
	assert.Equal(s.User.ID, tokens[0].UserID)
	assert.False(tokens[0].Used)
	assert.Equal(Now.Add(time.Hour), tokens[0].ExpiresAt)
	assert.Equal(user.PasswordResetSecret(SECRET_1).Digest(), tokens[0].Digest)
	assert.NotEqual(user.PasswordResetTokenDigest(SECRET_1), tokens[0].Digest)
}

func (s *testSuite) TestUserLockedBeforeInvalidation() {
	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	s.Require().NoError(err)
	s.Require().Equal([]user.ID{s.User.ID}, s.UnitOfWork.Context.UserRepository.LockedIDs)
}

func (s *testSuite) TestResetLinkSent() {
	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NoError(err)
	assert.Equal(1, s.Notifier.SentCount())

	message := s.Notifier.LastSent()
	assert.Equal(string(EMAIL), message.To)
	assert.Equal(EmailSubject, message.Subject)
	assert.Contains(message.HTMLBody, "https://wonderchain.test/admin/reset?token="+SECRET_1)
	assert.Contains(message.HTMLBody, "1 hour")
	assert.Contains(message.HTMLBody, "2025-05-10 09:30:00")
}

func (s *testSuite) TestUnknownEmail() {
	_, err := s.createService().Run(context.Background(), Input{Email: UNKNOWN_EMAIL})

	assert := s.Require()
	assert.NoError(err)
	assert.Empty(s.tokens())
	assert.Equal(0, s.UnitOfWork.BeginCount)
	assert.Equal(0, s.Notifier.SentCount())
}

func (s *testSuite) TestEmailIsMatchedExactly() {
	_, err := s.createService().Run(context.Background(), Input{Email: c.Email("USER@x.com")})

	assert := s.Require()
	assert.NoError(err)
	assert.Empty(s.tokens())
}

func (s *testSuite) TestMalformedEmailDoesNotTouchStorage() {
	s.UnitOfWork.Context.UserRepository.ReturnError = true

	for _, email := range []string{"", "a", "ab"} {
		_, err := s.createService().Run(context.Background(), Input{Email: c.Email(email)})
		s.Require().NoError(err)
	}

	assert := s.Require()
	assert.Empty(s.tokens())
	assert.Equal(0, s.UnitOfWork.BeginCount)
	assert.Equal(0, s.Notifier.SentCount())
}

func (s *testSuite) TestPreviousTokenInvalidated() {
	service := s.createService()

	_, err := service.Run(context.Background(), Input{Email: EMAIL})
	s.Require().NoError(err)
	s.now = Now.Add(10 * time.Minute)
	_, err = service.Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NoError(err)
	tokens := s.tokens()
	assert.Len(tokens, 2)
	assert.True(tokens[0].Used)
	assert.False(tokens[1].Used)
	assert.Equal(user.PasswordResetSecret(SECRET_2).Digest(), tokens[1].Digest)
	assert.Equal(1, s.UnitOfWork.Context.PasswordResetTokenRepository.UsableCount(s.User.ID, s.now))
}

func (s *testSuite) TestExpiredTokenIsLeftIntact() {
	service := s.createService()

	_, err := service.Run(context.Background(), Input{Email: EMAIL})
	s.Require().NoError(err)
	s.now = Now.Add(2 * time.Hour)
	_, err = service.Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NoError(err)
	tokens := s.tokens()
	assert.Len(tokens, 2)
	assert.False(tokens[0].Used)
	assert.False(tokens[0].IsUsable(s.now))
	assert.True(tokens[1].IsUsable(s.now))
}

func (s *testSuite) TestNotifierErrorIsSwallowed() {
	s.Notifier.ReturnError = true

	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NoError(err)
	assert.Len(s.tokens(), 1)
	assert.True(s.Logger.HasRecord(logging.ERROR, "Could not send password reset email."))
}

func (s *testSuite) TestHangingNotifierIsBounded() {
	s.Notifier.Block = true

	started := time.Now()
	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NoError(err)
	assert.Less(time.Since(started), 5*time.Second)
	assert.Len(s.tokens(), 1)
}

func (s *testSuite) TestStorageErrorOnCreate() {
	s.UnitOfWork.Context.PasswordResetTokenRepository.ReturnError = true

	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.Error(err)
	assert.True(s.UnitOfWork.Context.WasRollbackCalled)
	assert.False(s.UnitOfWork.Context.WasCommitCalled)
	assert.Equal(0, s.Notifier.SentCount())
}

func (s *testSuite) TestSecretGenerationError() {
	s.Generator.ReturnError = true

	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.Error(err)
	assert.Empty(s.tokens())
	assert.Equal(0, s.Notifier.SentCount())
}

func (s *testSuite) TestSecretIsNotLogged() {
	_, err := s.createService().Run(context.Background(), Input{Email: EMAIL})
	s.Require().NoError(err)

	for _, record := range s.Logger.Logged {
		s.NotContains(record.Msg, SECRET_1)
		for _, entry := range record.Entries {
			if str, ok := entry.Value.(string); ok {
				s.False(strings.Contains(str, SECRET_1), "secret logged under %s", entry.Key)
			}
		}
	}
}

func TestBuildResetURL(t *testing.T) {
	cases := []struct {
		page     string
		expected string
	}{
		{
			page:     "http://localhost:3000/admin/reset",
			expected: "http://localhost:3000/admin/reset?token=" + SECRET_1,
		},
		{
			page:     "https://wonderchain.net/admin/reset?lang=ko",
			expected: "https://wonderchain.net/admin/reset?lang=ko&token=" + SECRET_1,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.page, func(t *testing.T) {
			page, err := url.Parse(testcase.page)
			if err != nil {
				t.Fatal(err)
			}
			actual := BuildResetURL(*page, user.PasswordResetSecret(SECRET_1))
			if actual != testcase.expected {
				t.Fatalf("expected %s, got %s", testcase.expected, actual)
			}
		})
	}
}

func TestFormatValidFor(t *testing.T) {
	cases := map[time.Duration]string{
		time.Hour:        "1 hour",
		2 * time.Hour:    "2 hours",
		30 * time.Minute: "30 minutes",
		time.Minute:      "1 minute",
		90 * time.Minute: "90 minutes",
	}
	for d, expected := range cases {
		if actual := formatValidFor(d); actual != expected {
			t.Fatalf("expected %q for %v, got %q", expected, d, actual)
		}
	}
}
