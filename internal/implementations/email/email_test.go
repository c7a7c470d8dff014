package email

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"wonderchain/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

type stubSES struct {
	Inputs []*ses.SendEmailInput
	Err    error
}

func (s *stubSES) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	s.Inputs = append(s.Inputs, params)
	if s.Err != nil {
		return nil, s.Err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("message-id")}, nil
}

func TestSend(t *testing.T) {
	assert := require.New(t)
	client := &stubSES{}
	sender := &EmailSender{ses: client, sender: "no-reply@wonderchain.test"}

	err := sender.Send(context.Background(), notification.Message{
		To:       "admin@wonderchain.test",
		Subject:  "Reset your password",
		HTMLBody: "<p>reset</p>",
	})

	assert.NoError(err)
	assert.Len(client.Inputs, 1)
	input := client.Inputs[0]
	assert.Equal("no-reply@wonderchain.test", aws.ToString(input.Source))
	assert.Equal([]string{"admin@wonderchain.test"}, input.Destination.ToAddresses)
	assert.Equal("Reset your password", aws.ToString(input.Message.Subject.Data))
	assert.Equal("<p>reset</p>", aws.ToString(input.Message.Body.Html.Data))
	assert.Nil(input.Message.Body.Text)
}

func TestSendError(t *testing.T) {
	client := &stubSES{Err: errors.New("MessageRejected")}
	sender := &EmailSender{ses: client, sender: "no-reply@wonderchain.test"}

	err := sender.Send(context.Background(), notification.Message{To: "admin@wonderchain.test"})

	require.Error(t, err)
}

func TestDisabled(t *testing.T) {
	err := NewDisabled().Send(context.Background(), notification.Message{To: "admin@wonderchain.test"})

	require.ErrorIs(t, err, notification.ErrNotConfigured)
}

func TestSendIsNotRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		rw.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	awsConfig := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("key", "secret", ""),
		EndpointResolverWithOptions: aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: server.URL}, nil
			},
		),
		Retryer: func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), 3)
		},
	}
	sender := NewEmailSender(awsConfig, "no-reply@wonderchain.test")

	err := sender.Send(context.Background(), notification.Message{
		To:       "admin@wonderchain.test",
		Subject:  "Reset your password",
		HTMLBody: "<p>reset</p>",
	})

	require.Error(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
