package email

import (
	"context"
	"wonderchain/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender string
}

// NewEmailSender sends every message exactly once. The retryer of awsConfig
// is replaced, so a failed send is never repeated.
func NewEmailSender(awsConfig aws.Config, sender string) *EmailSender {
	return &EmailSender{
		ses: ses.NewFromConfig(awsConfig, func(o *ses.Options) {
			o.Retryer = aws.NopRetryer{}
		}),
		sender: sender,
	}
}

func (s *EmailSender) Send(ctx context.Context, message notification.Message) error {
	_, err := s.ses.SendEmail(ctx, s.buildInput(message))
	return err
}

func (s *EmailSender) buildInput(message notification.Message) *ses.SendEmailInput {
	return &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{message.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String(charset),
				Data:    aws.String(message.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String(charset),
					Data:    aws.String(message.HTMLBody),
				},
			},
		},
	}
}

// Disabled is used when no sender address is configured.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) Send(ctx context.Context, message notification.Message) error {
	return notification.ErrNotConfigured
}
