package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"wonderchain/internal/config"
	"wonderchain/internal/core/domain/notification"
	"wonderchain/internal/implementations/email"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// Helpers for setting up Amazon SES: the sender identity must be verified
// before password reset emails can be delivered.
func main() {
	verify := flag.Bool("verify", false, "request verification of AWS_EMAIL_SENDER")
	sendTo := flag.String("send-test", "", "send a test email to this address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}
	if !cfg.IsEmailEnabled() {
		exit(notification.ErrNotConfigured)
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		exit(err)
	}

	switch {
	case *verify:
		VerifySender(awsCfg, cfg.AwsEmailSender)
	case *sendTo != "":
		SendTestEmail(awsCfg, cfg.AwsEmailSender, *sendTo)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func VerifySender(awsCfg aws.Config, sender string) {
	svc := ses.NewFromConfig(awsCfg)

	result, err := svc.VerifyEmailIdentity(
		context.Background(),
		&ses.VerifyEmailIdentityInput{EmailAddress: aws.String(sender)},
	)
	if err != nil {
		exit(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func SendTestEmail(awsCfg aws.Config, sender string, to string) {
	err := email.NewEmailSender(awsCfg, sender).Send(context.Background(), notification.Message{
		To:       to,
		Subject:  "Wonderchain test email",
		HTMLBody: "<p>Email delivery is configured.</p>",
	})
	if err != nil {
		exit(err)
	}

	fmt.Println("Success.")
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
