package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type sesEmailService struct {
	client    *sesv2.Client
	from      string
	replyTo   string
	clientURL string
}

// NewSESEmailService builds an EmailService on top of Amazon SES. Static
// credentials come from config; when accessKey is empty the default AWS
// credential chain is used instead.
func NewSESEmailService(ctx context.Context, region, accessKey, secretKey, fromEmail, replyTo, clientURL string) (EmailService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &sesEmailService{
		client:    sesv2.NewFromConfig(cfg),
		from:      fromEmail,
		replyTo:   replyTo,
		clientURL: clientURL,
	}, nil
}

func (s *sesEmailService) send(to, subject, content string) error {
	_, err := s.client.SendEmail(context.Background(), &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		ReplyToAddresses: []string{s.replyTo},
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(wrapTemplate(content))},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send %q email via SES: %w", subject, err)
	}
	return nil
}

func (s *sesEmailService) SendConfirmationEmail(email, token string) error {
	return s.send(email, confirmationSubject, confirmationBody(s.clientURL, token))
}

func (s *sesEmailService) SendPasswordResetEmail(email, token string) error {
	return s.send(email, passwordResetSubject, passwordResetBody(s.clientURL, token))
}
