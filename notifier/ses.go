package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"dailyfeed/logger"
)

// SESAPI is the part of the SES v2 client the transport uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES sends mail through Amazon SES.
type SES struct {
	client SESAPI
	log    logger.Logger
}

// NewSES wraps an SES client.
func NewSES(client SESAPI, log logger.Logger) *SES {
	if log == nil {
		log = logger.NewNop()
	}
	return &SES{client: client, log: log}
}

// NewSESFromConfig builds the transport from a resolved AWS config.
func NewSESFromConfig(cfg aws.Config, log logger.Logger) *SES {
	return NewSES(sesv2.NewFromConfig(cfg), log)
}

func (s *SES) Name() string { return "ses" }

func (s *SES) Deliver(ctx context.Context, msg Message) error {
	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(msg.Text)},
					Html: &sestypes.Content{Data: aws.String(msg.HTML)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", describeAWSError(err))
	}

	s.log.Info("email sent via SES", logger.String("message_id", aws.ToString(out.MessageId)))
	return nil
}
