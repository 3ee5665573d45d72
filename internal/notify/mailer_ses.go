package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESClient はAWS SESクライアントのうち送信に必要な操作。
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer はAWS SESを使ったMailerの実装。
type SESMailer struct {
	client SESClient
	from   string
}

// NewSESMailer はSESMailerを生成する。
func NewSESMailer(client SESClient, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

// Send はSES経由でテキストメールを送信する。
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send failed: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Mailer = (*SESMailer)(nil)
