// Package mailer is the email-provider collaborator and the composition of
// the two notification emails.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/resend/resend-go/v2"
)

// Attachment is a raw file included with the business notification.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outbound email.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	ReplyTo     string
	Attachments []Attachment
}

// Sender delivers a Message and returns the provider's delivery id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// ResendSender implements Sender on the Resend API.
type ResendSender struct {
	client     *resend.Client
	timeout    time.Duration
	maxRetries int
}

func NewResendSender(apiKey string, timeout time.Duration, maxRetries int) *ResendSender {
	return &ResendSender{
		client:     resend.NewClient(apiKey),
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	for _, att := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Content:     att.Content,
		})
	}

	var id string
	attempt := func() error {
		sent, err := s.client.Emails.SendWithContext(ctx, params)
		if err != nil {
			return fmt.Errorf("resend send: %w", err)
		}
		id = sent.Id
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxRetries)), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		return "", err
	}

	return id, nil
}
