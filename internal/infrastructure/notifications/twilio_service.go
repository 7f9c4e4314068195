package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/you/bookstore/domain"
	"go.uber.org/zap"
)

// TwilioConfig holds the SMS gateway settings
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	// LogMessageBodies prints message text when running without credentials. Development only.
	LogMessageBodies bool
}

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logBodies  bool
	logger     *zap.Logger
}

// NewTwilioService creates a new Twilio notification service.
// Without a from number, messages are logged instead of sent.
func NewTwilioService(cfg TwilioConfig, logger *zap.Logger) domain.NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: cfg.FromNumber,
		logBodies:  cfg.LogMessageBodies,
		logger:     logger.Named("sms"),
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if to == "" {
		return fmt.Errorf("sms recipient: %w", domain.ErrInvalidInput)
	}

	if t.fromNumber == "" {
		fields := []zap.Field{zap.String("to", to), zap.Int("length", len(message))}
		if t.logBodies {
			fields = append(fields, zap.String("body", message))
		}
		t.logger.Info("sms gateway not configured, message not sent", fields...)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		t.logger.Warn("sms delivery failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		t.logger.Debug("sms queued", zap.String("to", to), zap.String("sid", *resp.Sid))
	}

	return nil
}
