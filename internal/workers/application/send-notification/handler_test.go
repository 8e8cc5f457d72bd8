package sendnotification

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/models"
)

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-123")}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func createHandler(t *testing.T, cfg *Config, email *mockSES, sms *mockSNS) *Handler {
	if cfg == nil {
		cfg = &Config{
			Timeout:            5 * time.Second,
			SenderAddress:      "credentialing@example.com",
			SMSEnabled:         true,
			SMSImpactThreshold: models.NetworkImpactHigh,
		}
	}
	return NewHandler(cfg, email, sms, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func TestHandler_Execute_SendsEmail(t *testing.T) {
	email := &mockSES{}
	handler := createHandler(t, nil, email, &mockSNS{})

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		ProviderName:  "Dr. Sarah Chen",
		Recipient:     "jordan.reyes@example.com",
		Event:         "status_changed",
		NewStatus:     models.StatusCommitteeReview,
	})
	require.NoError(t, err)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
	assert.Equal(t, "msg-123", output.EmailMessageID)
	assert.NotEmpty(t, output.NotificationID)

	require.Len(t, email.inputs, 1)
	sent := email.inputs[0]
	assert.Equal(t, "credentialing@example.com", *sent.Source)
	assert.Equal(t, []string{"jordan.reyes@example.com"}, sent.Destination.ToAddresses)
	assert.Contains(t, *sent.Message.Subject.Data, "APP-001")
	assert.Contains(t, *sent.Message.Body.Text.Data, "Dr. Sarah Chen")
}

func TestHandler_Execute_HighImpactAlsoSMS(t *testing.T) {
	sms := &mockSNS{}
	handler := createHandler(t, nil, &mockSES{}, sms)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		ProviderName:  "Dr. Sarah Chen",
		Recipient:     "jordan.reyes@example.com",
		Phone:         "+15555550100",
		Event:         "committee_decision",
		NewStatus:     models.StatusApproved,
		NetworkImpact: models.NetworkImpactHigh,
	})
	require.NoError(t, err)

	assert.True(t, output.SMSSent)
	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+15555550100", *sms.inputs[0].PhoneNumber)
}

func TestHandler_Execute_LowImpactNoSMS(t *testing.T) {
	sms := &mockSNS{}
	handler := createHandler(t, nil, &mockSES{}, sms)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		ProviderName:  "Dr. Amit Patel",
		Recipient:     "casey.morgan@example.com",
		Phone:         "+15555550100",
		Event:         "status_changed",
		NetworkImpact: models.NetworkImpactLow,
	})
	require.NoError(t, err)

	assert.False(t, output.SMSSent)
	assert.Empty(t, sms.inputs)
}

func TestHandler_Execute_SMSFailureDoesNotFailJob(t *testing.T) {
	sms := &mockSNS{err: assert.AnError}
	handler := createHandler(t, nil, &mockSES{}, sms)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		ProviderName:  "Dr. Sarah Chen",
		Recipient:     "jordan.reyes@example.com",
		Phone:         "+15555550100",
		Event:         "committee_decision",
		NetworkImpact: models.NetworkImpactHigh,
	})
	require.NoError(t, err)

	assert.True(t, output.EmailSent)
	assert.False(t, output.SMSSent)
}

func TestHandler_Execute_EmailFailure(t *testing.T) {
	handler := createHandler(t, nil, &mockSES{err: assert.AnError}, &mockSNS{})

	_, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		Recipient:     "jordan.reyes@example.com",
		Event:         "status_changed",
	})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestHandler_Execute_InvalidRecipient(t *testing.T) {
	handler := createHandler(t, nil, &mockSES{}, &mockSNS{})

	for _, addr := range []string{"", "not-an-email", "a@b", "@example.com"} {
		_, err := handler.Execute(context.Background(), &Input{Recipient: addr})
		assert.ErrorIs(t, err, ErrInvalidRecipient, "address %q", addr)
	}
}

func TestHandler_Execute_SMSDisabled(t *testing.T) {
	cfg := &Config{
		Timeout:            5 * time.Second,
		SenderAddress:      "credentialing@example.com",
		SMSEnabled:         false,
		SMSImpactThreshold: models.NetworkImpactHigh,
	}
	sms := &mockSNS{}
	handler := createHandler(t, cfg, &mockSES{}, sms)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID: "APP-001",
		Recipient:     "jordan.reyes@example.com",
		Phone:         "+15555550100",
		Event:         "status_changed",
		NetworkImpact: models.NetworkImpactHigh,
	})
	require.NoError(t, err)
	assert.False(t, output.SMSSent)
	assert.Empty(t, sms.inputs)
}
