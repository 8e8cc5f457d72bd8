package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"credentialing-workers/internal/common/logger"
)

const (
	TaskType = "send-notification"
)

var (
	ErrInvalidRecipient = errors.New("INVALID_INPUT")
	ErrSendFailed       = errors.New("NOTIFICATION_SEND_FAILED")
)

// SESService and SNSService cover the single call each worker makes, so
// tests can substitute fakes without AWS credentials.
type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	email  SESService
	sms    SNSService
	logger logger.Logger
}

func NewHandler(config *Config, email SESService, sms SNSService, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		email:  email,
		sms:    sms,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "NOTIFICATION_SEND_FAILED"
		if errors.Is(err, ErrInvalidRecipient) {
			errorCode = "INVALID_INPUT"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if !isValidEmail(input.Recipient) {
		return nil, fmt.Errorf("%w: invalid recipient address %q", ErrInvalidRecipient, input.Recipient)
	}

	subject, body := h.composeMessage(input)

	output := &Output{
		NotificationID: uuid.New().String(),
	}

	result, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(h.config.SenderAddress),
		Destination: &sestypes.Destination{
			ToAddresses: []string{input.Recipient},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: email: %v", ErrSendFailed, err)
	}
	output.EmailSent = true
	if result.MessageId != nil {
		output.EmailMessageID = *result.MessageId
	}

	if h.shouldSendSMS(input) {
		_, err := h.sms.Publish(ctx, &sns.PublishInput{
			PhoneNumber: aws.String(input.Phone),
			Message:     aws.String(subject),
		})
		if err != nil {
			// Email already went out; an SMS failure downgrades to a warning.
			h.logger.Warn("sms send failed", map[string]interface{}{
				"applicationId": input.ApplicationID,
				"error":         err.Error(),
			})
		} else {
			output.SMSSent = true
		}
	}

	h.logger.Info("notification sent", map[string]interface{}{
		"applicationId":  input.ApplicationID,
		"notificationId": output.NotificationID,
		"emailSent":      output.EmailSent,
		"smsSent":        output.SMSSent,
	})

	return output, nil
}

func (h *Handler) shouldSendSMS(input *Input) bool {
	return h.config.SMSEnabled &&
		h.sms != nil &&
		input.Phone != "" &&
		input.NetworkImpact == h.config.SMSImpactThreshold
}

func (h *Handler) composeMessage(input *Input) (subject, body string) {
	switch input.Event {
	case "status_changed":
		subject = fmt.Sprintf("Application %s status update: %s", input.ApplicationID, input.NewStatus)
		body = fmt.Sprintf("The credentialing application for %s has moved to %s.", input.ProviderName, input.NewStatus)
	case "committee_decision":
		subject = fmt.Sprintf("Committee decision recorded for %s", input.ApplicationID)
		body = fmt.Sprintf("The credentialing committee has recorded a decision for %s: %s.", input.ProviderName, input.NewStatus)
	case "analyst_assigned":
		subject = fmt.Sprintf("Application %s assigned", input.ApplicationID)
		body = fmt.Sprintf("The credentialing application for %s has been assigned to you.", input.ProviderName)
	default:
		subject = fmt.Sprintf("Credentialing update for application %s", input.ApplicationID)
		body = fmt.Sprintf("There is an update on the credentialing application for %s.", input.ProviderName)
	}

	if input.Detail != "" {
		body += "\n\n" + input.Detail
	}
	return subject, body
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
