package recordactivity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/models"
)

const (
	TaskType = "record-activity"
)

var (
	ErrInvalidInput  = errors.New("INVALID_INPUT")
	ErrFeedUnhealthy = errors.New("ACTIVITY_FEED_UNAVAILABLE")
)

var knownTypes = map[string]bool{
	models.ActivityApplicationSubmitted: true,
	models.ActivityStatusChanged:        true,
	models.ActivityAnalystAssigned:      true,
	models.ActivityCommitteeDecision:    true,
	models.ActivityRosterIngested:       true,
}

type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		redis:  client,
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
		errorCode := "ACTIVITY_FEED_UNAVAILABLE"
		if errors.Is(err, ErrInvalidInput) {
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

	if input.Fetch {
		return h.fetchEvents(ctx, input.Limit)
	}
	return h.recordEvent(ctx, input)
}

func (h *Handler) recordEvent(ctx context.Context, input *Input) (*Output, error) {
	if !knownTypes[input.Type] {
		return nil, fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, input.Type)
	}

	event := models.ActivityEvent{
		ID:            uuid.New().String(),
		Type:          input.Type,
		ApplicationID: input.ApplicationID,
		ProviderName:  input.ProviderName,
		Actor:         input.Actor,
		Detail:        input.Detail,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	pipe := h.redis.TxPipeline()
	pipe.LPush(ctx, h.config.FeedKey, payload)
	pipe.LTrim(ctx, h.config.FeedKey, 0, h.config.FeedLimit-1)
	pipe.Expire(ctx, h.config.FeedKey, h.config.FeedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnhealthy, err)
	}

	return &Output{Recorded: true, EventID: event.ID}, nil
}

func (h *Handler) fetchEvents(ctx context.Context, limit int) (*Output, error) {
	if limit <= 0 || int64(limit) > h.config.FeedLimit {
		limit = int(h.config.FeedLimit)
	}

	raw, err := h.redis.LRange(ctx, h.config.FeedKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnhealthy, err)
	}

	events := make([]models.ActivityEvent, 0, len(raw))
	for _, entry := range raw {
		var event models.ActivityEvent
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			// Corrupt entries are skipped rather than poisoning the feed.
			h.logger.Warn("skipping malformed feed entry", map[string]interface{}{
				"error": err,
			})
			continue
		}
		events = append(events, event)
	}

	return &Output{Events: events}, nil
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
