package checkreviewqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/models"
)

const (
	TaskType = "check-review-queue"
)

var (
	ErrQueueLookupFailed = errors.New("REVIEW_QUEUE_LOOKUP_FAILED")
	ErrQueryTimeout      = errors.New("QUERY_TIMEOUT")
)

// The committee queue holds applications past intake that have not been
// decided yet.
const reviewQueueSQL = `SELECT id, name, specialty, market, status, network_impact, work_experience, submission_date, COALESCE(assigned_analyst, '')
	FROM provider_applications
	WHERE status IN ('Committee Review', 'In Progress')
	ORDER BY CASE network_impact WHEN 'High' THEN 3 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 1 ELSE 0 END DESC, submission_date ASC`

type Handler struct {
	config *Config
	db     *sql.DB
	cache  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, cache *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		cache:  cache,
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
		errorCode := "REVIEW_QUEUE_LOOKUP_FAILED"
		if errors.Is(err, ErrQueryTimeout) {
			errorCode = "QUERY_TIMEOUT"
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

	if !input.ForceRefresh {
		if output, ok := h.fromCache(ctx, input.Market); ok {
			return output, nil
		}
	}

	queue, err := h.queryQueue(ctx)
	if err != nil {
		return nil, err
	}

	if input.Market != "" {
		filtered := queue[:0]
		for _, app := range queue {
			if app.Market == input.Market {
				filtered = append(filtered, app)
			}
		}
		queue = filtered
	}

	output := &Output{
		Queue:     queue,
		QueueSize: len(queue),
	}
	for _, app := range queue {
		if app.NetworkImpact == models.NetworkImpactHigh {
			output.HighImpact++
		}
	}

	h.storeCache(ctx, input.Market, output)
	return output, nil
}

func (h *Handler) queryQueue(ctx context.Context) ([]models.ProviderApplication, error) {
	rows, err := h.db.QueryContext(ctx, reviewQueueSQL)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrQueryTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrQueueLookupFailed, err)
	}
	defer rows.Close()

	queue := []models.ProviderApplication{}
	for rows.Next() {
		var app models.ProviderApplication
		if err := rows.Scan(&app.ID, &app.Name, &app.Specialty, &app.Market, &app.Status,
			&app.NetworkImpact, &app.WorkExperience, &app.SubmissionDate, &app.AssignedAnalyst); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrQueueLookupFailed, err)
		}
		queue = append(queue, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueueLookupFailed, err)
	}

	return queue, nil
}

func (h *Handler) cacheKey(market string) string {
	if market == "" {
		return h.config.CacheKey
	}
	return h.config.CacheKey + ":" + market
}

func (h *Handler) fromCache(ctx context.Context, market string) (*Output, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, err := h.cache.Get(ctx, h.cacheKey(market)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("queue cache read failed", map[string]interface{}{
				"error": err,
			})
		}
		return nil, false
	}

	var output Output
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		return nil, false
	}
	output.FromCache = true
	return &output, true
}

func (h *Handler) storeCache(ctx context.Context, market string, output *Output) {
	if h.cache == nil {
		return
	}

	payload, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, h.cacheKey(market), payload, h.config.CacheTTL).Err(); err != nil {
		// Cache failures only cost the next caller a database round trip.
		h.logger.Warn("queue cache write failed", map[string]interface{}{
			"error": err,
		})
	}
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
