package queryapplications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/common/metrics"
	"credentialing-workers/internal/models"
	"credentialing-workers/internal/queryengine"
)

const (
	TaskType = "query-applications"
)

var (
	ErrInvalidInput        = errors.New("INVALID_INPUT")
	ErrInvalidFilterFormat = errors.New("INVALID_FILTER_FORMAT")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		errorCode := "QUERY_EXECUTION_FAILED"
		if errors.Is(err, ErrInvalidInput) {
			errorCode = "INVALID_INPUT"
		} else if errors.Is(err, ErrInvalidFilterFormat) {
			errorCode = "INVALID_FILTER_FORMAT"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.ApplicationsQueried.WithLabelValues(string(input.Filters.SortKey)).Add(float64(len(output.Applications)))
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	records, err := decodeRecords(input.Records)
	if err != nil {
		return nil, err
	}
	if h.config.MaxRecords > 0 && len(records) > h.config.MaxRecords {
		return nil, fmt.Errorf("%w: snapshot exceeds %d records", ErrInvalidInput, h.config.MaxRecords)
	}

	result := queryengine.Query(records, input.Filters)

	output := &Output{
		Applications: result,
		TotalCount:   len(result),
		FilteredFrom: len(records),
	}
	if input.IncludeFacets {
		facets := queryengine.DeriveFacets(records)
		output.Facets = &facets
	}
	return output, nil
}

// decodeRecords rejects payloads whose top level is not a JSON array. A
// missing or null records field is treated as an empty snapshot.
func decodeRecords(raw json.RawMessage) ([]models.ProviderApplication, error) {
	if len(raw) == 0 {
		return []models.ProviderApplication{}, nil
	}

	var records []models.ProviderApplication
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: records must be a collection: %v", ErrInvalidInput, err)
	}
	if records == nil {
		records = []models.ProviderApplication{}
	}
	return records, nil
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

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

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
