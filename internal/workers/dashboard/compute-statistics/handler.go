package computestatistics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/models"
)

const (
	TaskType = "compute-statistics"
)

var (
	ErrInvalidInput = errors.New("INVALID_INPUT")
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
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	var records []models.ProviderApplication
	if len(input.Records) > 0 {
		if err := json.Unmarshal(input.Records, &records); err != nil {
			return nil, fmt.Errorf("%w: records must be a collection: %v", ErrInvalidInput, err)
		}
	}

	output := &Output{
		TotalApplications: len(records),
		ByStatus:          make(map[string]int),
		BySpecialty:       make(map[string]int),
		ByMarket:          make(map[string]int),
		ByNetworkImpact:   make(map[string]int),
	}

	totalExperience := 0
	for _, r := range records {
		if r.Status != "" {
			output.ByStatus[r.Status]++
		}
		if r.Specialty != "" {
			output.BySpecialty[r.Specialty]++
		}
		if r.Market != "" {
			output.ByMarket[r.Market]++
		}
		if r.NetworkImpact != "" {
			output.ByNetworkImpact[r.NetworkImpact]++
		}
		if r.AssignedAnalyst == "" {
			output.Unassigned++
		}
		totalExperience += r.WorkExperience

		switch r.Status {
		case models.StatusInProgress:
			output.InReview++
		case models.StatusCommitteeReview:
			output.CommitteeQueue++
		case models.StatusApproved:
			output.Approved++
		case models.StatusDenied:
			output.Denied++
		}
	}

	if len(records) > 0 {
		avg := float64(totalExperience) / float64(len(records))
		output.AvgWorkExperience = math.Round(avg*10) / 10
	}

	return output, nil
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
