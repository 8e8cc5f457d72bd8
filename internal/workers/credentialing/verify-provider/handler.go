package verifyprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/common/metrics"
	"credentialing-workers/internal/models"
)

const (
	TaskType = "verify-provider"
)

var (
	ErrProviderNotFound   = errors.New("PROVIDER_NOT_FOUND")
	ErrVerificationFailed = errors.New("VERIFICATION_FAILED")
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
		errorCode := "VERIFICATION_FAILED"
		if errors.Is(err, ErrProviderNotFound) {
			errorCode = "PROVIDER_NOT_FOUND"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.VerificationOutcomes.WithLabelValues(string(output.ComplianceStatus)).Inc()
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.Profile == nil {
		return nil, fmt.Errorf("%w: no profile for application %s", ErrProviderNotFound, input.ApplicationID)
	}

	start := time.Now()
	profile := input.Profile

	output := &Output{
		ApplicationID: input.ApplicationID,
		HardResults:   make([]models.RegulationResult, 0, len(hardChecks)),
		SoftResults:   make([]models.RegulationResult, 0, len(softChecks)),
	}

	allPassed := true
	for _, reg := range hardChecks {
		passed, reasoning := reg.check(h.config, profile)
		output.HardResults = append(output.HardResults, models.RegulationResult{
			RegulationID: reg.id,
			Name:         reg.name,
			Passed:       passed,
			Reasoning:    reasoning,
		})
		if !passed {
			allPassed = false
			output.FailedHard = append(output.FailedHard, reg.id)
			h.logger.Warn("hard regulation failed", map[string]interface{}{
				"applicationId": input.ApplicationID,
				"regulationId":  reg.id,
				"reason":        reasoning,
			})
		}
	}

	var weightedSum, weightTotal float64
	for _, reg := range softChecks {
		score, reasoning := reg.score(profile)
		weightedSum += float64(score) * reg.weight
		weightTotal += reg.weight
		output.SoftResults = append(output.SoftResults, models.RegulationResult{
			RegulationID: reg.id,
			Name:         reg.name,
			Passed:       true,
			Score:        score,
			Weighted:     float64(score) * reg.weight,
			Reasoning:    reasoning,
		})
	}

	output.Score = overallScore(weightedSum, weightTotal)
	if allPassed {
		output.ComplianceStatus = models.ComplianceCompliant
	} else {
		output.ComplianceStatus = models.ComplianceNonCompliant
	}
	output.ProcessingTimeMs = time.Since(start).Milliseconds()

	return output, nil
}

// overallScore collapses the weighted soft scores into a 1-5 rating.
func overallScore(weightedSum, weightTotal float64) int {
	if weightTotal == 0 {
		return 1
	}
	score := int(math.Round(weightedSum / weightTotal))
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
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
