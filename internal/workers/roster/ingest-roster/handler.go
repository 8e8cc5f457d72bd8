package ingestroster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "credentialing-workers/internal/common/errors"
	"credentialing-workers/internal/common/logger"
	"credentialing-workers/internal/common/metrics"
	"credentialing-workers/internal/common/validation"
	"credentialing-workers/internal/models"
)

const (
	TaskType = "ingest-roster"
)

var (
	ErrValidationFailed = errors.New("ROSTER_VALIDATION_FAILED")
	ErrBatchTooLarge    = errors.New("ROSTER_BATCH_TOO_LARGE")
	ErrInsertFailed     = errors.New("DATABASE_INSERT_FAILED")
)

const insertApplicationSQL = `INSERT INTO provider_applications
	(id, name, specialty, market, status, network_impact, work_experience, submission_date, npi, license_number, roster_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

type Handler struct {
	config    *Config
	db        *sql.DB
	validator *validation.RosterValidator
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, validator *validation.RosterValidator, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		db:        db,
		validator: validator,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if len(input.Rows) == 0 {
		return nil, fmt.Errorf("%w: roster contains no rows", ErrValidationFailed)
	}
	if len(input.Rows) > h.config.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d rows exceeds limit of %d", ErrBatchTooLarge, len(input.Rows), h.config.MaxBatchSize)
	}

	rosterID := input.RosterID
	if rosterID == "" {
		rosterID = uuid.New().String()
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrInsertFailed, err)
	}
	defer tx.Rollback()

	output := &Output{
		RosterID:       rosterID,
		ApplicationIDs: []string{},
	}

	for i, row := range input.Rows {
		if err := h.validator.ValidateRow(row); err != nil {
			output.Rejected++
			output.Failures = append(output.Failures, RowFailure{
				Row:    i,
				Name:   row.Name,
				Reason: err.Error(),
			})
			metrics.RosterRowsIngested.WithLabelValues("rejected").Inc()
			continue
		}

		appID := newApplicationID()
		market := row.Market
		if market == "" {
			market = h.config.DefaultMarket
		}
		impact := row.NetworkImpact
		if impact == "" {
			impact = models.NetworkImpactLow
		}
		submitted := row.SubmissionDate
		if submitted == "" {
			submitted = time.Now().UTC().Format("2006-01-02")
		}

		_, err := tx.ExecContext(ctx, insertApplicationSQL,
			appID, row.Name, row.Specialty, market, models.StatusInitiated,
			impact, row.WorkExperience, submitted, row.NPI, row.LicenseNumber, rosterID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d (%s): %v", ErrInsertFailed, i, row.Name, err)
		}

		output.Accepted++
		output.ApplicationIDs = append(output.ApplicationIDs, appID)
		metrics.RosterRowsIngested.WithLabelValues("accepted").Inc()
	}

	// A roster where every row failed validation fails the job so the
	// process can route it to manual review.
	if output.Accepted == 0 {
		return nil, fmt.Errorf("%w: all %d rows rejected", ErrValidationFailed, output.Rejected)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrInsertFailed, err)
	}

	return output, nil
}

func newApplicationID() string {
	return "APP-" + uuid.New().String()[:8]
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

// failJob converts the error into a BPMN error. Retryable technical
// failures keep their retry budget; business failures are thrown so the
// process can route the roster to manual review.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	bpmnErr := apperrors.ConvertToBPMNError(convertToStandardError(err))

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
	})

	if bpmnErr.Retryable && job.Retries > 0 {
		_, failErr := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(int32(bpmnErr.Retries)).
			ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message)).
			Send(context.Background())
		if failErr != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": failErr,
			})
		}
		return
	}

	_, throwErr := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background())
	if throwErr != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": throwErr,
		})
	}
}

func convertToStandardError(err error) *apperrors.StandardError {
	if stdErr, ok := err.(*apperrors.StandardError); ok {
		return stdErr
	}

	switch {
	case errors.Is(err, ErrBatchTooLarge):
		return &apperrors.StandardError{
			Code:      apperrors.ErrCodeRosterBatchTooLarge,
			Message:   "Roster batch exceeds the configured maximum",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	case errors.Is(err, ErrValidationFailed):
		return apperrors.NewRosterValidationFailedError(err.Error())
	case errors.Is(err, ErrInsertFailed):
		return apperrors.NewDatabaseInsertFailedError(err)
	default:
		return &apperrors.StandardError{
			Code:      "INTERNAL_ERROR",
			Message:   "Unexpected error",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
