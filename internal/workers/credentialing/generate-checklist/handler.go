package generatechecklist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonhttp "credentialing-workers/internal/common/http"
	"credentialing-workers/internal/common/logger"
)

const (
	TaskType = "generate-checklist"
)

var (
	ErrChecklistTimeout = errors.New("CHECKLIST_TIMEOUT")
	ErrChecklistFailed  = errors.New("CHECKLIST_GENERATION_FAILED")
	ErrMissingSpecialty = errors.New("INVALID_INPUT")
)

type Handler struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		// Request lifetime is bounded by the job context, not the client.
		client: commonhttp.NewClient(0),
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
		errorCode := "CHECKLIST_GENERATION_FAILED"
		if errors.Is(err, ErrMissingSpecialty) {
			errorCode = "INVALID_INPUT"
		} else if errors.Is(err, ErrChecklistTimeout) {
			errorCode = "CHECKLIST_TIMEOUT"
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
	if strings.TrimSpace(input.Specialty) == "" {
		return nil, fmt.Errorf("%w: specialty is required", ErrMissingSpecialty)
	}

	items, err := h.generateWithAI(ctx, input)
	if err != nil {
		// The AI service is best effort. A specialty baseline keeps the
		// process moving when it is slow or down.
		h.logger.Warn("falling back to baseline checklist", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"error":         err.Error(),
		})
		return &Output{
			ApplicationID: input.ApplicationID,
			Items:         baselineChecklist(input.Specialty),
			Source:        "baseline",
		}, nil
	}

	if len(items) > h.config.MaxItems {
		items = items[:h.config.MaxItems]
	}

	return &Output{
		ApplicationID: input.ApplicationID,
		Items:         items,
		Source:        "genai",
	}, nil
}

func (h *Handler) generateWithAI(ctx context.Context, input *Input) ([]ChecklistItem, error) {
	requestBody := map[string]interface{}{
		"prompt": h.buildPrompt(input),
		"context": map[string]interface{}{
			"specialty":     input.Specialty,
			"market":        input.Market,
			"networkImpact": input.NetworkImpact,
		},
	}

	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrChecklistTimeout
			}
		}

		// A fresh request per attempt; the body reader is consumed by each send.
		req, err := http.NewRequestWithContext(ctx, "POST", h.config.GenAIBaseURL+"/api/ai/checklist", bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChecklistFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if h.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
		}

		resp, lastErr = h.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return nil, ErrChecklistTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrChecklistTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrChecklistFailed, lastErr)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrChecklistFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Items []ChecklistItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrChecklistFailed, err)
	}
	if len(apiResponse.Items) == 0 {
		return nil, fmt.Errorf("%w: empty checklist returned", ErrChecklistFailed)
	}

	return apiResponse.Items, nil
}

func (h *Handler) buildPrompt(input *Input) string {
	var parts []string

	parts = append(parts, "You are a healthcare credentialing specialist. Produce a verification checklist for the provider below.")
	parts = append(parts, fmt.Sprintf("Provider: %s", input.ProviderName))
	parts = append(parts, fmt.Sprintf("Specialty: %s", input.Specialty))
	if input.Market != "" {
		parts = append(parts, fmt.Sprintf("Market: %s", input.Market))
	}
	if input.NetworkImpact != "" {
		parts = append(parts, fmt.Sprintf("Network impact: %s", input.NetworkImpact))
	}
	parts = append(parts, "Return JSON with an \"items\" array of {label, category, required} objects, most critical first.")

	return strings.Join(parts, "\n")
}

// baselineChecklist is the static fallback used when AI generation is
// unavailable. Common items first, then specialty-specific ones.
func baselineChecklist(specialty string) []ChecklistItem {
	items := []ChecklistItem{
		{Label: "Verify state medical license", Category: "Licensure", Required: true},
		{Label: "Confirm NPI registration", Category: "Licensure", Required: true},
		{Label: "Check disciplinary action history", Category: "Background", Required: true},
		{Label: "Verify malpractice insurance coverage", Category: "Insurance", Required: true},
		{Label: "Confirm board certification", Category: "Education", Required: true},
		{Label: "Validate medical school and residency", Category: "Education", Required: true},
		{Label: "Review work history for gaps", Category: "Background", Required: false},
	}

	switch strings.ToLower(specialty) {
	case "cardiology":
		items = append(items,
			ChecklistItem{Label: "Verify cardiac catheterization privileges", Category: "Privileges", Required: true},
			ChecklistItem{Label: "Confirm ACLS certification", Category: "Certifications", Required: true},
		)
	case "oncology":
		items = append(items,
			ChecklistItem{Label: "Verify chemotherapy administration credentials", Category: "Privileges", Required: true},
		)
	case "pediatrics":
		items = append(items,
			ChecklistItem{Label: "Confirm PALS certification", Category: "Certifications", Required: true},
		)
	case "surgery", "general surgery":
		items = append(items,
			ChecklistItem{Label: "Verify surgical case logs", Category: "Privileges", Required: true},
			ChecklistItem{Label: "Confirm operating privileges at affiliated facilities", Category: "Privileges", Required: true},
		)
	}

	return items
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
