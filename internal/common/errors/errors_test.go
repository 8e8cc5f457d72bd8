package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToBPMNError_RetryableTechnicalError(t *testing.T) {
	stdErr := NewDatabaseInsertFailedError(fmt.Errorf("duplicate key"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "DATABASE_INSERT_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, "DATABASE_INSERT_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_BusinessErrorNoRetries(t *testing.T) {
	stdErr := NewRosterValidationFailedError("npi: does not match pattern")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "ROSTER_VALIDATION_FAILED", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestConvertToBPMNError_UnmappedCodeFallsThrough(t *testing.T) {
	stdErr := &StandardError{Code: "SOMETHING_NEW", Message: "unexpected"}

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "SOMETHING_NEW", bpmnErr.Code)
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		retries int
	}{
		{ErrCodeQueryExecutionFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeQueryTimeout, 2},
		{ErrCodeSearchTimeout, 2},
		{ErrCodeChecklistTimeout, 1},
		{ErrCodeInvalidInput, 0},
		{ErrCodeRosterBatchTooLarge, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "ROSTER", GetErrorCategory(ErrCodeRosterValidationFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeChecklistGenerationFailed))
	assert.Equal(t, "CREDENTIALING", GetErrorCategory(ErrCodeProviderNotFound))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_NEW"))
}
