package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/services"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestProblemDetailsMarshalJSON(t *testing.T) {
	pd := NewProblemDetails(422, TypeWorkbookEmpty, "No Records Recovered", "empty workbook", "/api/forecast").
		WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, TypeWorkbookEmpty, out["type"])
	assert.Equal(t, float64(422), out["status"])
	assert.Equal(t, "abc-123", out["trace_id"])
	assert.Equal(t, "empty workbook", out["detail"])
}

func TestErrorToProblem(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/forecast", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "empty dataset", err: services.ErrEmptyDataset, wantStatus: 422, wantType: TypeWorkbookEmpty},
		{name: "no sheets", err: services.ErrNoSheets, wantStatus: 422, wantType: TypeWorkbookInvalid},
		{name: "bad horizon", err: fmt.Errorf("wrap: %w", services.ErrInvalidHorizon), wantStatus: 400, wantType: TypeValidation},
		{name: "bad grouping", err: services.ErrInvalidGrouping, wantStatus: 400, wantType: TypeValidation},
		{name: "no series", err: services.ErrNoSeries, wantStatus: 422, wantType: TypeForecastFailed},
		{name: "timeout", err: context.DeadlineExceeded, wantStatus: 504, wantType: TypeTimeout},
		{name: "api error", err: ErrWorkbookInvalid, wantStatus: 422, wantType: TypeWorkbookInvalid},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: 500, wantType: TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/forecast", problem.Instance)
		})
	}
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/forecast", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, services.ErrEmptyDataset)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, TypeWorkbookEmpty, out["type"])
}

func TestErrValidation(t *testing.T) {
	apiErr := ErrValidation("horizon", "must be between 1 and 24")
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	detail, ok := apiErr.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "horizon", detail.Field)
}
