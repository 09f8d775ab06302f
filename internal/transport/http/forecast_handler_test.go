package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salescli/internal/config"
	apierrors "salescli/internal/errors"
	"salescli/internal/forecast"
	"salescli/internal/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := discardLogger()
	errorHandler := apierrors.NewErrorHandler(logger, false)

	ingest := services.NewIngestService(services.IngestOptions{}, logger)
	engine := forecast.NewEngine(logger)
	forecasts := services.NewForecastService(engine, 2, logger, nil)

	handler := NewForecastHandler(ingest, forecasts, ForecastHandlerOptions{}, logger, errorHandler)
	health := NewHealthHandler(logger)

	cfg := config.Default().Server
	return NewRouter(cfg, RouterDeps{
		Forecast:     handler,
		Health:       health,
		ErrorHandler: errorHandler,
		Logger:       logger,
	})
}

// sampleWorkbook builds a workbook with two yearly territory sheets.
func sampleWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()

	sheets := map[string]float64{"2023-2024": 100000, "2024-2025": 110000}
	first := true
	for _, name := range []string{"2023-2024", "2024-2025"} {
		if first {
			f.SetSheetName(f.GetSheetName(0), name)
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		base := sheets[name]
		rows := map[int][]interface{}{
			7:  {"Particulars", "April", "May", "June", "July", "August", "September", "October", "November", "December", "January", "February", "March"},
			9:  {"ROUTE SALES"},
			10: {"TRIVANDRUM", base, base * 0.9},
			11: {"KOLLAM", base / 2, base / 2 * 0.9},
		}
		for rowIdx, cells := range rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &cells))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

// uploadRequest builds a multipart POST with the workbook and fields.
func uploadRequest(t *testing.T, path string, workbook []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if workbook != nil {
		part, err := mw.CreateFormFile("workbook", "sales.xlsx")
		require.NoError(t, err)
		_, err = part.Write(workbook)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestForecastEndpoint(t *testing.T) {
	router := testRouter(t)
	req := uploadRequest(t, "/api/sales/forecast", sampleWorkbook(t), map[string]string{
		"horizon":  "2",
		"grouping": "area",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Grouping string `json:"grouping"`
		Horizon  int    `json:"horizon"`
		Groups   []struct {
			Key      string `json:"key"`
			Method   string `json:"method"`
			Forecast []struct {
				Month string  `json:"month"`
				Value float64 `json:"value"`
			} `json:"forecast"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "area", resp.Grouping)
	assert.Equal(t, 2, resp.Horizon)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "KOLLAM", resp.Groups[0].Key)
	assert.Equal(t, "TRIVANDRUM", resp.Groups[1].Key)
	for _, g := range resp.Groups {
		require.Len(t, g.Forecast, 2)
		assert.NotEmpty(t, g.Method)
	}
}

func TestIngestEndpoint(t *testing.T) {
	router := testRouter(t)
	req := uploadRequest(t, "/api/sales/ingest", sampleWorkbook(t), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Summary struct {
			Records int      `json:"records"`
			Areas   []string `json:"areas"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.Summary.Records)
	assert.ElementsMatch(t, []string{"KOLLAM", "TRIVANDRUM"}, resp.Summary.Areas)
}

func TestForecastEndpointMissingFile(t *testing.T) {
	router := testRouter(t)
	req := uploadRequest(t, "/api/sales/forecast", nil, map[string]string{"horizon": "2"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "workbook")
}

func TestForecastEndpointBadParams(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "bad grouping", fields: map[string]string{"grouping": "country"}},
		{name: "horizon too large", fields: map[string]string{"horizon": "99"}},
		{name: "horizon not a number", fields: map[string]string{"horizon": "soon"}},
		{name: "negative margin", fields: map[string]string{"margin": "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadRequest(t, "/api/sales/forecast", sampleWorkbook(t), tt.fields)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestReportEndpointXLSX(t *testing.T) {
	router := testRouter(t)
	req := uploadRequest(t, "/api/sales/report", sampleWorkbook(t), map[string]string{"horizon": "1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Forecast Target For Areas")
	assert.Contains(t, f.GetSheetList(), "Historical_Long")
}

func TestReportEndpointCSV(t *testing.T) {
	router := testRouter(t)
	req := uploadRequest(t, "/api/sales/report?format=csv", sampleWorkbook(t), map[string]string{"horizon": "1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Area,Month,Forecast")
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteReturnsProblem(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}
