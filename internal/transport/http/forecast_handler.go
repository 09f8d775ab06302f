package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salescli/internal/errors"
	"salescli/internal/exporter"
	"salescli/internal/series"
	"salescli/internal/services"
	"salescli/internal/validation"
	"salescli/pkg/contracts/domain"
)

// ForecastHandler serves the workbook upload and forecasting endpoints.
type ForecastHandler struct {
	ingest       *services.IngestService
	forecasts    *services.ForecastService
	validator    *validator.Validate
	uploads      *validation.WorkbookValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler

	defaultHorizon int
	profitMargin   float64
}

// ForecastHandlerOptions configures the handler's defaults.
type ForecastHandlerOptions struct {
	DefaultHorizon int
	ProfitMargin   float64
	// MaxUploadBytes caps workbook upload size, zero for no cap.
	MaxUploadBytes int64
}

// NewForecastHandler creates the forecast handler.
func NewForecastHandler(ingest *services.IngestService, forecasts *services.ForecastService, opts ForecastHandlerOptions, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ForecastHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if opts.DefaultHorizon < 1 {
		opts.DefaultHorizon = services.DefaultHorizon
	}
	if opts.ProfitMargin == 0 {
		opts.ProfitMargin = exporter.DefaultProfitMargin
	}

	return &ForecastHandler{
		ingest:         ingest,
		forecasts:      forecasts,
		validator:      v,
		uploads:        validation.NewWorkbookValidator(opts.MaxUploadBytes, logger),
		logger:         logger.With(slog.String("component", "forecast_handler")),
		errorHandler:   errorHandler,
		defaultHorizon: opts.DefaultHorizon,
		profitMargin:   opts.ProfitMargin,
	}
}

// Routes returns the forecast routes.
func (h *ForecastHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/ingest", h.IngestWorkbook)
	r.Post("/forecast", h.ForecastWorkbook)
	r.Post("/report", h.DownloadReport)

	return r
}

// forecastParams are the tunable form fields of an upload request.
type forecastParams struct {
	Horizon  int     `json:"horizon" validate:"omitempty,min=1,max=24"`
	Grouping string  `json:"grouping" validate:"omitempty,oneof=area state_area all"`
	Margin   float64 `json:"margin" validate:"omitempty,gte=0"`
}

// ingestResponse is the body of POST /ingest.
type ingestResponse struct {
	Summary services.DatasetSummary `json:"summary"`
}

// groupResponse is one group's slice of the forecast response.
type groupResponse struct {
	Key      string                `json:"key"`
	Method   domain.ForecastMethod `json:"method"`
	History  []pointResponse       `json:"history"`
	Forecast []pointResponse       `json:"forecast"`
}

type pointResponse struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// forecastResponse is the body of POST /forecast.
type forecastResponse struct {
	Grouping string                  `json:"grouping"`
	Horizon  int                     `json:"horizon"`
	Groups   []groupResponse         `json:"groups"`
	Summary  services.DatasetSummary `json:"summary"`
}

// IngestWorkbook handles POST /ingest: parse only, report what was
// recovered.
func (h *ForecastHandler) IngestWorkbook(w http.ResponseWriter, r *http.Request) {
	data, _, err := h.readWorkbook(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.ingest.Ingest(r.Context(), data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, ingestResponse{Summary: services.Summarize(result)})
}

// ForecastWorkbook handles POST /forecast: full pipeline to JSON.
func (h *ForecastHandler) ForecastWorkbook(w http.ResponseWriter, r *http.Request) {
	data, params, err := h.readWorkbook(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, run, err := h.runPipeline(r, data, params)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := forecastResponse{
		Grouping: string(run.Mode),
		Horizon:  run.Horizon,
		Summary:  services.Summarize(result),
	}
	for _, g := range run.Groups {
		group := groupResponse{
			Key:    g.Series.Key,
			Method: g.Forecast.Method,
		}
		for _, p := range g.Series.Points {
			group.History = append(group.History, pointResponse{Month: formatMonth(p.Date), Value: p.Value})
		}
		for _, p := range g.Forecast.Points {
			group.Forecast = append(group.Forecast, pointResponse{Month: formatMonth(p.Date), Value: p.Value})
		}
		resp.Groups = append(resp.Groups, group)
	}

	render.JSON(w, r, resp)
}

// DownloadReport handles POST /report: full pipeline to a workbook (or
// CSV) download.
func (h *ForecastHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	data, params, err := h.readWorkbook(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, run, err := h.runPipeline(r, data, params)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	margin := h.profitMargin
	if params.Margin > 0 {
		margin = params.Margin
	}
	report := exporter.BuildReport(run, result.Dataset, margin)

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="area_forecast.csv"`)
		if err := exporter.WriteForecastCSV(w, report.Forecasts, exporter.CSVOptions{BOMPrefix: true}); err != nil {
			h.logger.ErrorContext(r.Context(), "csv write failed", slog.String("error", err.Error()))
		}
		return
	}

	out, err := exporter.WriteXLSX(report)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	filename := fmt.Sprintf("sales_forecast_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(out)
}

func (h *ForecastHandler) runPipeline(r *http.Request, data []byte, params forecastParams) (*services.IngestResult, *services.ForecastRun, error) {
	result, err := h.ingest.Ingest(r.Context(), data)
	if err != nil {
		return nil, nil, err
	}

	mode := series.GroupByArea
	if params.Grouping != "" {
		mode = series.GroupingMode(params.Grouping)
	}
	horizon := params.Horizon
	if horizon == 0 {
		horizon = h.defaultHorizon
	}

	run, err := h.forecasts.Run(r.Context(), result.Dataset, mode, horizon)
	if err != nil {
		return nil, nil, err
	}
	return result, run, nil
}

// readWorkbook extracts the uploaded workbook and the tunable form
// fields from a multipart request.
func (h *ForecastHandler) readWorkbook(r *http.Request) ([]byte, forecastParams, error) {
	var params forecastParams

	file, header, err := r.FormFile("workbook")
	if err != nil {
		return nil, params, apierrors.ErrValidation("workbook", "A workbook file upload is required")
	}
	defer file.Close()

	if err := h.uploads.ValidateName(header.Filename); err != nil {
		return nil, params, apierrors.ErrValidation("workbook", err.Error())
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, params, apierrors.NewWithDetails(http.StatusBadRequest,
			"INVALID_REQUEST", "Could not read uploaded workbook", err.Error())
	}
	if err := h.uploads.ValidateContent(data); err != nil {
		return nil, params, apierrors.ErrValidation("workbook", err.Error())
	}

	if params, err = h.parseParams(r); err != nil {
		return nil, params, err
	}
	return data, params, nil
}

func (h *ForecastHandler) parseParams(r *http.Request) (forecastParams, error) {
	var params forecastParams

	if v := r.FormValue("horizon"); v != "" {
		horizon, err := strconv.Atoi(v)
		if err != nil {
			return params, apierrors.ErrValidation("horizon", "horizon must be an integer")
		}
		params.Horizon = horizon
	}
	params.Grouping = r.FormValue("grouping")
	if v := r.FormValue("margin"); v != "" {
		margin, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, apierrors.ErrValidation("margin", "margin must be a number")
		}
		params.Margin = margin
	}

	if err := h.validator.Struct(params); err != nil {
		var details []apierrors.ValidationError
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				details = append(details, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed %q validation", fe.Tag()),
				})
			}
		}
		return params, apierrors.NewWithDetails(http.StatusBadRequest,
			"VALIDATION_FAILED", "Request validation failed", details)
	}
	return params, nil
}

func formatMonth(t time.Time) string {
	return t.Format("2006-01")
}
