package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/api/middleware"
	"github.com/dvloznov/finance-coach/internal/coach"
	"github.com/dvloznov/finance-coach/internal/education"
	"github.com/dvloznov/finance-coach/internal/ingest"
	"github.com/dvloznov/finance-coach/internal/jobs"
	"github.com/dvloznov/finance-coach/internal/reports"
)

// AnalyzeHandler handles the synchronous analysis endpoint.
type AnalyzeHandler struct {
	coach    *coach.Coach
	ingester *ingest.Ingester
	log      zerolog.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(c *coach.Coach, ingester *ingest.Ingester, log zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		coach:    c,
		ingester: ingester,
		log:      log,
	}
}

// Analyze handles POST /api/analyze
// The body is either a JSON array of transactions or an object with a
// "transactions" array, in the same shape file ingestion accepts.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	txns, err := h.ingester.IngestJSON(r.Body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report := h.coach.AnalyzeTransactions(txns)

	h.log.Info().
		Int("transactions", len(txns)).
		Int("insights", len(report.Insights)).
		Int("recommendations", len(report.Recommendations)).
		Msg("Synchronous analysis completed")

	middleware.WriteJSON(w, http.StatusOK, report)
}

// ReportsHandler handles asynchronous report endpoints.
type ReportsHandler struct {
	store     *reports.Store
	publisher jobs.Publisher
	ingester  *ingest.Ingester
	log       zerolog.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(store *reports.Store, publisher jobs.Publisher, ingester *ingest.Ingester, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{
		store:     store,
		publisher: publisher,
		ingester:  ingester,
		log:       log,
	}
}

// CreateReport handles POST /api/reports
func (h *ReportsHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	txns, err := h.ingester.IngestJSON(r.Body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(txns) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "transactions are required")
		return
	}

	reportID := uuid.New().String()
	if err := h.store.CreatePending(reportID, txns); err != nil {
		h.log.Error().Err(err).Msg("Failed to store submitted transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create report")
		return
	}

	job := &jobs.ReportJob{ReportID: reportID}
	if err := h.publisher.PublishReport(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue report job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue report job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("report_id", reportID).
		Int("transactions", len(txns)).
		Msg("Report job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"report_id": reportID,
		"job_id":    job.JobID,
		"status":    string(job.Status),
	})
}

// GetReport handles GET /api/reports/{id}
func (h *ReportsHandler) GetReport(w http.ResponseWriter, r *http.Request, reportID string) {
	rec, err := h.store.Get(reportID)
	if err != nil {
		if errors.Is(err, reports.ErrReportNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.log.Error().Err(err).Str("report_id", reportID).Msg("Failed to get report")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, rec)
}

// EducationHandler handles tutor endpoints.
type EducationHandler struct {
	tutor       *education.Tutor
	defaultLang education.Language
	log         zerolog.Logger
}

// NewEducationHandler creates a new education handler.
func NewEducationHandler(tutor *education.Tutor, defaultLang education.Language, log zerolog.Logger) *EducationHandler {
	return &EducationHandler{
		tutor:       tutor,
		defaultLang: defaultLang,
		log:         log,
	}
}

// Ask handles GET /api/education
func (h *EducationHandler) Ask(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		middleware.WriteError(w, http.StatusBadRequest, "query is required")
		return
	}

	level := education.Level(r.URL.Query().Get("level"))
	if level == "" {
		level = education.LevelBeginner
	}
	lang := education.Language(r.URL.Query().Get("language"))
	if lang == "" {
		lang = h.defaultLang
	}

	answer := h.tutor.Answer(r.Context(), query, level, lang)

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"query":    query,
		"level":    string(level),
		"language": string(lang),
		"response": answer,
	})
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Job not found")
			return
		}
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get job")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		ReportID: query.Get("report_id"),
		Status:   jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
