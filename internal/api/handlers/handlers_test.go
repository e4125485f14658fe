package handlers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/coach"
	"github.com/dvloznov/finance-coach/internal/education"
	"github.com/dvloznov/finance-coach/internal/ingest"
	"github.com/dvloznov/finance-coach/internal/jobs"
	"github.com/dvloznov/finance-coach/internal/jobs/inmemory"
	"github.com/dvloznov/finance-coach/internal/reports"
)

const sampleBody = `{"transactions": [
	{"id": "i1", "date": "2023-10-01", "amount": 50000, "type": "income", "merchant": "Acme Corp", "description": "salary credit"},
	{"id": "e1", "date": "2023-10-02", "amount": 15000, "type": "expense", "merchant": "Landlord", "description": "monthly rent"},
	{"id": "e2", "date": "2023-10-03", "amount": 2500, "type": "expense", "merchant": "BigBasket", "description": "grocery order"}
]}`

func TestAnalyze(t *testing.T) {
	h := NewAnalyzeHandler(coach.New(zerolog.Nop()), ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(sampleBody))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var report coach.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if report.Status != coach.StatusSuccess {
		t.Errorf("status = %q, want success", report.Status)
	}
	if report.Totals.TotalIncome != 50000 {
		t.Errorf("total_income = %v, want 50000", report.Totals.TotalIncome)
	}
}

func TestAnalyze_InvalidBody(t *testing.T) {
	h := NewAnalyzeHandler(coach.New(zerolog.Nop()), ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyze_EmptyTransactions(t *testing.T) {
	h := NewAnalyzeHandler(coach.New(zerolog.Nop()), ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"transactions": []}`))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var report coach.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Status != coach.StatusNoData {
		t.Errorf("status = %q, want no_data", report.Status)
	}
}

func TestCreateReport(t *testing.T) {
	jobStore := inmemory.NewStore()
	queue := inmemory.NewQueue(10, jobStore)
	defer queue.Close()
	reportStore := reports.NewStore()

	h := NewReportsHandler(reportStore, queue, ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(sampleBody))
	rec := httptest.NewRecorder()
	h.CreateReport(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["report_id"] == "" || resp["job_id"] == "" {
		t.Fatalf("missing ids in response: %v", resp)
	}

	// The submitted batch is stored and pending.
	record, err := reportStore.Get(resp["report_id"])
	if err != nil {
		t.Fatalf("report not stored: %v", err)
	}
	if record.Status != reports.StatusPending {
		t.Errorf("report status = %q, want pending", record.Status)
	}

	// A job was registered for the report.
	job, err := jobStore.GetJob(context.Background(), resp["job_id"])
	if err != nil {
		t.Fatalf("job not stored: %v", err)
	}
	if job.ReportID != resp["report_id"] {
		t.Errorf("job report_id = %q, want %q", job.ReportID, resp["report_id"])
	}
}

func TestCreateReport_EmptyTransactions(t *testing.T) {
	queue := inmemory.NewQueue(10, nil)
	defer queue.Close()

	h := NewReportsHandler(reports.NewStore(), queue, ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"transactions": []}`))
	rec := httptest.NewRecorder()
	h.CreateReport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetReport(t *testing.T) {
	reportStore := reports.NewStore()
	if err := reportStore.CreatePending("r1", nil); err != nil {
		t.Fatal(err)
	}
	if err := reportStore.Complete("r1", &coach.Report{Status: coach.StatusSuccess}); err != nil {
		t.Fatal(err)
	}

	queue := inmemory.NewQueue(1, nil)
	defer queue.Close()
	h := NewReportsHandler(reportStore, queue, ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/r1", nil)
	rec := httptest.NewRecorder()
	h.GetReport(rec, req, "r1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var record reports.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatal(err)
	}
	if record.Status != reports.StatusCompleted || record.Report == nil {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	queue := inmemory.NewQueue(1, nil)
	defer queue.Close()
	h := NewReportsHandler(reports.NewStore(), queue, ingest.New(zerolog.Nop()), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/missing", nil)
	rec := httptest.NewRecorder()
	h.GetReport(rec, req, "missing")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestEducationAsk(t *testing.T) {
	tutor := education.New(zerolog.Nop(), education.WithRand(rand.New(rand.NewSource(1))))
	h := NewEducationHandler(tutor, education.LangEnglish, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/education?query=what+is+a+sip&level=beginner", nil)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp["response"], "SIP") {
		t.Errorf("unexpected response: %q", resp["response"])
	}
	if resp["language"] != "en" {
		t.Errorf("language = %q, want default en", resp["language"])
	}
}

func TestEducationAsk_MissingQuery(t *testing.T) {
	tutor := education.New(zerolog.Nop())
	h := NewEducationHandler(tutor, education.LangEnglish, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/education", nil)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestJobsEndpoints(t *testing.T) {
	store := inmemory.NewStore()
	ctx := context.Background()
	if err := store.SaveJob(ctx, &jobs.ReportJob{
		JobID:     "j1",
		ReportID:  "r1",
		Status:    jobs.JobStatusCompleted,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	h := NewJobsHandler(store, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	h.ListJobs(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listResp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatal(err)
	}
	if listResp.Count != 1 {
		t.Errorf("count = %d, want 1", listResp.Count)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/jobs/j1", nil)
	rec = httptest.NewRecorder()
	h.GetJob(rec, req, "j1")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	rec = httptest.NewRecorder()
	h.GetJob(rec, req, "missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want 404", rec.Code)
	}
}
