// Package reports tracks asynchronous analysis reports from submission to
// completion.
package reports

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dvloznov/finance-coach/internal/coach"
	"github.com/dvloznov/finance-coach/internal/domain"
)

// ErrReportNotFound is returned when a report ID is unknown.
var ErrReportNotFound = errors.New("report not found")

// Status of an asynchronous report.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record holds one submitted batch and, once processed, its report.
type Record struct {
	ReportID     string               `json:"report_id"`
	Status       Status               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	Error        string               `json:"error,omitempty"`
	Transactions []domain.Transaction `json:"-"`
	Report       *coach.Report        `json:"report,omitempty"`
}

// Store is an in-memory report store, safe for concurrent use. Data is
// lost on restart; reports are ephemeral by design.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewStore creates an empty report store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// CreatePending registers a submitted transaction batch under a report ID.
func (s *Store) CreatePending(reportID string, txns []domain.Transaction) error {
	if reportID == "" {
		return fmt.Errorf("report ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[reportID] = &Record{
		ReportID:     reportID,
		Status:       StatusPending,
		CreatedAt:    time.Now(),
		Transactions: txns,
	}
	return nil
}

// Transactions returns the submitted batch for a pending report.
func (s *Store) Transactions(reportID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[reportID]
	if !ok {
		return nil, fmt.Errorf("Transactions: %s: %w", reportID, ErrReportNotFound)
	}
	return rec.Transactions, nil
}

// Complete stores the finished report.
func (s *Store) Complete(reportID string, report *coach.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[reportID]
	if !ok {
		return fmt.Errorf("Complete: %s: %w", reportID, ErrReportNotFound)
	}
	now := time.Now()
	rec.Status = StatusCompleted
	rec.CompletedAt = &now
	rec.Report = report
	rec.Transactions = nil
	return nil
}

// Fail marks the report as failed with the given reason.
func (s *Store) Fail(reportID string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[reportID]
	if !ok {
		return fmt.Errorf("Fail: %s: %w", reportID, ErrReportNotFound)
	}
	now := time.Now()
	rec.Status = StatusFailed
	rec.CompletedAt = &now
	rec.Error = reason
	return nil
}

// Get returns a copy of the record for a report ID.
func (s *Store) Get(reportID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[reportID]
	if !ok {
		return nil, fmt.Errorf("Get: %s: %w", reportID, ErrReportNotFound)
	}
	recCopy := *rec
	return &recCopy, nil
}
