// Package ingest parses raw transaction files (CSV or JSON) into normalized
// domain transactions. Malformed records are skipped with a warning rather
// than failing the whole file.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv/.json.
var ErrUnsupportedFormat = errors.New("unsupported file format, use CSV or JSON")

// Ingester reads transaction files and normalizes their records.
type Ingester struct {
	log zerolog.Logger
}

// New creates an ingester that logs skipped records to the given logger.
func New(log zerolog.Logger) *Ingester {
	return &Ingester{log: log}
}

// IngestFile parses the file at path, dispatching on its extension.
func (i *Ingester) IngestFile(path string) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IngestFile: opening %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return i.IngestCSV(f)
	case ".json":
		return i.IngestJSON(f)
	default:
		return nil, fmt.Errorf("IngestFile: %s: %w", path, ErrUnsupportedFormat)
	}
}

// IngestCSV parses CSV input. The first row is the header; column names are
// matched case-insensitively (id, date, amount, type, merchant, description).
func (i *Ingester) IngestCSV(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, coercion handles gaps

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IngestCSV: reading header: %w", err)
	}
	for idx, col := range header {
		header[idx] = strings.ToLower(strings.TrimSpace(col))
	}

	var transactions []domain.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("IngestCSV: line %d: %w", line, err)
		}

		raw := map[string]any{}
		for idx, value := range record {
			if idx < len(header) {
				raw[header[idx]] = value
			}
		}

		txn, err := normalizeRecord(raw)
		if err != nil {
			i.log.Warn().Int("line", line).Err(err).Msg("Skipping malformed transaction")
			continue
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

// IngestJSON parses JSON input: either a top-level array of transaction
// objects or an object with a "transactions" array.
func (i *Ingester) IngestJSON(r io.Reader) ([]domain.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("IngestJSON: reading input: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		var wrapper struct {
			Transactions []map[string]any `json:"transactions"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("IngestJSON: unmarshal: %w", err)
		}
		records = wrapper.Transactions
	}

	var transactions []domain.Transaction
	for idx, raw := range records {
		txn, err := normalizeRecord(raw)
		if err != nil {
			i.log.Warn().Int("record", idx).Err(err).Msg("Skipping malformed transaction")
			continue
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}
