package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/domain"
)

func TestIngestCSV(t *testing.T) {
	input := strings.Join([]string{
		"ID,Date,Amount,Type,Merchant,Description",
		"t1,2023-10-01,250.00,expense,CafeX,Coffee",
		"t2,2023-10-02,\"Rs.1,250.50\",expense,Amazon,Shopping",
		",2023-10-03,50000,income,Employer,Salary",
		"bad,not-a-date,100,expense,Store,Broken",
	}, "\n")

	txns, err := New(zerolog.Nop()).IngestCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("IngestCSV failed: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions (1 skipped), got %d", len(txns))
	}

	if txns[0].ID != "t1" || txns[0].Amount != 250 || txns[0].Type != domain.TypeExpense {
		t.Errorf("unexpected first transaction: %+v", txns[0])
	}
	if txns[1].Amount != 1250.50 {
		t.Errorf("amount with currency prefix and commas = %v, want 1250.50", txns[1].Amount)
	}
	if txns[2].ID == "" {
		t.Error("missing ID should be backfilled")
	}
	if txns[2].Type != domain.TypeIncome {
		t.Errorf("type = %s, want income", txns[2].Type)
	}

	wantDate := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	if !txns[0].Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", txns[0].Date, wantDate)
	}
}

func TestIngestCSV_Empty(t *testing.T) {
	txns, err := New(zerolog.Nop()).IngestCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("IngestCSV failed: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("expected no transactions, got %d", len(txns))
	}
}

func TestIngestJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "top-level array",
			input: `[{"id":"t1","date":"2023-10-01","amount":100,"type":"expense","merchant":"CafeX","description":"Coffee"}]`,
			want:  1,
		},
		{
			name:  "wrapped in transactions key",
			input: `{"transactions":[{"id":"t1","date":"2023-10-01","amount":100,"type":"expense","merchant":"CafeX","description":""}]}`,
			want:  1,
		},
		{
			name:  "negative amount normalized to absolute",
			input: `[{"id":"t1","date":"2023-10-01","amount":-42.5,"merchant":"Store","description":"Refund?"}]`,
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := New(zerolog.Nop()).IngestJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("IngestJSON failed: %v", err)
			}
			if len(txns) != tt.want {
				t.Fatalf("got %d transactions, want %d", len(txns), tt.want)
			}
			if txns[0].Amount < 0 {
				t.Errorf("amount must be non-negative, got %v", txns[0].Amount)
			}
		})
	}
}

func TestIngestJSON_BlankDescriptionFallsBackToMerchant(t *testing.T) {
	input := `[{"id":"t1","date":"2023-10-01","amount":100,"type":"expense","merchant":"CafeX","description":""}]`

	txns, err := New(zerolog.Nop()).IngestJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("IngestJSON failed: %v", err)
	}
	if txns[0].Description != "CafeX" {
		t.Errorf("description = %q, want merchant fallback", txns[0].Description)
	}
}

func TestIngestFile_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.xlsx")
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(zerolog.Nop()).IngestFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestIngestFile_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.csv")
	content := "date,amount,type,merchant,description\n2023-10-01,100,expense,CafeX,Coffee\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	txns, err := New(zerolog.Nop()).IngestFile(path)
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
}
