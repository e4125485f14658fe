package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/finance-coach/internal/domain"
)

// dateFormats are tried in order when parsing the date field.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// normalizeRecord coerces one raw record into a domain transaction. Field
// names are expected lowercase (the readers normalize headers/keys upstream).
func normalizeRecord(raw map[string]any) (domain.Transaction, error) {
	id := stringField(raw, "id")
	if id == "" {
		id = uuid.NewString()
	}

	date, err := parseDate(stringField(raw, "date"))
	if err != nil {
		return domain.Transaction{}, err
	}

	amount, err := parseAmount(raw["amount"])
	if err != nil {
		return domain.Transaction{}, err
	}

	txnType := domain.TransactionType(strings.ToLower(stringField(raw, "type")))
	if txnType != domain.TypeIncome && txnType != domain.TypeExpense {
		// No usable type field. Defaulting to expense is safer than
		// guessing income from a positive sign; categorization flips the
		// type later when salary keywords match.
		txnType = domain.TypeExpense
	}

	merchant := strings.TrimSpace(stringField(raw, "merchant"))
	if merchant == "" {
		merchant = "Unknown"
	}

	description := strings.TrimSpace(stringField(raw, "description"))
	if description == "" {
		description = merchant
	}

	return domain.Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Type:        txnType,
		Merchant:    merchant,
		Description: description,
	}, nil
}

func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("normalizeRecord: missing date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("normalizeRecord: unparseable date %q", value)
}

// parseAmount accepts JSON numbers or display strings ("Rs.1,234.56",
// "$-42"). The amount is normalized through a decimal to two places and
// returned as its absolute value; direction lives in the type field.
func parseAmount(value any) (float64, error) {
	var dec decimal.Decimal
	var err error

	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("normalizeRecord: missing amount")
	case float64:
		dec = decimal.NewFromFloat(v)
	case string:
		clean := strings.TrimSpace(v)
		for _, prefix := range []string{"Rs.", "Rs", "₹", "$"} {
			clean = strings.TrimPrefix(clean, prefix)
		}
		clean = strings.ReplaceAll(clean, ",", "")
		clean = strings.TrimSpace(clean)
		dec, err = decimal.NewFromString(clean)
		if err != nil {
			return 0, fmt.Errorf("normalizeRecord: unparseable amount %q: %w", v, err)
		}
	default:
		return 0, fmt.Errorf("normalizeRecord: amount is %T, want number or string", value)
	}

	amount, _ := dec.Abs().Round(2).Float64()
	return amount, nil
}
