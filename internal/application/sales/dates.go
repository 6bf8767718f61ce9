package sales

import (
	"strings"
	"time"

	"github.com/jhoicas/reciclagem-api/internal/domain"
)

const (
	dateFormatBR     = "02/01/2006"
	dateTimeFormatBR = "02/01/2006 15:04:05"
)

// parseDate acepta AAAA-MM-DD o RFC3339.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(field, "data inválida, use AAAA-MM-DD")
}

// parseOptionalDate nil si raw está vacío.
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
