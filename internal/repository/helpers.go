package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/labtable/internal/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// parseStoredDate parses a YYYY-MM-DD column value.
func parseStoredDate(field, s string) (domain.Date, error) {
	d, err := domain.ParseISODate(s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return d, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// scanner is the subset of *sql.Row and *sql.Rows used by scan helpers.
type scanner interface {
	Scan(dest ...any) error
}
