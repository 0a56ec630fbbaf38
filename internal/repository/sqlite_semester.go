package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
)

type SQLiteSemesterRepo struct {
	db db.DBTX
}

func NewSQLiteSemesterRepo(db db.DBTX) *SQLiteSemesterRepo {
	return &SQLiteSemesterRepo{db: db}
}

const semesterColumns = `id, name, first_week_start, last_week_end, created_at`

func (r *SQLiteSemesterRepo) Create(ctx context.Context, s *domain.Semester) error {
	query := `INSERT INTO semesters (` + semesterColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.FirstWeekStart.ISO(),
		s.LastWeekEnd.ISO(),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting semester: %w", err)
	}
	return nil
}

func (r *SQLiteSemesterRepo) GetByID(ctx context.Context, id string) (*domain.Semester, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+semesterColumns+` FROM semesters WHERE id = ?`, id)
	s, err := scanSemester(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("semester %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSemesterRepo) List(ctx context.Context) ([]*domain.Semester, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+semesterColumns+` FROM semesters ORDER BY first_week_start, name`)
	if err != nil {
		return nil, fmt.Errorf("listing semesters: %w", err)
	}
	defer rows.Close()

	var out []*domain.Semester
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating semesters: %w", err)
	}
	return out, nil
}

func (r *SQLiteSemesterRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM semesters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting semester: %w", err)
	}
	return requireAffected(res, "deleting semester "+id)
}

func scanSemester(row scanner) (*domain.Semester, error) {
	var s domain.Semester
	var first, last, created string
	if err := row.Scan(&s.ID, &s.Name, &first, &last, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning semester: %w", err)
	}

	var err error
	if s.FirstWeekStart, err = parseStoredDate("first_week_start", first); err != nil {
		return nil, err
	}
	if s.LastWeekEnd, err = parseStoredDate("last_week_end", last); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", created); err != nil {
		return nil, err
	}
	return &s, nil
}
