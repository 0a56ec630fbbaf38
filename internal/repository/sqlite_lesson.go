package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
)

type SQLiteLessonTimeRepo struct {
	db db.DBTX
}

func NewSQLiteLessonTimeRepo(db db.DBTX) *SQLiteLessonTimeRepo {
	return &SQLiteLessonTimeRepo{db: db}
}

func (r *SQLiteLessonTimeRepo) Upsert(ctx context.Context, l *domain.LessonTime) error {
	query := `INSERT INTO lesson_times (number, start_time, end_time) VALUES (?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET start_time = excluded.start_time, end_time = excluded.end_time`
	if _, err := r.db.ExecContext(ctx, query, l.Number, l.StartTime, l.EndTime); err != nil {
		return fmt.Errorf("upserting lesson %d: %w", l.Number, err)
	}
	return nil
}

func (r *SQLiteLessonTimeRepo) List(ctx context.Context) ([]domain.LessonTime, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT number, start_time, end_time FROM lesson_times ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("listing lesson times: %w", err)
	}
	defer rows.Close()

	var out []domain.LessonTime
	for rows.Next() {
		var l domain.LessonTime
		if err := rows.Scan(&l.Number, &l.StartTime, &l.EndTime); err != nil {
			return nil, fmt.Errorf("scanning lesson time: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson times: %w", err)
	}
	return out, nil
}

func (r *SQLiteLessonTimeRepo) Delete(ctx context.Context, number int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lesson_times WHERE number = ?`, number)
	if err != nil {
		return fmt.Errorf("deleting lesson %d: %w", number, err)
	}
	return requireAffected(res, fmt.Sprintf("deleting lesson %d", number))
}
