package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
)

// SQLiteSessionRepo stores sessions and their cancellation dates. Callers
// that need Create or SetCancellations to be atomic pass a transaction.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

const sessionColumns = `id, semester_id, day_of_week, start_period, end_period, room_name, status,
	course_name, instructor, note, created_at, updated_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.SemesterID,
		string(s.DayOfWeek),
		s.StartPeriod,
		s.EndPeriod,
		s.RoomName,
		string(s.Status),
		s.CourseName,
		s.Instructor,
		s.Note,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return r.insertCancellations(ctx, s.ID, s.CancellationDates)
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	byID, err := r.loadCancellations(ctx, `WHERE session_id = ?`, id)
	if err != nil {
		return nil, err
	}
	s.CancellationDates = byID[s.ID]
	return s, nil
}

// ListBySemester returns the semester's sessions ordered by room, day and
// start period, each with its cancellation dates attached.
func (r *SQLiteSessionRepo) ListBySemester(ctx context.Context, semesterID string, filter SessionFilter) ([]domain.Session, error) {
	where := []string{"semester_id = ?"}
	args := []any{semesterID}
	if filter.RoomName != "" {
		where = append(where, "room_name = ?")
		args = append(args, filter.RoomName)
	}
	if filter.DayOfWeek != "" {
		where = append(where, "day_of_week = ?")
		args = append(args, string(filter.DayOfWeek))
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY room_name, day_of_week, start_period, id`
	sessions, err := r.querySessions(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// The rows above must be closed before this second query; in-memory
	// databases run on a single connection.
	byID, err := r.loadCancellations(ctx,
		`WHERE session_id IN (SELECT id FROM sessions WHERE semester_id = ?)`, semesterID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].CancellationDates = byID[sessions[i].ID]
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	query := `UPDATE sessions SET day_of_week = ?, start_period = ?, end_period = ?, room_name = ?,
		status = ?, course_name = ?, instructor = ?, note = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.DayOfWeek),
		s.StartPeriod,
		s.EndPeriod,
		s.RoomName,
		string(s.Status),
		s.CourseName,
		s.Instructor,
		s.Note,
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return requireAffected(res, "updating session "+s.ID)
}

func (r *SQLiteSessionRepo) SetCancellations(ctx context.Context, sessionID string, dates []domain.Date) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_cancellations WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing cancellations: %w", err)
	}
	return r.insertCancellations(ctx, sessionID, dates)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return requireAffected(res, "deleting session "+id)
}

func (r *SQLiteSessionRepo) insertCancellations(ctx context.Context, sessionID string, dates []domain.Date) error {
	for _, d := range dates {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO session_cancellations (session_id, date) VALUES (?, ?)`,
			sessionID, d.ISO())
		if err != nil {
			return fmt.Errorf("inserting cancellation %s: %w", d, err)
		}
	}
	return nil
}

// loadCancellations returns cancellation dates keyed by session ID, each
// list in ascending date order.
func (r *SQLiteSessionRepo) loadCancellations(ctx context.Context, where string, args ...any) (map[string][]domain.Date, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, date FROM session_cancellations `+where+` ORDER BY session_id, date`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cancellations: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Date)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning cancellation: %w", err)
		}
		d, err := parseStoredDate("cancellation date", raw)
		if err != nil {
			return nil, err
		}
		out[id] = append(out[id], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cancellations: %w", err)
	}
	return out, nil
}

func (r *SQLiteSessionRepo) querySessions(ctx context.Context, query string, args ...any) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}

func scanSession(row scanner) (*domain.Session, error) {
	var s domain.Session
	var day, status, created, updated string
	err := row.Scan(
		&s.ID, &s.SemesterID, &day, &s.StartPeriod, &s.EndPeriod, &s.RoomName, &status,
		&s.CourseName, &s.Instructor, &s.Note, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	s.DayOfWeek = domain.DayOfWeek(day)
	s.Status = domain.SessionStatus(status)

	if s.CreatedAt, err = parseTime("created_at", created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updated); err != nil {
		return nil, err
	}
	return &s, nil
}
