package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
)

type SQLiteRoomRepo struct {
	db db.DBTX
}

func NewSQLiteRoomRepo(db db.DBTX) *SQLiteRoomRepo {
	return &SQLiteRoomRepo{db: db}
}

func (r *SQLiteRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO rooms (id, name, created_at) VALUES (?, ?, ?)`,
		room.ID, room.Name, formatTime(room.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting room %q: %w", room.Name, err)
	}
	return nil
}

func (r *SQLiteRoomRepo) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM rooms WHERE name = ?`, name)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %q: %w", name, ErrNotFound)
	}
	return room, err
}

// List returns rooms ordered by name.
func (r *SQLiteRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var out []*domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}
	return out, nil
}

// Rename changes a room's name; sessions follow through ON UPDATE CASCADE.
func (r *SQLiteRoomRepo) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("renaming room: %w", err)
	}
	return requireAffected(res, "renaming room "+id)
}

func (r *SQLiteRoomRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}
	return requireAffected(res, "deleting room "+id)
}

func scanRoom(row scanner) (*domain.Room, error) {
	var room domain.Room
	var created string
	if err := row.Scan(&room.ID, &room.Name, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning room: %w", err)
	}
	var err error
	if room.CreatedAt, err = parseTime("created_at", created); err != nil {
		return nil, err
	}
	return &room, nil
}
