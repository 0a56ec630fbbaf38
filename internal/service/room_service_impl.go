package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
)

type roomService struct {
	rooms    repository.RoomRepo
	observer UseCaseObserver
}

func NewRoomService(rooms repository.RoomRepo, observers ...UseCaseObserver) RoomService {
	return &roomService{rooms: rooms, observer: useCaseObserverOrNoop(observers)}
}

func (s *roomService) Create(ctx context.Context, name string) (room *domain.Room, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "room.create", startedAt, map[string]any{"room": name}, &err)

	name = normalizeName(name)
	if name == "" {
		return nil, invalidInput("room name is required")
	}
	if _, err := s.rooms.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("room %q already exists: %w", name, ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	room = &domain.Room{ID: newID(), Name: name, CreatedAt: nowUTC()}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) List(ctx context.Context) ([]*domain.Room, error) {
	return s.rooms.List(ctx)
}

// Rename changes a room's name. Sessions follow through the foreign key.
func (s *roomService) Rename(ctx context.Context, oldName, newName string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "room.rename", startedAt, map[string]any{"from": oldName, "to": newName}, &err)

	newName = normalizeName(newName)
	if newName == "" {
		return invalidInput("new room name is required")
	}
	room, err := s.rooms.GetByName(ctx, oldName)
	if err != nil {
		return err
	}
	if _, err := s.rooms.GetByName(ctx, newName); err == nil {
		return fmt.Errorf("room %q already exists: %w", newName, ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return s.rooms.Rename(ctx, room.ID, newName)
}

func (s *roomService) Delete(ctx context.Context, name string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "room.delete", startedAt, map[string]any{"room": name}, &err)

	room, err := s.rooms.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, room.ID); err != nil {
		return fmt.Errorf("room %q is still used by sessions: %w", name, err)
	}
	return nil
}
