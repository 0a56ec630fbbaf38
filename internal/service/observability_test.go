package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestLogUseCaseObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "grid.build_week",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"week": 2, "semester_id": "s1"},
	})
	out := buf.String()
	assert.Contains(t, out, "use_case=grid.build_week")
	assert.Contains(t, out, "semester_id=s1 week=2")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "room.create", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestServices_ReportUseCases(t *testing.T) {
	env := newTestEnv(t)
	rec := &recordingObserver{}
	svc := NewRoomService(env.rooms, rec)

	_, err := svc.Create(context.Background(), "A101")
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), "A101")
	assert.Error(t, err)

	if assert.Len(t, rec.events, 2) {
		assert.Equal(t, "room.create", rec.events[0].Name)
		assert.True(t, rec.events[0].Success)
		assert.False(t, rec.events[1].Success)
		assert.ErrorIs(t, rec.events[1].Err, ErrConflict)
	}
}
