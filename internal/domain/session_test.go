package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestSessionValidate(t *testing.T) {
	valid := Session{RoomName: "A101", DayOfWeek: Monday, StartPeriod: 3, EndPeriod: 5}
	require.NoError(t, valid.Validate())

	cases := map[string]func(s *Session){
		"room":   func(s *Session) { s.RoomName = "" },
		"day":    func(s *Session) { s.DayOfWeek = "FUNDAY" },
		"period": func(s *Session) { s.StartPeriod = 0 },
		"before": func(s *Session) { s.EndPeriod = 2 },
		"status": func(s *Session) { s.Status = "ARCHIVED" },
	}
	for want, mutate := range cases {
		s := valid
		mutate(&s)
		err := s.Validate()
		require.Error(t, err, want)
		assert.Contains(t, err.Error(), want)
	}
}

func TestSession_PeriodHelpers(t *testing.T) {
	s := Session{StartPeriod: 3, EndPeriod: 5}
	assert.Equal(t, 3, s.SpanLength())
	assert.True(t, s.CoversPeriod(3))
	assert.True(t, s.CoversPeriod(5))
	assert.False(t, s.CoversPeriod(6))

	assert.True(t, s.OverlapsPeriods(&Session{StartPeriod: 5, EndPeriod: 7}))
	assert.False(t, s.OverlapsPeriods(&Session{StartPeriod: 6, EndPeriod: 7}))
}

func TestSession_StatusTransitions(t *testing.T) {
	s := &Session{Status: SessionPending}
	require.NoError(t, s.Approve(testNow))
	assert.Equal(t, SessionActive, s.Status)
	assert.Equal(t, testNow, s.UpdatedAt)

	err := s.Reject(testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACTIVE")

	require.NoError(t, s.Cancel(testNow))
	assert.Equal(t, SessionCancelled, s.Status)

	p := &Session{Status: SessionPending}
	require.NoError(t, p.Reject(testNow))
	assert.Equal(t, SessionRejected, p.Status)
	assert.Error(t, p.Approve(testNow))
}

func TestSession_Cancellations(t *testing.T) {
	s := &Session{}
	d1 := MustParseDate("13/01/2025")
	d2 := MustParseDate("06/01/2025")

	assert.True(t, s.AddCancellation(d1))
	assert.True(t, s.AddCancellation(d2))
	assert.False(t, s.AddCancellation(d1), "duplicate is ignored")
	assert.Equal(t, []Date{d2, d1}, s.CancellationDates, "kept sorted")

	assert.True(t, s.CancelledOn(d1))
	assert.True(t, s.RemoveCancellation(d1))
	assert.False(t, s.RemoveCancellation(d1))
	assert.False(t, s.CancelledOn(d1))
}

func TestLessonTimeValidate(t *testing.T) {
	require.NoError(t, (&LessonTime{Number: 1, StartTime: "07:00", EndTime: "07:45"}).Validate())
	assert.Error(t, (&LessonTime{Number: 0, StartTime: "07:00", EndTime: "07:45"}).Validate())
	assert.Error(t, (&LessonTime{Number: 1, StartTime: "7:00", EndTime: "07:45"}).Validate())
	assert.Error(t, (&LessonTime{Number: 1, StartTime: "08:00", EndTime: "07:45"}).Validate())
}

func TestDefaultLessonTimes(t *testing.T) {
	lessons := DefaultLessonTimes(16)
	require.Len(t, lessons, 16)
	assert.Equal(t, LessonTime{Number: 1, StartTime: "07:00", EndTime: "07:45"}, lessons[0])
	assert.Equal(t, LessonTime{Number: 2, StartTime: "07:50", EndTime: "08:35"}, lessons[1])
	for _, l := range lessons {
		require.NoError(t, l.Validate())
	}
}
