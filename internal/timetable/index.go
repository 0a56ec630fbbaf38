package timetable

import "github.com/alexanderramin/labtable/internal/domain"

// HiddenStatuses are never rendered in a grid.
var HiddenStatuses = map[domain.SessionStatus]bool{
	domain.SessionPending:  true,
	domain.SessionRejected: true,
}

// Visible reports whether s can occupy a cell on date d: its status is not
// hidden and d is not one of its cancellation dates.
func Visible(s *domain.Session, d domain.Date) bool {
	return !HiddenStatuses[s.Status] && !s.CancelledOn(d)
}

func matches(s *domain.Session, day domain.DayOfWeek, period int, room string, date domain.Date) bool {
	return s.RoomName == room &&
		s.DayOfWeek == day &&
		s.CoversPeriod(period) &&
		Visible(s, date)
}

// OccupiesCell returns every session occupying (day, period, room) on date,
// in input order. More than one result means the sessions overlap.
func OccupiesCell(sessions []domain.Session, day domain.DayOfWeek, period int, room string, date domain.Date) []domain.Session {
	var out []domain.Session
	for i := range sessions {
		if matches(&sessions[i], day, period, room, date) {
			out = append(out, sessions[i])
		}
	}
	return out
}

type roomDay struct {
	room string
	day  domain.DayOfWeek
}

// Index buckets sessions by room and day so cell lookups only scan the
// sessions that can possibly match.
type Index struct {
	buckets map[roomDay][]domain.Session
	unknown []domain.Session
}

// NewSessionIndex builds an Index. Sessions whose day is not a canonical
// weekday are kept aside and reported by Unknown.
func NewSessionIndex(sessions []domain.Session) *Index {
	idx := &Index{buckets: make(map[roomDay][]domain.Session)}
	for _, s := range sessions {
		if !s.DayOfWeek.Valid() {
			idx.unknown = append(idx.unknown, s)
			continue
		}
		k := roomDay{room: s.RoomName, day: s.DayOfWeek}
		idx.buckets[k] = append(idx.buckets[k], s)
	}
	return idx
}

// Occupying has the same semantics as OccupiesCell.
func (idx *Index) Occupying(day domain.DayOfWeek, period int, room string, date domain.Date) []domain.Session {
	return OccupiesCell(idx.buckets[roomDay{room: room, day: day}], day, period, room, date)
}

// Unknown returns sessions whose day token did not parse, in input order.
func (idx *Index) Unknown() []domain.Session {
	return idx.unknown
}
