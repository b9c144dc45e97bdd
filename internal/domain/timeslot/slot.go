package timeslot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidSlotRange = errors.New("slot start must be before end")
)

// TimeOfDay is a wall-clock time within a day, minute resolution.
// Slots are reference data keyed by date at booking time, so the
// date-free representation keeps overlap arithmetic trivial.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		parsed, err = time.Parse("15:04:05", s)
		if err != nil {
			return TimeOfDay{}, ErrInvalidTimeOfDay
		}
	}
	return TimeOfDay{minutes: parsed.Hour()*60 + parsed.Minute()}, nil
}

func (t TimeOfDay) Hour() int   { return t.minutes / 60 }
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.minutes > other.minutes }

// At anchors the wall-clock time onto a calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Slot is a fixed bookable interval within a day. Immutable reference
// data; created by administrators, never mutated by end users.
type Slot struct {
	id    uuid.UUID
	start TimeOfDay
	end   TimeOfDay
}

func NewSlot(id uuid.UUID, start, end TimeOfDay) (Slot, error) {
	if !start.Before(end) {
		return Slot{}, ErrInvalidSlotRange
	}
	return Slot{id: id, start: start, end: end}, nil
}

func ReconstructSlot(id uuid.UUID, start, end TimeOfDay) Slot {
	return Slot{id: id, start: start, end: end}
}

func (s Slot) ID() uuid.UUID    { return s.id }
func (s Slot) Start() TimeOfDay { return s.start }
func (s Slot) End() TimeOfDay   { return s.end }

// Overlaps reports whether two slots conflict, boundaries inclusive:
// startA <= endB AND endA >= startB. Covers full containment in either
// direction and partial overlap on either edge.
func (s Slot) Overlaps(other Slot) bool {
	return !s.start.After(other.end) && !s.end.Before(other.start)
}

// FindConflicts returns the ids of every catalog slot that overlaps at
// least one booked slot. Callers pass the slots of all pending/active
// bookings for a (room, date); an empty booked set yields an empty map.
func FindConflicts(catalog []Slot, booked []Slot) map[uuid.UUID]struct{} {
	conflicts := make(map[uuid.UUID]struct{})
	for _, b := range booked {
		for _, s := range catalog {
			if s.Overlaps(b) {
				conflicts[s.id] = struct{}{}
			}
		}
	}
	return conflicts
}

// Available filters the catalog down to slots that are not in conflict
// and, when date is today relative to now, have not already started.
func Available(catalog []Slot, conflicts map[uuid.UUID]struct{}, date time.Time, now time.Time) []Slot {
	sameDay := date.Year() == now.Year() && date.YearDay() == now.YearDay()

	out := make([]Slot, 0, len(catalog))
	for _, s := range catalog {
		if _, taken := conflicts[s.id]; taken {
			continue
		}
		if sameDay && !s.start.At(now).After(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}
