package availability

import (
	"time"

	"github.com/google/uuid"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals share any instant.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// OccupiedInterval is the time consumed by a booked appointment.
type OccupiedInterval struct {
	AppointmentID uuid.UUID
	Interval
}

// EditExclusion identifies the appointment being rescheduled. Its own
// interval must not count against the slots offered for it.
type EditExclusion struct {
	AppointmentID uuid.UUID
	Start         time.Time
	End           time.Time
}

func (e EditExclusion) matches(occ OccupiedInterval) bool {
	if !occ.Start.Equal(e.Start) {
		return false
	}
	if e.AppointmentID == uuid.Nil || occ.AppointmentID == uuid.Nil {
		return true
	}
	return e.AppointmentID == occ.AppointmentID
}

type Mode string

const (
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// Request holds the inputs of one availability evaluation.
//
// Date is any instant on the target day; its location is the business time
// zone. Occupied == nil means bookings were not loaded, which yields no slots;
// an empty non-nil slice means the day has no bookings. Editing is nil while
// creating a new appointment.
type Request struct {
	Slots    []TimeSlot
	Hours    BusinessHours
	Date     time.Time
	Duration time.Duration
	Occupied []OccupiedInterval
	Now      time.Time
	Editing  *EditExclusion
}

func (r Request) Mode() Mode {
	if r.Editing != nil {
		return ModeEditing
	}
	return ModeCreating
}

// AvailableSlots returns, in input order, the slots whose booking of
// r.Duration fits before closing, overlaps no occupied interval other than the
// edited appointment, and does not start before r.Now when the day is today.
// The result is never nil and the inputs are not modified.
func AvailableSlots(r Request) []TimeSlot {
	out := make([]TimeSlot, 0, len(r.Slots))
	if r.Duration <= 0 || r.Date.IsZero() || r.Occupied == nil {
		return out
	}

	day := r.Date
	closing := r.Hours.Close(day)
	now := r.Now.In(day.Location())
	today := sameDay(day, now)

	for _, slot := range r.Slots {
		candidate := Interval{Start: slot.On(day)}
		candidate.End = candidate.Start.Add(r.Duration)

		if candidate.End.After(closing) {
			continue
		}
		if Conflicts(candidate, r.Occupied, r.Editing) {
			continue
		}
		if today && candidate.Start.Before(now) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// Conflicts reports whether candidate overlaps any occupied interval. When
// editing is set, the first interval matching it is ignored.
func Conflicts(candidate Interval, occupied []OccupiedInterval, editing *EditExclusion) bool {
	skipped := false
	for _, occ := range occupied {
		if editing != nil && !skipped && editing.matches(occ) {
			skipped = true
			continue
		}
		if blocks(candidate, occ.Interval) {
			return true
		}
	}
	return false
}

// blocks fails closed on malformed intervals: a missing bound blocks every
// candidate, reversed bounds are swapped and an empty interval covers its instant.
func blocks(candidate, occ Interval) bool {
	if occ.Start.IsZero() || occ.End.IsZero() {
		return true
	}
	start, end := occ.Start, occ.End
	if end.Before(start) {
		start, end = end, start
	}
	if !end.After(start) {
		end = start.Add(time.Nanosecond)
	}
	return candidate.Overlaps(Interval{Start: start, End: end})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
