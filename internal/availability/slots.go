package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SlotFormat is the display layout of a TimeSlot ("HH:mm", 24-hour).
	SlotFormat = "15:04"
	DateFormat = "2006-01-02"
)

// BusinessHours bounds the bookable part of a day. Slots start at OpenHour and
// advance by StepMinutes while they start before CloseHour.
type BusinessHours struct {
	OpenHour    int
	CloseHour   int
	StepMinutes int
}

var DefaultBusinessHours = BusinessHours{OpenHour: 9, CloseHour: 18, StepMinutes: 30}

func (h BusinessHours) Validate() error {
	if h.OpenHour < 0 || h.OpenHour > 23 {
		return errors.New("open_hour must be between 0 and 23")
	}
	if h.CloseHour < 1 || h.CloseHour > 24 {
		return errors.New("close_hour must be between 1 and 24")
	}
	if h.OpenHour >= h.CloseHour {
		return errors.New("open_hour must be before close_hour")
	}
	if h.StepMinutes <= 0 {
		return errors.New("step_minutes must be positive")
	}
	if h.StepMinutes > (h.CloseHour-h.OpenHour)*60 {
		return errors.New("step_minutes exceeds business hours")
	}
	return nil
}

// Close returns the closing boundary on the calendar day of day, in day's location.
func (h BusinessHours) Close(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), h.CloseHour, 0, 0, 0, day.Location())
}

// TimeSlot is a wall-clock start time within a business day.
type TimeSlot struct {
	Hour   int
	Minute int
}

func slotFromMinutes(m int) TimeSlot {
	return TimeSlot{Hour: m / 60, Minute: m % 60}
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// On places the slot on the calendar day of day, in day's location.
func (s TimeSlot) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, day.Location())
}

// ParseTimeSlot parses "HH:mm".
func ParseTimeSlot(v string) (TimeSlot, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q", v)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q", v)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return TimeSlot{}, fmt.Errorf("invalid time slot %q", v)
	}
	return TimeSlot{Hour: h, Minute: m}, nil
}

// GenerateTimeSlots returns the candidate start times for a day: from the
// opening hour, every StepMinutes, while the start is before the closing hour.
// A slot's end may pass the closing hour; AvailableSlots checks that per service.
func GenerateTimeSlots(h BusinessHours) []TimeSlot {
	if h.StepMinutes <= 0 || h.OpenHour >= h.CloseHour {
		return []TimeSlot{}
	}

	open := h.OpenHour * 60
	closing := h.CloseHour * 60
	out := make([]TimeSlot, 0, (closing-open)/h.StepMinutes+1)
	for m := open; m < closing; m += h.StepMinutes {
		out = append(out, slotFromMinutes(m))
	}
	return out
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(v string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, strings.TrimSpace(v), loc)
}

// DayWindow returns [midnight, next midnight) of day's calendar date.
func DayWindow(day time.Time) Interval {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// FormatSlots renders slots for display.
func FormatSlots(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
