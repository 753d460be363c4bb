package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlots_DefaultHours(t *testing.T) {
	slots := GenerateTimeSlots(DefaultBusinessHours)

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "09:30", slots[1].String())
	assert.Equal(t, "17:30", slots[len(slots)-1].String())
}

func TestGenerateTimeSlots_IsDeterministic(t *testing.T) {
	assert.Equal(t, GenerateTimeSlots(DefaultBusinessHours), GenerateTimeSlots(DefaultBusinessHours))
}

func TestGenerateTimeSlots_StepNotDividingWindow(t *testing.T) {
	slots := GenerateTimeSlots(BusinessHours{OpenHour: 9, CloseHour: 10, StepMinutes: 25})

	assert.Equal(t, []string{"09:00", "09:25", "09:50"}, FormatSlots(slots))
}

func TestGenerateTimeSlots_DegenerateHours(t *testing.T) {
	cases := []BusinessHours{
		{OpenHour: 9, CloseHour: 18, StepMinutes: 0},
		{OpenHour: 9, CloseHour: 18, StepMinutes: -15},
		{OpenHour: 18, CloseHour: 9, StepMinutes: 30},
		{OpenHour: 9, CloseHour: 9, StepMinutes: 30},
	}
	for _, h := range cases {
		slots := GenerateTimeSlots(h)
		assert.NotNil(t, slots)
		assert.Empty(t, slots, "hours %+v", h)
	}
}

func TestParseTimeSlot(t *testing.T) {
	s, err := ParseTimeSlot(" 07:05 ")
	require.NoError(t, err)
	assert.Equal(t, TimeSlot{Hour: 7, Minute: 5}, s)
	assert.Equal(t, "07:05", s.String())

	for _, bad := range []string{"", "7:05", "07:5", "24:00", "12:60", "ab:cd", "0730"} {
		_, err := ParseTimeSlot(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestBusinessHoursValidate(t *testing.T) {
	assert.NoError(t, DefaultBusinessHours.Validate())
	assert.NoError(t, BusinessHours{OpenHour: 0, CloseHour: 24, StepMinutes: 15}.Validate())

	cases := []struct {
		hours BusinessHours
		want  string
	}{
		{BusinessHours{OpenHour: -1, CloseHour: 18, StepMinutes: 30}, "open_hour must be between 0 and 23"},
		{BusinessHours{OpenHour: 9, CloseHour: 25, StepMinutes: 30}, "close_hour must be between 1 and 24"},
		{BusinessHours{OpenHour: 10, CloseHour: 10, StepMinutes: 30}, "open_hour must be before close_hour"},
		{BusinessHours{OpenHour: 9, CloseHour: 18, StepMinutes: 0}, "step_minutes must be positive"},
		{BusinessHours{OpenHour: 9, CloseHour: 10, StepMinutes: 90}, "step_minutes exceeds business hours"},
	}
	for _, tc := range cases {
		err := tc.hours.Validate()
		require.Error(t, err)
		assert.Equal(t, tc.want, err.Error())
	}
}

func TestParseDateAndDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	day, err := ParseDate("2026-03-29", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, day.Location())

	w := DayWindow(day.Add(15 * time.Hour))
	assert.True(t, w.Start.Equal(day))
	// DST starts in Lisbon on 2026-03-29, so the day is 23 hours long.
	assert.Equal(t, 23*time.Hour, w.End.Sub(w.Start))

	_, err = ParseDate("29/03/2026", loc)
	assert.Error(t, err)
}
