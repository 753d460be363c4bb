package domain

import (
	"testing"
	"time"
)

func TestAppointmentEndTime_UsesServiceDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a := Appointment{StartTime: start, Service: &Service{DurationMinutes: 45}}
	if got := a.EndTime(); !got.Equal(start.Add(45 * time.Minute)) {
		t.Fatalf("EndTime = %v, want %v", got, start.Add(45*time.Minute))
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.OpenHour != 9 || s.CloseHour != 18 || s.StepMinutes != 30 {
		t.Fatalf("DefaultSettings = %+v", s)
	}
	if err := s.Hours().Validate(); err != nil {
		t.Fatalf("default hours invalid: %v", err)
	}
	if s.Location() != time.UTC {
		t.Fatalf("Location = %v, want UTC", s.Location())
	}
}

func TestBusinessSettingsLocation_FallsBackToUTC(t *testing.T) {
	if loc := (BusinessSettings{TimeZone: "Nowhere/Special"}).Location(); loc != time.UTC {
		t.Fatalf("Location = %v, want UTC", loc)
	}
	loc := (BusinessSettings{TimeZone: "Europe/Lisbon"}).Location()
	if loc.String() != "Europe/Lisbon" {
		t.Fatalf("Location = %v, want Europe/Lisbon", loc)
	}
}
