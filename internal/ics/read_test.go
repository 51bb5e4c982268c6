package ics

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"niedziele/internal/model"
	"niedziele/internal/registry"
)

func TestReadDatesRoundTrip(t *testing.T) {
	dates, _ := registry.Builtin(2025)

	got, err := ReadDates(strings.NewReader(Export(dates)))
	if err != nil {
		t.Fatalf("ReadDates: %v", err)
	}
	if !slices.Equal(got, dates) {
		t.Errorf("ReadDates = %v, want %v", model.Strings(got), model.Strings(dates))
	}
}

func TestReadDatesForeignCalendar(t *testing.T) {
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Example//EN",
		"BEGIN:VEVENT",
		"UID:a@example.com",
		"DTSTAMP:20250101T000000Z",
		"DTSTART;VALUE=DATE:20250126",
		"SUMMARY:one",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b@example.com",
		"DTSTAMP:20250101T000000Z",
		"DTSTART:20250413T090000Z",
		"SUMMARY:two",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	got, err := ReadDates(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2025-01-26", "2025-04-13"}
	if gotS := model.Strings(got); !slices.Equal(gotS, want) {
		t.Errorf("ReadDates = %v, want %v", gotS, want)
	}
}

func TestReadDatesErrors(t *testing.T) {
	if _, err := ReadDates(strings.NewReader("  ")); err == nil {
		t.Error("expected error for empty body")
	}
	if _, err := ReadDates(strings.NewReader(Export(nil))); !errors.Is(err, ErrNoEvents) {
		t.Errorf("error = %v, want ErrNoEvents", err)
	}
}
