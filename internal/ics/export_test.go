package ics

import (
	"bytes"
	"regexp"
	"slices"
	"strings"
	"testing"

	"niedziele/internal/model"
	"niedziele/internal/registry"
)

func mustDates(t *testing.T, values ...string) []model.Date {
	t.Helper()
	dates, err := model.ParseDates(values)
	if err != nil {
		t.Fatal(err)
	}
	return dates
}

func TestExportTwoDates(t *testing.T) {
	got := Export(mustDates(t, "2025-01-26", "2025-04-13"))

	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Niedziele Handlowe//PL",
		"CALSCALE:GREGORIAN",
		"X-WR-CALNAME:Niedziele Handlowe",
		"BEGIN:VEVENT",
		"DTSTART;VALUE=DATE:20250126",
		"DTEND;VALUE=DATE:20250127",
		"SUMMARY:Niedziela Handlowa",
		"DESCRIPTION:Sklepy mogą być otwarte",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"DTSTART;VALUE=DATE:20250413",
		"DTEND;VALUE=DATE:20250414",
		"SUMMARY:Niedziela Handlowa",
		"DESCRIPTION:Sklepy mogą być otwarte",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	if got != want {
		t.Errorf("Export mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestExportBuiltinRegistry(t *testing.T) {
	dates, _ := registry.Builtin(2025)
	doc := Export(dates)

	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n") {
		t.Error("document must start with BEGIN:VCALENDAR")
	}
	if !strings.HasSuffix(doc, "\r\nEND:VCALENDAR") {
		t.Error("document must end with END:VCALENDAR")
	}
	if n := strings.Count(doc, "BEGIN:VEVENT"); n != 8 {
		t.Errorf("VEVENT count = %d, want 8", n)
	}
	if strings.Count(doc, "END:VEVENT") != 8 {
		t.Error("unbalanced VEVENT blocks")
	}

	// Every newline is part of a CRLF pair.
	if strings.Count(doc, "\n") != strings.Count(doc, "\r\n") {
		t.Error("found bare LF line endings")
	}

	for _, d := range dates {
		start := "DTSTART;VALUE=DATE:" + d.Compact()
		end := "DTEND;VALUE=DATE:" + d.Next().Compact()
		if strings.Count(doc, start) != 1 {
			t.Errorf("expected exactly one %s", start)
		}
		if !strings.Contains(doc, start+"\r\n"+end+"\r\n") {
			t.Errorf("DTEND for %s should be %s", d, end)
		}
	}
	if !strings.Contains(doc, "DTEND;VALUE=DATE:20251222") {
		t.Error("2025-12-21 should end on 20251222")
	}
}

func TestExportRollover(t *testing.T) {
	tests := []struct {
		date    string
		wantEnd string
	}{
		{"2025-12-31", "20260101"},
		{"2024-02-29", "20240301"},
		{"2025-02-28", "20250301"},
		{"2025-08-31", "20250901"},
	}
	for _, tt := range tests {
		doc := Export(mustDates(t, tt.date))
		if !strings.Contains(doc, "DTEND;VALUE=DATE:"+tt.wantEnd) {
			t.Errorf("%s: want DTEND %s in\n%s", tt.date, tt.wantEnd, doc)
		}
	}
}

func TestExportPreservesOrderAndDuplicates(t *testing.T) {
	doc := Export(mustDates(t, "2025-12-21", "2025-01-26", "2025-12-21"))

	re := regexp.MustCompile(`DTSTART;VALUE=DATE:(\d{8})`)
	var got []string
	for _, m := range re.FindAllStringSubmatch(doc, -1) {
		got = append(got, m[1])
	}
	want := []string{"20251221", "20250126", "20251221"}
	if !slices.Equal(got, want) {
		t.Errorf("DTSTART order = %v, want %v", got, want)
	}
}

func TestExportEmpty(t *testing.T) {
	want := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//Niedziele Handlowe//PL\r\nCALSCALE:GREGORIAN\r\nX-WR-CALNAME:Niedziele Handlowe\r\nEND:VCALENDAR"
	if got := Export(nil); got != want {
		t.Errorf("Export(nil) = %q", got)
	}
}

func TestExportIdempotent(t *testing.T) {
	dates, _ := registry.Builtin(2025)
	a := Export(dates)
	b := Export(dates)
	if a != b {
		t.Error("two exports of the same registry differ")
	}

	var buf bytes.Buffer
	if err := Write(&buf, dates); err != nil {
		t.Fatal(err)
	}
	if buf.String() != a {
		t.Error("Write and Export disagree")
	}
}
