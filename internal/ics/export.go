package ics

import (
	"io"
	"strings"

	"niedziele/internal/model"
)

const (
	ProductID    = "-//Niedziele Handlowe//PL"
	CalendarName = "Niedziele Handlowe"
	EventSummary = "Niedziela Handlowa"
	EventDesc    = "Sklepy mogą być otwarte"

	// ContentType is the media type served for exported documents.
	ContentType = "text/calendar; charset=utf-8"

	crlf = "\r\n"
)

// Lines returns the calendar document as individual lines: one VCALENDAR
// wrapping an all-day VEVENT per date, in the given order. Dates are
// neither sorted nor deduplicated.
func Lines(dates []model.Date) []string {
	lines := make([]string, 0, 6+6*len(dates))
	lines = append(lines,
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:"+ProductID,
		"CALSCALE:GREGORIAN",
		"X-WR-CALNAME:"+CalendarName,
	)

	for _, d := range dates {
		lines = append(lines,
			"BEGIN:VEVENT",
			"DTSTART;VALUE=DATE:"+d.Compact(),
			// DTEND is exclusive for all-day events.
			"DTEND;VALUE=DATE:"+d.Next().Compact(),
			"SUMMARY:"+EventSummary,
			"DESCRIPTION:"+EventDesc,
			"END:VEVENT",
		)
	}

	return append(lines, "END:VCALENDAR")
}

// Export renders the calendar document with CRLF between lines. The result
// depends only on dates.
func Export(dates []model.Date) string {
	return strings.Join(Lines(dates), crlf)
}

// Write streams the same bytes Export returns.
func Write(w io.Writer, dates []model.Date) error {
	_, err := io.WriteString(w, Export(dates))
	return err
}
