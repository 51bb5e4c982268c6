package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "niedziele/internal/log"
	"niedziele/internal/model"
)

var ErrNoEvents = errors.New("calendar has no events")

// ReadDates parses an iCalendar document and returns the start date of
// every VEVENT in document order. Timed events contribute the calendar day
// of their DTSTART as written.
func ReadDates(r io.Reader) ([]model.Date, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ICS body")
	}
	// The parser expects every content line, including the last, to be
	// terminated.
	if !bytes.HasSuffix(body, []byte("\n")) {
		body = append(body, '\r', '\n')
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	dates := make([]model.Date, 0, len(events))
	for i, ev := range events {
		d, err := eventDate(ev)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		dates = append(dates, d)
	}

	appLog.Debug("ics read completed", "event_count", len(dates))
	return dates, nil
}

func eventDate(ev *ical.VEvent) (model.Date, error) {
	prop := ev.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return model.Date{}, errors.New("missing DTSTART")
	}
	v := strings.TrimSpace(prop.Value)
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		v = v[:i]
	}
	t, err := time.Parse(model.CompactLayout, v)
	if err != nil {
		return model.Date{}, fmt.Errorf("DTSTART %q: %w", prop.Value, err)
	}
	return model.DateOf(t), nil
}
