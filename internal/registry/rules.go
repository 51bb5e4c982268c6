package registry

import (
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"niedziele/internal/model"
)

const (
	// FirstRuleYear is the first year of the seven-Sunday regime.
	FirstRuleYear = 2020
	// ChristmasEveHolidayYear is the first year in which 24 December is a
	// day off, which moves the December trading Sundays before it and adds
	// a third one.
	ChristmasEveHolidayYear = 2025
	lastRuleYear            = 9999
)

// Generate applies the statutory rules for year:
//
//   - the last Sunday of January, April, June and August
//   - the Sunday before Easter
//   - the Sundays right before Christmas (two up to 24 December until 2024,
//     three up to 23 December from 2025)
//
// A candidate that is itself a public holiday (the last Sunday of April
// falling on Easter) is dropped. The result is sorted and deduplicated.
func Generate(year int) ([]model.Date, error) {
	if year < FirstRuleYear || year > lastRuleYear {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	lastSundays, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.YEARLY,
		Dtstart:   yearStart,
		Until:     yearEnd,
		Bymonth:   []int{1, 4, 6, 8},
		Byweekday: []rrule.Weekday{rrule.SU.Nth(-1)},
	})
	if err != nil {
		return nil, fmt.Errorf("last-sunday rule: %w", err)
	}

	palmSunday, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.YEARLY,
		Dtstart:  yearStart,
		Until:    yearEnd,
		Byeaster: []int{-7},
	})
	if err != nil {
		return nil, fmt.Errorf("palm-sunday rule: %w", err)
	}

	advent, err := adventSundays(year)
	if err != nil {
		return nil, err
	}

	var candidates []time.Time
	candidates = append(candidates, lastSundays.All()...)
	candidates = append(candidates, palmSunday.All()...)
	candidates = append(candidates, advent...)

	out := make([]model.Date, 0, len(candidates))
	for _, t := range candidates {
		d := model.DateOf(t)
		if _, ok := HolidayName(d); ok {
			continue
		}
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b model.Date) int {
		return a.Time().Compare(b.Time())
	})
	return slices.Compact(out), nil
}

func adventSundays(year int) ([]time.Time, error) {
	count, lastDay := 2, 24
	if year >= ChristmasEveHolidayYear {
		count, lastDay = 3, 23
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   time.Date(year, time.December, 1, 0, 0, 0, 0, time.UTC),
		Until:     time.Date(year, time.December, lastDay, 0, 0, 0, 0, time.UTC),
		Byweekday: []rrule.Weekday{rrule.SU},
	})
	if err != nil {
		return nil, fmt.Errorf("december rule: %w", err)
	}

	all := r.All()
	if len(all) > count {
		all = all[len(all)-count:]
	}
	return all, nil
}
