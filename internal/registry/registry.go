// Package registry provides the ordered set of Polish trading Sundays
// ("niedziele handlowe") for a year.
package registry

import (
	"fmt"

	"niedziele/internal/model"
)

// Source records where a Registry's dates came from.
type Source string

const (
	SourceBuiltin   Source = "builtin"
	SourceGenerated Source = "generated"
	SourceConfig    Source = "config"
)

// builtin holds the compiled-in tables, in chronological order.
var builtin = map[int][]string{
	2025: {
		"2025-01-26",
		"2025-04-13",
		"2025-04-27",
		"2025-06-29",
		"2025-08-31",
		"2025-12-07",
		"2025-12-14",
		"2025-12-21",
	},
}

// Registry is an immutable ordered list of trading Sundays for one year.
type Registry struct {
	Year   int
	Dates  []model.Date
	Source Source
}

// Len returns the number of dates.
func (r *Registry) Len() int {
	return len(r.Dates)
}

// Strings returns the dates as ISO strings in registry order.
func (r *Registry) Strings() []string {
	return model.Strings(r.Dates)
}

// Builtin returns a copy of the compiled-in table for year, if any.
func Builtin(year int) ([]model.Date, bool) {
	values, ok := builtin[year]
	if !ok {
		return nil, false
	}
	dates, err := model.ParseDates(values)
	if err != nil {
		// The table is static; a malformed entry is an authoring bug.
		panic(fmt.Sprintf("registry: builtin table for %d: %v", year, err))
	}
	return dates, true
}

// BuiltinYears lists years that have a compiled-in table.
func BuiltinYears() []int {
	years := make([]int, 0, len(builtin))
	for y := range builtin {
		years = append(years, y)
	}
	return years
}

// Resolve returns the registry for year. A non-empty override list wins and
// is validated; otherwise the compiled-in table is used when present, and
// the statutory rules are applied for any other supported year.
func Resolve(year int, override []string) (*Registry, error) {
	if len(override) > 0 {
		dates, err := FromStrings(year, override)
		if err != nil {
			return nil, err
		}
		if year == 0 {
			year = dates[0].Year
		}
		return &Registry{Year: year, Dates: dates, Source: SourceConfig}, nil
	}

	if dates, ok := Builtin(year); ok {
		return &Registry{Year: year, Dates: dates, Source: SourceBuiltin}, nil
	}

	dates, err := Generate(year)
	if err != nil {
		return nil, err
	}
	return &Registry{Year: year, Dates: dates, Source: SourceGenerated}, nil
}
