package registry

import (
	"errors"
	"fmt"
	"time"

	"niedziele/internal/model"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, want YYYY-MM-DD")
	ErrNonSundayDate     = errors.New("date is not a Sunday")
	ErrPublicHoliday     = errors.New("date is a public holiday")
	ErrDuplicateDate     = errors.New("date listed more than once")
	ErrMixedYears        = errors.New("date outside registry year")
	ErrEmpty             = errors.New("no dates")
	ErrUnsupportedYear   = errors.New("year not covered by trading Sunday rules")
)

// DateError ties a validation failure to the offending registry entry.
type DateError struct {
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("registry entry %q: %v", e.Value, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// FromStrings parses and validates an externally supplied list. All
// problems are reported together. year == 0 takes the year of the first
// well-formed entry.
func FromStrings(year int, values []string) ([]model.Date, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}

	var errs []error
	dates := make([]model.Date, 0, len(values))
	for _, v := range values {
		d, err := model.ParseDate(v)
		if err != nil {
			errs = append(errs, &DateError{Value: v, Err: fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)})
			continue
		}
		dates = append(dates, d)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if year == 0 {
		year = dates[0].Year
	}
	if err := Validate(year, dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// Validate checks that every date is a Sunday in year, is not a Polish
// public holiday, and appears once. Order is not checked.
func Validate(year int, dates []model.Date) error {
	if len(dates) == 0 {
		return ErrEmpty
	}

	var errs []error
	seen := make(map[model.Date]bool, len(dates))
	for _, d := range dates {
		fail := func(err error) {
			errs = append(errs, &DateError{Value: d.String(), Err: err})
		}
		if d.Year != year {
			fail(fmt.Errorf("%w %d", ErrMixedYears, year))
		}
		if wd := d.Weekday(); wd != time.Sunday {
			fail(fmt.Errorf("%w (%s)", ErrNonSundayDate, wd))
		}
		if name, ok := HolidayName(d); ok {
			fail(fmt.Errorf("%w (%s)", ErrPublicHoliday, name))
		}
		if seen[d] {
			fail(ErrDuplicateDate)
		}
		seen[d] = true
	}
	return errors.Join(errs...)
}
