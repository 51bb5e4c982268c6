package registry

import (
	"errors"
	"slices"
	"testing"
	"time"

	"niedziele/internal/model"
)

func TestBuiltin2025(t *testing.T) {
	dates, ok := Builtin(2025)
	if !ok {
		t.Fatal("expected a compiled-in table for 2025")
	}
	want := []string{
		"2025-01-26", "2025-04-13", "2025-04-27", "2025-06-29",
		"2025-08-31", "2025-12-07", "2025-12-14", "2025-12-21",
	}
	if got := model.Strings(dates); !slices.Equal(got, want) {
		t.Errorf("Builtin(2025) = %v, want %v", got, want)
	}
}

func TestBuiltinTablesAreValid(t *testing.T) {
	for _, year := range BuiltinYears() {
		dates, _ := Builtin(year)
		if err := Validate(year, dates); err != nil {
			t.Errorf("builtin %d: %v", year, err)
		}
	}
}

func TestBuiltinMatchesRules(t *testing.T) {
	for _, year := range BuiltinYears() {
		dates, _ := Builtin(year)
		generated, err := Generate(year)
		if err != nil {
			t.Fatalf("Generate(%d): %v", year, err)
		}
		if !slices.Equal(dates, generated) {
			t.Errorf("year %d: builtin %v, rules %v", year, model.Strings(dates), model.Strings(generated))
		}
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	a, _ := Builtin(2025)
	a[0] = model.Date{}
	b, _ := Builtin(2025)
	if b[0].IsZero() {
		t.Fatal("Builtin must not expose the shared table")
	}
}

func TestGenerateKnownYears(t *testing.T) {
	tests := []struct {
		year int
		want []string
	}{
		{2022, []string{"2022-01-30", "2022-04-10", "2022-04-24", "2022-06-26", "2022-08-28", "2022-12-11", "2022-12-18"}},
		{2023, []string{"2023-01-29", "2023-04-02", "2023-04-30", "2023-06-25", "2023-08-27", "2023-12-17", "2023-12-24"}},
		{2024, []string{"2024-01-28", "2024-03-24", "2024-04-28", "2024-06-30", "2024-08-25", "2024-12-15", "2024-12-22"}},
		{2026, []string{"2026-01-25", "2026-03-29", "2026-04-26", "2026-06-28", "2026-08-30", "2026-12-06", "2026-12-13", "2026-12-20"}},
	}
	for _, tt := range tests {
		got, err := Generate(tt.year)
		if err != nil {
			t.Fatalf("Generate(%d): %v", tt.year, err)
		}
		if gotS := model.Strings(got); !slices.Equal(gotS, tt.want) {
			t.Errorf("Generate(%d) = %v, want %v", tt.year, gotS, tt.want)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	for year := FirstRuleYear; year <= 2100; year++ {
		dates, err := Generate(year)
		if err != nil {
			t.Fatalf("Generate(%d): %v", year, err)
		}
		if err := Validate(year, dates); err != nil {
			t.Errorf("Generate(%d) produced invalid registry: %v", year, err)
		}
		for i := 1; i < len(dates); i++ {
			if !dates[i-1].Before(dates[i]) {
				t.Errorf("Generate(%d) not strictly ascending at %d: %v", year, i, model.Strings(dates))
			}
		}

		easter := EasterSunday(year)
		palm := easter.AddDays(-7)
		if !slices.Contains(dates, palm) {
			t.Errorf("Generate(%d) missing Sunday before Easter %s", year, palm)
		}
		if slices.Contains(dates, easter) {
			t.Errorf("Generate(%d) contains Easter Sunday %s", year, easter)
		}
	}
}

func TestGenerateUnsupportedYear(t *testing.T) {
	for _, year := range []int{0, 1999, FirstRuleYear - 1, 10000} {
		if _, err := Generate(year); !errors.Is(err, ErrUnsupportedYear) {
			t.Errorf("Generate(%d) error = %v, want ErrUnsupportedYear", year, err)
		}
	}
}

func TestValidate(t *testing.T) {
	d := func(s string) model.Date {
		t.Helper()
		v, err := model.ParseDate(s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	tests := []struct {
		name  string
		year  int
		dates []model.Date
		want  error
	}{
		{"valid unsorted", 2025, []model.Date{d("2025-12-21"), d("2025-01-26")}, nil},
		{"weekday", 2025, []model.Date{d("2025-12-31")}, ErrNonSundayDate},
		{"easter", 2025, []model.Date{d("2025-04-20")}, ErrPublicHoliday},
		{"pentecost", 2025, []model.Date{d("2025-06-08")}, ErrPublicHoliday},
		{"duplicate", 2025, []model.Date{d("2025-01-26"), d("2025-01-26")}, ErrDuplicateDate},
		{"other year", 2025, []model.Date{d("2026-01-25")}, ErrMixedYears},
		{"empty", 2025, nil, ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.year, tt.dates)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromStrings(t *testing.T) {
	dates, err := FromStrings(0, []string{"2025-01-26", "2025-04-13"})
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || dates[1] != (model.Date{Year: 2025, Month: time.April, Day: 13}) {
		t.Errorf("FromStrings = %v", dates)
	}

	_, err = FromStrings(2025, []string{"2025-01-26", "26.01.2025", "2025-02-30"})
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("error = %v, want ErrInvalidDateFormat", err)
	}
	var de *DateError
	if !errors.As(err, &de) || de.Value != "26.01.2025" {
		t.Errorf("expected DateError for first bad entry, got %v", err)
	}

	if _, err := FromStrings(2025, []string{"2025-01-27"}); !errors.Is(err, ErrNonSundayDate) {
		t.Errorf("error = %v, want ErrNonSundayDate", err)
	}
}

func TestResolve(t *testing.T) {
	r, err := Resolve(2025, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Source != SourceBuiltin || r.Len() != 8 || r.Year != 2025 {
		t.Errorf("Resolve(2025) = %+v", r)
	}

	r, err = Resolve(2026, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Source != SourceGenerated || r.Strings()[0] != "2026-01-25" {
		t.Errorf("Resolve(2026) = %+v", r)
	}

	r, err = Resolve(0, []string{"2025-01-26", "2025-04-13"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Source != SourceConfig || r.Year != 2025 || r.Len() != 2 {
		t.Errorf("Resolve(override) = %+v", r)
	}

	if _, err := Resolve(2026, []string{"2025-01-26"}); !errors.Is(err, ErrMixedYears) {
		t.Errorf("error = %v, want ErrMixedYears", err)
	}
	if _, err := Resolve(1990, nil); !errors.Is(err, ErrUnsupportedYear) {
		t.Errorf("error = %v, want ErrUnsupportedYear", err)
	}
}

func TestHolidayName(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2025-01-01", true},
		{"2025-04-20", true},
		{"2025-12-24", true},
		{"2024-12-24", false},
		{"2025-11-11", true},
		{"2025-01-26", false},
	}
	for _, tt := range tests {
		d, _ := model.ParseDate(tt.date)
		if _, got := HolidayName(d); got != tt.want {
			t.Errorf("HolidayName(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
	if got := EasterSunday(2025).String(); got != "2025-04-20" {
		t.Errorf("EasterSunday(2025) = %s", got)
	}
}
