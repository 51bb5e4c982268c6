package i18n

import (
	"testing"
	"time"

	"niedziele/internal/model"
)

func TestFormatting(t *testing.T) {
	d := model.Date{Year: 2025, Month: time.December, Day: 7}

	if got := FormatDay(d); got != "7" {
		t.Errorf("FormatDay = %q", got)
	}
	if got := FormatMonthYear(d); got != "grudnia 2025" {
		t.Errorf("FormatMonthYear = %q", got)
	}
	if got := FormatLong(model.Date{Year: 2026, Month: time.October, Day: 17}); got != "17 października 2026" {
		t.Errorf("FormatLong = %q", got)
	}
}

func TestMonthGenitive(t *testing.T) {
	if got := MonthGenitive(time.September); got != "września" {
		t.Errorf("MonthGenitive(September) = %q", got)
	}
	if got := MonthGenitive(time.Month(13)); got != "13" {
		t.Errorf("MonthGenitive(13) = %q", got)
	}
}

func TestSundayCountPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "W 2025 roku jest 1 niedziela handlowa."},
		{3, "W 2025 roku są 3 niedziele handlowe."},
		{7, "W 2025 roku jest 7 niedziel handlowych."},
		{8, "W 2025 roku jest 8 niedziel handlowych."},
		{12, "W 2025 roku jest 12 niedziel handlowych."},
		{22, "W 2025 roku są 22 niedziele handlowe."},
	}
	for _, tt := range tests {
		if got := SundayCount(2025, tt.n); got != tt.want {
			t.Errorf("SundayCount(2025, %d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
