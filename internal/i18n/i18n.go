// Package i18n holds the Polish copy that depends on numbers or dates.
package i18n

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"niedziele/internal/model"
)

// Locale is the only locale the site is published in.
var Locale = language.Polish

const keySundayCount = "faq.sunday_count"

// Genitive month names, as used after a day number ("26 stycznia").
var monthsGenitive = [...]string{
	time.January:   "stycznia",
	time.February:  "lutego",
	time.March:     "marca",
	time.April:     "kwietnia",
	time.May:       "maja",
	time.June:      "czerwca",
	time.July:      "lipca",
	time.August:    "sierpnia",
	time.September: "września",
	time.October:   "października",
	time.November:  "listopada",
	time.December:  "grudnia",
}

func init() {
	err := message.Set(Locale, keySundayCount, plural.Selectf(1, "%d",
		"one", "W %[2]s roku jest %[1]d niedziela handlowa.",
		"few", "W %[2]s roku są %[1]d niedziele handlowe.",
		"other", "W %[2]s roku jest %[1]d niedziel handlowych.",
	))
	if err != nil {
		panic(fmt.Sprintf("i18n: register %s: %v", keySundayCount, err))
	}
}

// MonthGenitive returns the genitive Polish name of m.
func MonthGenitive(m time.Month) string {
	if m < time.January || m > time.December {
		return strconv.Itoa(int(m))
	}
	return monthsGenitive[m]
}

// FormatDay renders the day of month without padding ("7").
func FormatDay(d model.Date) string {
	return strconv.Itoa(d.Day)
}

// FormatMonthYear renders e.g. "grudnia 2025".
func FormatMonthYear(d model.Date) string {
	return MonthGenitive(d.Month) + " " + strconv.Itoa(d.Year)
}

// FormatLong renders e.g. "7 grudnia 2025".
func FormatLong(d model.Date) string {
	return FormatDay(d) + " " + FormatMonthYear(d)
}

// SundayCount answers "how many trading Sundays are there in year" with
// the plural form Polish grammar requires for n.
func SundayCount(year, n int) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf(keySundayCount, n, strconv.Itoa(year))
}
