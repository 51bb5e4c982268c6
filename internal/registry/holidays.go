package registry

import (
	"time"

	"github.com/rickar/cal/v2"

	"niedziele/internal/model"
)

// Polish statutory days off work. Only the date matters here, so every
// holiday is typed as public and carries no observance shift.
var (
	nowyRok = &cal.Holiday{Name: "Nowy Rok", Type: cal.ObservancePublic,
		Month: time.January, Day: 1, Func: cal.CalcDayOfMonth}
	trzechKroli = &cal.Holiday{Name: "Święto Trzech Króli", Type: cal.ObservancePublic,
		Month: time.January, Day: 6, StartYear: 2011, Func: cal.CalcDayOfMonth}
	wielkanoc = &cal.Holiday{Name: "Wielkanoc", Type: cal.ObservancePublic,
		Offset: 0, Func: cal.CalcEasterOffset}
	poniedzialekWielkanocny = &cal.Holiday{Name: "Poniedziałek Wielkanocny", Type: cal.ObservancePublic,
		Offset: 1, Func: cal.CalcEasterOffset}
	swietoPracy = &cal.Holiday{Name: "Święto Pracy", Type: cal.ObservancePublic,
		Month: time.May, Day: 1, Func: cal.CalcDayOfMonth}
	swietoKonstytucji = &cal.Holiday{Name: "Święto Konstytucji 3 Maja", Type: cal.ObservancePublic,
		Month: time.May, Day: 3, Func: cal.CalcDayOfMonth}
	zieloneSwiatki = &cal.Holiday{Name: "Zielone Świątki", Type: cal.ObservancePublic,
		Offset: 49, Func: cal.CalcEasterOffset}
	bozeCialo = &cal.Holiday{Name: "Boże Ciało", Type: cal.ObservancePublic,
		Offset: 60, Func: cal.CalcEasterOffset}
	wniebowziecie = &cal.Holiday{Name: "Wniebowzięcie Najświętszej Maryi Panny", Type: cal.ObservancePublic,
		Month: time.August, Day: 15, Func: cal.CalcDayOfMonth}
	wszystkichSwietych = &cal.Holiday{Name: "Wszystkich Świętych", Type: cal.ObservancePublic,
		Month: time.November, Day: 1, Func: cal.CalcDayOfMonth}
	niepodleglosc = &cal.Holiday{Name: "Narodowe Święto Niepodległości", Type: cal.ObservancePublic,
		Month: time.November, Day: 11, Func: cal.CalcDayOfMonth}
	wigilia = &cal.Holiday{Name: "Wigilia Bożego Narodzenia", Type: cal.ObservancePublic,
		Month: time.December, Day: 24, StartYear: 2025, Func: cal.CalcDayOfMonth}
	bozeNarodzenie = &cal.Holiday{Name: "Boże Narodzenie", Type: cal.ObservancePublic,
		Month: time.December, Day: 25, Func: cal.CalcDayOfMonth}
	drugiDzienSwiat = &cal.Holiday{Name: "Drugi dzień Bożego Narodzenia", Type: cal.ObservancePublic,
		Month: time.December, Day: 26, Func: cal.CalcDayOfMonth}
)

var holidays = newHolidayCalendar()

func newHolidayCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		nowyRok,
		trzechKroli,
		wielkanoc,
		poniedzialekWielkanocny,
		swietoPracy,
		swietoKonstytucji,
		zieloneSwiatki,
		bozeCialo,
		wniebowziecie,
		wszystkichSwietych,
		niepodleglosc,
		wigilia,
		bozeNarodzenie,
		drugiDzienSwiat,
	)
	return c
}

// HolidayName reports whether d is a Polish public holiday and its name.
func HolidayName(d model.Date) (string, bool) {
	actual, _, h := holidays.IsHoliday(d.Time())
	if !actual || h == nil {
		return "", false
	}
	return h.Name, true
}

// EasterSunday returns Easter Sunday of year (Gregorian computus).
func EasterSunday(year int) model.Date {
	actual, _ := wielkanoc.Calc(year)
	return model.DateOf(actual)
}
