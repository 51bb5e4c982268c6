package web

import (
	"embed"
	"html/template"
	"strconv"

	"niedziele/internal/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// pageData is the view model of templates/index.html.
type pageData struct {
	Year          int
	Keywords      string
	Sundays       []sundayCard
	CountQuestion string
	CountAnswer   string
	UpdatedAt     string
	CalendarPath  string
	HasPreview    bool
}

type sundayCard struct {
	ISO       string
	Day       string
	MonthYear string
}

func newPageData(snap *snapshot, hasPreview bool) pageData {
	reg := snap.registry
	year := strconv.Itoa(reg.Year)

	cards := make([]sundayCard, 0, reg.Len())
	for _, d := range reg.Dates {
		cards = append(cards, sundayCard{
			ISO:       d.String(),
			Day:       i18n.FormatDay(d),
			MonthYear: i18n.FormatMonthYear(d),
		})
	}

	return pageData{
		Year:          reg.Year,
		Keywords:      keywords(year),
		Sundays:       cards,
		CountQuestion: "Ile jest niedziel handlowych w " + year + " roku?",
		CountAnswer:   i18n.SundayCount(reg.Year, reg.Len()),
		UpdatedAt:     i18n.FormatLong(snap.updatedAt),
		CalendarPath:  "/calendar",
		HasPreview:    hasPreview,
	}
}

func keywords(year string) string {
	return "niedziele handlowe " + year +
		", zakupy w niedzielę, sklepy otwarte w niedzielę, kalendarz niedziel handlowych" +
		", godziny otwarcia w niedzielę, kiedy sklepy otwarte, niedziela bez handlu" +
		", lista niedziel handlowych, ograniczenie handlu w niedziele, galerie handlowe w niedziele" +
		", handel w niedziele " + year + ", zakaz handlu"
}
