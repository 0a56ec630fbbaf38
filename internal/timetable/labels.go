package timetable

import (
	"strings"

	"github.com/alexanderramin/labtable/internal/domain"
	"golang.org/x/text/language"
)

var labelTables = map[language.Tag]map[domain.DayOfWeek]string{
	language.English: {
		domain.Monday:    "Monday",
		domain.Tuesday:   "Tuesday",
		domain.Wednesday: "Wednesday",
		domain.Thursday:  "Thursday",
		domain.Friday:    "Friday",
		domain.Saturday:  "Saturday",
		domain.Sunday:    "Sunday",
	},
	language.Vietnamese: {
		domain.Monday:    "Thứ Hai",
		domain.Tuesday:   "Thứ Ba",
		domain.Wednesday: "Thứ Tư",
		domain.Thursday:  "Thứ Năm",
		domain.Friday:    "Thứ Sáu",
		domain.Saturday:  "Thứ Bảy",
		domain.Sunday:    "Chủ Nhật",
	},
}

// English must stay first: the matcher falls back to its first entry.
var supportedLocales = []language.Tag{language.English, language.Vietnamese}

var localeMatcher = language.NewMatcher(supportedLocales)

// Translator maps canonical days to display labels for one locale.
type Translator struct {
	locale language.Tag
	labels map[domain.DayOfWeek]string
}

// NewTranslator picks the closest supported label table for locale, which
// may be any BCP 47 string ("vi", "vi-VN", "en-GB"). Unparseable or
// unsupported locales get English.
func NewTranslator(locale string) *Translator {
	_, idx := language.MatchStrings(localeMatcher, locale)
	tag := supportedLocales[idx]
	return &Translator{locale: tag, labels: labelTables[tag]}
}

// Locale returns the matched locale.
func (t *Translator) Locale() string { return t.locale.String() }

// Label returns the display label for day. Unknown tokens come back unchanged.
func (t *Translator) Label(day domain.DayOfWeek) string {
	if l, ok := t.labels[day]; ok {
		return l
	}
	return string(day)
}

// DisplayOrder returns the seven labels, Monday first.
func (t *Translator) DisplayOrder() []string {
	out := make([]string, len(domain.WeekDays))
	for i, d := range domain.WeekDays {
		out[i] = t.Label(d)
	}
	return out
}

// DayForLabel maps a display label back to its canonical day, ignoring case
// and surrounding space.
func (t *Translator) DayForLabel(label string) (domain.DayOfWeek, bool) {
	trimmed := strings.TrimSpace(label)
	for _, d := range domain.WeekDays {
		if strings.EqualFold(t.labels[d], trimmed) {
			return d, true
		}
	}
	return domain.DayOfWeek(label), false
}

// ParseDayInput accepts what a user may type for a day: a canonical token or
// abbreviation, or the display label of any supported locale.
func ParseDayInput(s string) (domain.DayOfWeek, bool) {
	if d, ok := domain.ParseDayOfWeek(s); ok {
		return d, true
	}
	for _, tag := range supportedLocales {
		tr := &Translator{locale: tag, labels: labelTables[tag]}
		if d, ok := tr.DayForLabel(s); ok {
			return d, true
		}
	}
	return domain.DayOfWeek(s), false
}
