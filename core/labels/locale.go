package labels

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Locale identifies one of the supported text locales.
type Locale string

const (
	EN Locale = "en"
	DE Locale = "de"
	FR Locale = "fr"
	RU Locale = "ru"
)

// Default is the fallback locale for every lookup.
const Default = EN

// All lists the supported locales in output order.
var All = []Locale{EN, DE, FR, RU}

var tags = map[Locale]language.Tag{
	EN: language.English,
	DE: language.German,
	FR: language.French,
	RU: language.Russian,
}

// ParseLocale accepts "en", "EN" or any BCP 47 tag whose base language is supported.
func ParseLocale(s string) (Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	loc := Locale(base.String())
	if _, ok := tags[loc]; !ok {
		return "", false
	}
	return loc, true
}

// Tag returns the language tag of the locale.
func (l Locale) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return language.English
}

// Upper returns the upper case key used by the addon ("EN", "DE", ...).
func (l Locale) Upper() string {
	return strings.ToUpper(string(l))
}

// Collator returns a collator ordering strings the way readers of the locale expect.
func (l Locale) Collator() *collate.Collator {
	return collate.New(l.Tag())
}
