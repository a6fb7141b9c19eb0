package format

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	fullStar = "★"
	halfStar = "☆"
)

// Currency renders amount as a localized currency string, e.g.
// Currency(1499.5, "KES", "en-KE") -> "KES 1,499.50".
func Currency(amount float64, code, locale string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO("KES")
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("en-KE")
	}

	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Stars converts a 0-5 rating into a glyph string: one full star per whole
// point and a hollow star when the remainder reaches a half.
func Stars(rating float64) string {
	if rating <= 0 {
		return ""
	}
	if rating > 5 {
		rating = 5
	}

	full := int(math.Floor(rating))
	var b strings.Builder
	b.WriteString(strings.Repeat(fullStar, full))
	if rating-float64(full) >= 0.5 {
		b.WriteString(halfStar)
	}
	return b.String()
}
