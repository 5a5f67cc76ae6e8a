package hebcal

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// monthAliases maps every known transliteration spelling to one of the 14
// canonical month tokens (12 months plus Adar I / Adar II). Lower-cased
// canonical tokens map to themselves, which makes NormalizeMonth idempotent.
var monthAliases = map[string]string{
	"nisan": "Nisan", "nissan": "Nisan",
	"iyyar": "Iyyar", "iyar": "Iyyar",
	"sivan": "Sivan",
	"tamuz": "Tamuz", "tammuz": "Tamuz",
	"av":   "Av",
	"elul": "Elul",
	"tishrei": "Tishrei", "tishri": "Tishrei",
	"cheshvan": "Cheshvan", "heshvan": "Cheshvan",
	"kislev": "Kislev",
	"tevet":  "Tevet",
	"shvat": "Shvat", "sh'vat": "Shvat", "shevat": "Shvat",
	"adar": "Adar",
	"adar i": "Adar I", "adar 1": "Adar I", "adar i'": "Adar I",
	"adar ii": "Adar II", "adar 2": "Adar II", "adar ii'": "Adar II",
}

// NormalizeMonth maps a Hebrew month spelling to its canonical token.
// Unrecognized spellings pass through capitalized, since the converter may
// still accept them.
func NormalizeMonth(month string) string {
	if month == "" {
		return ""
	}
	if canonical, ok := monthAliases[strings.ToLower(month)]; ok {
		return canonical
	}
	return capitalize(month)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// RussianMonths maps Russian Hebrew-month names to canonical tokens, in the
// order they are scanned when parsing a Hebrew date out of a query.
var RussianMonths = []struct {
	Russian   string
	Canonical string
}{
	{"нисан", "Nisan"},
	{"ияр", "Iyyar"},
	{"сиван", "Sivan"},
	{"таммуз", "Tamuz"},
	{"тамуз", "Tamuz"},
	{"ав", "Av"},
	{"элул", "Elul"},
	{"тишрей", "Tishrei"},
	{"хешван", "Cheshvan"},
	{"кислев", "Kislev"},
	{"тевет", "Tevet"},
	{"шват", "Shvat"},
	{"адар", "Adar"},
}
