// Package prose tidies free-form resume text such as project descriptions.
package prose

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const sentenceSeparator = ". "

// Polish splits text into sentences on '.', '!' and '?', trims them, drops
// empty ones, capitalizes each (first letter upper, the rest lower) and
// joins them with ". ". Empty input yields "".
func Polish(text string) string {
	if text == "" {
		return ""
	}

	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, capitalize(s, upper, lower))
	}
	return strings.Join(out, sentenceSeparator)
}

func capitalize(s string, upper, lower cases.Caser) string {
	_, size := utf8.DecodeRuneInString(s)
	return upper.String(s[:size]) + lower.String(s[size:])
}
