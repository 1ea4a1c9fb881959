package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

var (
	extensionRe = regexp.MustCompile(`\.[^/.]+$`)
	w2TokenRe   = regexp.MustCompile(`(?i)w[-_\s]?2`)
	form1099Re  = regexp.MustCompile(`(?i)1099[-_\s]?(int|div|misc|nec|b)`)
	scheduleCRe = regexp.MustCompile(`(?i)schedule[-_\s]?c`)
	yearRe      = regexp.MustCompile(`20[2-3][0-9]`)
	suffixRe    = regexp.MustCompile(`(?i)[-_\s]*(copy|final|scan|signed|v\d+)`)
	separatorRe = regexp.MustCompile(`[-_]+`)
)

// ExtractName makes a best-effort guess at the payer/employer/vendor name
// embedded in a filename like "W2_AcmeCorp_2024.pdf". It strips form codes,
// years and noise suffixes and title-cases whatever words remain. Returns
// the empty string when fewer than 2 characters survive stripping.
func ExtractName(filename string, _ domain.DocumentType) string {
	cleaned := extensionRe.ReplaceAllString(filename, "")

	cleaned = w2TokenRe.ReplaceAllString(cleaned, "")
	cleaned = form1099Re.ReplaceAllString(cleaned, "")
	cleaned = scheduleCRe.ReplaceAllString(cleaned, "")
	cleaned = yearRe.ReplaceAllString(cleaned, "")
	cleaned = suffixRe.ReplaceAllString(cleaned, "")

	cleaned = strings.TrimSpace(separatorRe.ReplaceAllString(cleaned, " "))
	if utf8.RuneCountInString(cleaned) < 2 {
		return ""
	}

	words := strings.Fields(cleaned)
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
