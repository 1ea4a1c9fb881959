// Package classify infers a document's tax form type from its filename.
// It never looks at file content: classification is a best-effort signal
// that the preparer confirms or corrects during review.
package classify

import (
	"regexp"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

type rule struct {
	pattern    *regexp.Regexp
	docType    domain.DocumentType
	confidence float64
}

// Exact form-code mentions score higher than descriptive phrases. Rules for
// the same type may carry different confidences for that reason.
var rules = []rule{
	{regexp.MustCompile(`(?i)w[-_\s]?2`), domain.TypeW2, 0.95},
	{regexp.MustCompile(`(?i)wage.*statement`), domain.TypeW2, 0.85},
	{regexp.MustCompile(`(?i)employer.*tax`), domain.TypeW2, 0.75},

	{regexp.MustCompile(`(?i)1099[-_\s]?int`), domain.Type1099INT, 0.95},
	{regexp.MustCompile(`(?i)interest.*income`), domain.Type1099INT, 0.85},
	{regexp.MustCompile(`(?i)interest.*statement`), domain.Type1099INT, 0.80},

	{regexp.MustCompile(`(?i)1099[-_\s]?div`), domain.Type1099DIV, 0.95},
	{regexp.MustCompile(`(?i)dividend.*statement`), domain.Type1099DIV, 0.85},

	{regexp.MustCompile(`(?i)1099[-_\s]?misc`), domain.Type1099MISC, 0.95},
	{regexp.MustCompile(`(?i)miscellaneous.*income`), domain.Type1099MISC, 0.80},

	{regexp.MustCompile(`(?i)1099[-_\s]?nec`), domain.Type1099NEC, 0.95},
	{regexp.MustCompile(`(?i)nonemployee.*compensation`), domain.Type1099NEC, 0.85},
	{regexp.MustCompile(`(?i)contractor.*payment`), domain.Type1099NEC, 0.75},

	{regexp.MustCompile(`(?i)1099[-_\s]?b\b`), domain.Type1099B, 0.95},
	{regexp.MustCompile(`(?i)broker.*statement`), domain.Type1099B, 0.80},
	{regexp.MustCompile(`(?i)stock.*sale`), domain.Type1099B, 0.75},

	{regexp.MustCompile(`(?i)schedule[-_\s]?c`), domain.TypeScheduleC, 0.95},
	{regexp.MustCompile(`(?i)self[-_\s]?employ`), domain.TypeScheduleC, 0.80},
	{regexp.MustCompile(`(?i)business.*income`), domain.TypeScheduleC, 0.75},

	{regexp.MustCompile(`(?i)receipt`), domain.TypeReceipt, 0.90},
	{regexp.MustCompile(`(?i)expense`), domain.TypeReceipt, 0.75},
	{regexp.MustCompile(`(?i)invoice`), domain.TypeReceipt, 0.70},

	{regexp.MustCompile(`(?i)bank[-_\s]?statement`), domain.TypeBankStatement, 0.90},
	{regexp.MustCompile(`(?i)account[-_\s]?statement`), domain.TypeBankStatement, 0.85},
	{regexp.MustCompile(`(?i)checking|savings`), domain.TypeBankStatement, 0.75},
}

// Classify evaluates every rule against the filename and keeps the single
// highest-confidence match; on an exact confidence tie the earlier rule in
// the table wins. A filename matching nothing classifies as "other" with
// confidence 0.5: an unknown-but-plausible floor, not a zero sentinel.
func Classify(filename string) domain.Classification {
	best := domain.Classification{DocumentType: domain.TypeOther, Confidence: 0}

	for _, r := range rules {
		if r.pattern.MatchString(filename) && r.confidence > best.Confidence {
			best = domain.Classification{DocumentType: r.docType, Confidence: r.confidence}
		}
	}

	if best.Confidence == 0 {
		return domain.Classification{DocumentType: domain.TypeOther, Confidence: 0.5}
	}
	return best
}
