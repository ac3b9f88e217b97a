package parse

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Invoice grand-total locator. Label-anchored patterns in priority order;
// these scan the whole document text, not a single line.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Grand total:\s*USD\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Total amount due:?\s*USD\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Total pre-tax\s*USD\s*([\d,]+\.?\d*)`),
}

// InvoiceTotal locates the document's stated grand total. The second return
// is false when no label-anchored total is present; the caller decides
// whether a configured fallback applies.
func InvoiceTotal(text string) (decimal.Decimal, bool) {
	for _, re := range totalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		total, err := parseAmount(m[1])
		if err != nil {
			continue
		}
		return total, true
	}
	return decimal.Decimal{}, false
}
