// Package parse extracts monetary amounts and usage attributes from single
// lines of invoice text. All extractors are independent: one failing never
// blocks another, and a miss is a normal outcome, not an error.
package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Cost patterns in priority order. The order is the policy: when several
// patterns match with different values, the first-priority match wins.
var costPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)USD\s+([\d,]+\.?\d*)`),
	regexp.MustCompile(`\$\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*USD`),
	regexp.MustCompile(`(?i)Cost:\s*\$?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Total:\s*\$?([\d,]+\.?\d*)`),
}

// Forensic patterns are stricter: amounts must be anchored to the end of the
// line or sit in a labeled amount column. Mid-line rate fragments like
// "$0.05 per GB" must not be counted as charges.
var forensicCostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)USD\s+([\d,]+\.?\d*)\s*$`),
	regexp.MustCompile(`\$\s*([\d,]+\.?\d*)\s*$`),
	regexp.MustCompile(`(?i)Amount in USD\s+([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Total in USD\s+([\d,]+\.?\d*)`),
}

// Cost extracts a monetary amount from a line using the classified-mode
// pattern set. The second return is false when no pattern yields a valid
// decimal.
func Cost(line string) (decimal.Decimal, bool) {
	return matchAmount(costPatterns, line)
}

// ForensicCost extracts a monetary amount using the stricter forensic
// pattern set.
func ForensicCost(line string) (decimal.Decimal, bool) {
	return matchAmount(forensicCostPatterns, line)
}

func matchAmount(patterns []*regexp.Regexp, line string) (decimal.Decimal, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, err := parseAmount(m[1])
		if err != nil {
			// Matched text that is not a valid decimal counts as a miss
			// for this pattern, not a failure of the line.
			continue
		}
		return amount, true
	}
	return decimal.Decimal{}, false
}

// parseAmount parses a captured amount after stripping thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
