package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Defaults returned when an extractor finds nothing on the line.
const (
	UnknownRegion       = "unknown"
	UnknownUnit         = "unknown"
	DefaultServiceType  = "standard"
	DefaultRate         = "Standard rate"
	ForensicDefaultUnit = "Units"
)

// regionEntry maps a canonical region code to its surface-form aliases.
type regionEntry struct {
	code    string
	aliases []string
}

// regionTable is consulted in order; within an entry, aliases in order.
// All matching is case-insensitive substring matching.
var regionTable = []regionEntry{
	{"us-east-1", []string{"us east (n. virginia)", "us-east-1", "use1", "virginia"}},
	{"us-east-2", []string{"us east (ohio)", "us-east-2", "use2", "ohio"}},
	{"us-west-1", []string{"us west (n. california)", "us-west-1", "usw1", "california"}},
	{"us-west-2", []string{"us west (oregon)", "us-west-2", "usw2", "oregon"}},
	{"eu-west-1", []string{"eu (ireland)", "eu-west-1", "euw1", "ireland"}},
	{"eu-west-2", []string{"eu (london)", "eu-west-2", "euw2", "london"}},
	{"eu-west-3", []string{"eu (paris)", "eu-west-3", "euw3", "paris"}},
	{"eu-central-1", []string{"eu (frankfurt)", "eu-central-1", "euc1", "frankfurt"}},
	{"ap-south-1", []string{"asia pacific (mumbai)", "ap-south-1", "aps1", "mumbai"}},
	{"ap-southeast-1", []string{"asia pacific (singapore)", "ap-southeast-1", "apse1", "singapore"}},
	{"ap-southeast-2", []string{"asia pacific (sydney)", "ap-southeast-2", "apse2", "sydney"}},
	{"ap-northeast-1", []string{"asia pacific (tokyo)", "ap-northeast-1", "apne1", "tokyo"}},
	{"ap-northeast-2", []string{"asia pacific (seoul)", "ap-northeast-2", "apne2", "seoul"}},
	{"ca-central-1", []string{"canada (central)", "ca-central-1", "cac1", "canada"}},
	{"sa-east-1", []string{"south america (são paulo)", "sa-east-1", "sae1", "são paulo"}},
	{"global", []string{"global", "worldwide", "all regions", "cloudfront global"}},
}

// Region extracts a canonical region code from a line, or UnknownRegion.
func Region(line string) string {
	lower := strings.ToLower(line)
	for _, entry := range regionTable {
		for _, alias := range entry.aliases {
			if strings.Contains(lower, alias) {
				return entry.code
			}
		}
	}
	return UnknownRegion
}

// Verbatim region patterns preserve the original human-readable form, which
// matters when cross-referencing items back to the source document.
var verbatimRegionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Asia Pacific \([^)]+\))`),
	regexp.MustCompile(`(?i)(US East \([^)]+\))`),
	regexp.MustCompile(`(?i)(US West \([^)]+\))`),
	regexp.MustCompile(`(?i)(EU \([^)]+\))`),
	regexp.MustCompile(`(?i)(Canada \([^)]+\))`),
	regexp.MustCompile(`(?i)(South America \([^)]+\))`),
}

// RegionVerbatim extracts the region as written in the source line. Lines
// with no recognizable region fall back to "Any" when the document says so,
// otherwise "Global".
func RegionVerbatim(line string) string {
	for _, re := range verbatimRegionPatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	if strings.Contains(line, "Any") {
		return "Any"
	}
	return "Global"
}

// Usage quantity patterns in priority order: "<number> <unit-keyword>".
var usagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(hours?|hrs?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(gb-mo|gb-month)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(requests?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(gb|tb|mb)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(instances?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(vcpu-hours?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(messages?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(queries)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(events?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(notifications?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(units?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(dashboards?)\b`),
	regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(alarms?)\b`),
}

// Usage extracts a usage quantity and unit from a line. Returns
// (0, UnknownUnit, false) when nothing matches; the first matching pattern
// wins.
func Usage(line string) (float64, string, bool) {
	for _, re := range usagePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		quantity, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		return quantity, strings.ToLower(m[2]), true
	}
	return 0, UnknownUnit, false
}

// Service type shapes: instance types, volume types, storage classes.
var serviceTypePatterns = []*regexp.Regexp{
	// db. and cache. classes embed a bare instance type, so they go first.
	regexp.MustCompile(`(?i)\b(db\.[a-z0-9]+\.[a-z0-9]+)`),       // database instance classes
	regexp.MustCompile(`(?i)\b(cache\.[a-z0-9]+\.[a-z0-9]+)`),    // cache node types
	regexp.MustCompile(`(?i)\b(t[2-4]g?a?\.[a-z0-9]+)`),          // burstable instance types
	regexp.MustCompile(`(?i)\b([cmr][5-7][a-z]*\.[a-z0-9]+)`),    // general instance families
	regexp.MustCompile(`(?i)\b(gp[2-3]|io[1-2]|st1|sc1)\b`),      // volume types
	regexp.MustCompile(`(?i)\b(glacier|deep archive|intelligent)\b`), // storage tiers
}

// ServiceType extracts an instance/volume/storage-class token from a line,
// or DefaultServiceType when none is present.
func ServiceType(line string) string {
	for _, re := range serviceTypePatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return DefaultServiceType
}

// Rate description patterns: "$X per Y", "First N ...", "Additional ...".
var ratePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,]+\.?\d*\s+per\s+[^,\n]+`),
	regexp.MustCompile(`(?i)USD\s*[\d,]+\.?\d*\s+per\s+[^,\n]+`),
	regexp.MustCompile(`(?i)First\s+[\d,]+[^,\n]+`),
	regexp.MustCompile(`(?i)Additional\s+[^,\n]+`),
}

// RateDescription captures a pricing clause from a line, or DefaultRate.
func RateDescription(line string) string {
	for _, re := range ratePatterns {
		if m := re.FindString(line); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return DefaultRate
}
