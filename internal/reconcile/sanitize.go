package reconcile

import (
	"github.com/costlens-dev/costlens/internal/classify"
	"github.com/costlens-dev/costlens/internal/model"
	"github.com/costlens-dev/costlens/internal/parse"
)

// Sanitize validates oracle candidates before they enter the ledger: every
// required field is defaulted, and malformed entries are dropped rather than
// failing the pass. A negative cost violates the ledger invariant and marks
// the entry malformed; a zero cost is a legitimate free-tier charge and is
// kept.
func Sanitize(candidates []model.LineItem) []model.LineItem {
	accepted := make([]model.LineItem, 0, len(candidates))
	for _, item := range candidates {
		if item.Cost.IsNegative() {
			continue
		}
		if item.Category == "" {
			item.Category = classify.CategoryOther
		}
		if item.ServiceName == "" {
			item.ServiceName = item.Category
		}
		if item.ServiceType == "" {
			item.ServiceType = parse.DefaultServiceType
		}
		if item.Region == "" {
			item.Region = parse.UnknownRegion
		}
		if item.UsageQuantity < 0 {
			item.UsageQuantity = 0
		}
		if item.UsageUnit == "" {
			item.UsageUnit = parse.ForensicDefaultUnit
		}
		if item.RateDescription == "" {
			item.RateDescription = parse.DefaultRate
		}
		accepted = append(accepted, item)
	}
	return accepted
}
