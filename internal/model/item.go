package model

import (
	"github.com/shopspring/decimal"
)

// LineItem is one classified billing entry extracted from an invoice line.
type LineItem struct {
	Category        string          // service category from the catalog, "Other" if unclassified
	ServiceName     string          // service name as written in the line
	ServiceType     string          // instance type, volume type, storage class
	Region          string          // canonical region code or original surface form; never empty
	UsageQuantity   float64
	UsageUnit       string
	RateDescription string
	Cost            decimal.Decimal // exact amount, never a float
	SourceLine      string          // provenance: the raw line the item came from
	LineNumber      int             // provenance: 1-based line number
	ReasonMissed    string          // set only on items recovered during reconciliation
}
