package model

import "github.com/shopspring/decimal"

// Mode selects the extraction strategy for an invoice.
type Mode string

const (
	// ModeClassified extracts only lines that classify with enough confidence.
	ModeClassified Mode = "classified"
	// ModeForensic extracts every cost-bearing line to maximize total recall.
	ModeForensic Mode = "forensic"
)

// Ledger is the ordered sequence of line items for one invoice.
// Items stay in document order; the running total is maintained on append
// so it always equals the exact sum of item costs.
type Ledger struct {
	Items []LineItem
	Total decimal.Decimal
}

// Append adds items to the end of the ledger and updates the running total.
func (l *Ledger) Append(items ...LineItem) {
	for _, item := range items {
		l.Items = append(l.Items, item)
		l.Total = l.Total.Add(item.Cost)
	}
}

// Len returns the number of line items.
func (l *Ledger) Len() int { return len(l.Items) }
