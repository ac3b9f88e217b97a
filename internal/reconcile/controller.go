// Package reconcile closes the gap between a ledger's calculated total and
// the invoice's stated total through a single bounded oracle pass.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/costlens-dev/costlens/internal/model"
)

// Request is the reconciliation request submitted to the oracle.
type Request struct {
	Text             string           // remaining invoice text to rescan
	Items            []model.LineItem // items already in the ledger
	InvoiceTotal     decimal.Decimal
	TargetDifference decimal.Decimal // invoice_total - calculated_total
}

// Oracle proposes line items the first extraction pass missed. Implementations
// are external collaborators with no determinism guarantee; the controller
// validates everything they return.
type Oracle interface {
	ProposeMissingItems(ctx context.Context, req Request) ([]model.LineItem, error)
}

// FirstPassTolerance is the default tolerance for deciding whether a ledger
// already accounts for the invoice total.
var FirstPassTolerance = decimal.NewFromFloat(1.00)

// Controller performs the Initial -> Reconciled transition on an analysis.
// Reconciliation is attempted exactly once per invoice and is additive-only:
// existing items are never removed or mutated.
type Controller struct {
	oracle    Oracle
	tolerance decimal.Decimal
	warnings  io.Writer
}

// NewController creates a Controller with the first-pass tolerance.
// Warnings (oracle failures) go to stderr.
func NewController(oracle Oracle) *Controller {
	return &Controller{
		oracle:    oracle,
		tolerance: FirstPassTolerance,
		warnings:  os.Stderr,
	}
}

// WithTolerance overrides the pass/fail tolerance.
func (c *Controller) WithTolerance(tolerance decimal.Decimal) *Controller {
	c.tolerance = tolerance
	return c
}

// WithWarnings redirects warning output.
func (c *Controller) WithWarnings(w io.Writer) *Controller {
	c.warnings = w
	return c
}

// Reconcile runs the single reconciliation pass on analysis in place.
// The pass is a no-op when the analysis is already reconciled, when no
// invoice total is available, or when the ledger is already within
// tolerance. Oracle failures leave the ledger unchanged and are never
// fatal. After Reconcile returns, analysis.Reconciled is always true.
func (c *Controller) Reconcile(ctx context.Context, analysis *model.InvoiceAnalysis, text string) {
	if analysis.Reconciled {
		return
	}
	defer func() { analysis.Reconciled = true }()

	if !analysis.Validation.HasInvoiceTotal {
		// Nothing to reconcile against; validation stays indeterminate.
		return
	}

	invoiceTotal := analysis.Validation.InvoiceTotal
	difference := invoiceTotal.Sub(analysis.Ledger.Total)
	if difference.Abs().LessThan(c.tolerance) {
		analysis.Validation = model.Validate(analysis.Ledger.Total, invoiceTotal, true, c.tolerance)
		return
	}

	analysis.OracleInvoked = true
	candidates, err := c.oracle.ProposeMissingItems(ctx, Request{
		Text:             text,
		Items:            analysis.Ledger.Items,
		InvoiceTotal:     invoiceTotal,
		TargetDifference: difference,
	})
	if err != nil {
		analysis.OracleErr = err.Error()
		fmt.Fprintf(c.warnings, "warning: reconciliation oracle failed for %s: %v\n", analysis.Source, err)
		analysis.Validation = model.Validate(analysis.Ledger.Total, invoiceTotal, true, c.tolerance)
		return
	}

	// Append unconditionally: distinguishing a genuinely missed charge from
	// an already-counted one from text alone is not reliable, so recall wins
	// over precision here.
	accepted := Sanitize(candidates)
	analysis.Ledger.Append(accepted...)
	analysis.ItemsAdded = len(accepted)

	analysis.Validation = model.Validate(analysis.Ledger.Total, invoiceTotal, true, c.tolerance)
}
