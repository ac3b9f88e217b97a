package model

import "github.com/shopspring/decimal"

// ValidationStatus is the outcome of checking a ledger against an invoice total.
type ValidationStatus string

const (
	ValidationPassed ValidationStatus = "passed"
	ValidationFailed ValidationStatus = "failed"
	// ValidationIndeterminate means no invoice total could be located, so the
	// ledger could not be checked against anything.
	ValidationIndeterminate ValidationStatus = "indeterminate"
)

// ValidationSummary compares the calculated ledger total to the invoice total.
type ValidationSummary struct {
	CalculatedTotal decimal.Decimal
	InvoiceTotal    decimal.Decimal
	HasInvoiceTotal bool
	Difference      decimal.Decimal // invoice_total - calculated_total
	Status          ValidationStatus
}

// Passed reports whether validation succeeded. Indeterminate is not a pass.
func (v ValidationSummary) Passed() bool { return v.Status == ValidationPassed }

// Validate builds a ValidationSummary for a calculated total. When hasTotal is
// false the status is indeterminate and the difference is zero.
func Validate(calculated, invoiceTotal decimal.Decimal, hasTotal bool, tolerance decimal.Decimal) ValidationSummary {
	summary := ValidationSummary{
		CalculatedTotal: calculated,
		InvoiceTotal:    invoiceTotal,
		HasInvoiceTotal: hasTotal,
	}

	if !hasTotal {
		summary.Status = ValidationIndeterminate
		return summary
	}

	summary.Difference = invoiceTotal.Sub(calculated)
	if summary.Difference.Abs().LessThan(tolerance) {
		summary.Status = ValidationPassed
	} else {
		summary.Status = ValidationFailed
	}
	return summary
}

// InvoiceAnalysis is the final data product for one invoice: the ledger plus
// its validation summary and reconciliation provenance.
type InvoiceAnalysis struct {
	Source     string // filename or label of the text source
	Mode       Mode
	Ledger     Ledger
	Validation ValidationSummary

	// Reconciliation provenance.
	Reconciled    bool   // the single reconciliation pass has run
	OracleInvoked bool
	OracleErr     string // non-empty when the oracle call failed
	ItemsAdded    int    // items appended by reconciliation
}
