package reconcile

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costlens-dev/costlens/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// stubOracle returns canned items and counts invocations.
type stubOracle struct {
	items   []model.LineItem
	err     error
	calls   int
	lastReq Request
}

func (s *stubOracle) ProposeMissingItems(_ context.Context, req Request) ([]model.LineItem, error) {
	s.calls++
	s.lastReq = req
	return s.items, s.err
}

func newAnalysis(calculated, invoiceTotal string, hasTotal bool) *model.InvoiceAnalysis {
	a := &model.InvoiceAnalysis{
		Source: "invoice.txt",
		Mode:   model.ModeClassified,
	}
	a.Ledger.Append(model.LineItem{
		Category:   "EC2",
		Cost:       dec(calculated),
		SourceLine: "Amazon EC2 USD " + calculated,
		LineNumber: 3,
	})
	total := decimal.Zero
	if hasTotal {
		total = dec(invoiceTotal)
	}
	a.Validation = model.Validate(a.Ledger.Total, total, hasTotal, FirstPassTolerance)
	return a
}

func TestReconcile_WithinToleranceSkipsOracle(t *testing.T) {
	oracle := &stubOracle{}
	a := newAnalysis("151.50", "152.40", true)

	NewController(oracle).Reconcile(context.Background(), a, "text")

	assert.Equal(t, 0, oracle.calls)
	assert.True(t, a.Reconciled)
	assert.False(t, a.OracleInvoked)
	assert.Equal(t, model.ValidationPassed, a.Validation.Status)
}

func TestReconcile_ShortfallInvokesOracleAndCloses(t *testing.T) {
	oracle := &stubOracle{items: []model.LineItem{{
		Category:     "VPC",
		ServiceName:  "NAT Gateway",
		Cost:         dec("45.60"),
		ReasonMissed: "cost embedded in description",
	}}}
	a := newAnalysis("106.80", "152.40", true)

	NewController(oracle).Reconcile(context.Background(), a, "invoice text")

	assert.Equal(t, 1, oracle.calls)
	assert.True(t, a.OracleInvoked)
	assert.Equal(t, 1, a.ItemsAdded)
	assert.Equal(t, 2, a.Ledger.Len())
	assert.True(t, dec("152.40").Equal(a.Ledger.Total))
	assert.Equal(t, model.ValidationPassed, a.Validation.Status)
}

func TestReconcile_OracleRequestCarriesTarget(t *testing.T) {
	oracle := &stubOracle{}
	a := newAnalysis("106.80", "152.40", true)

	NewController(oracle).Reconcile(context.Background(), a, "invoice text")

	require.Equal(t, 1, oracle.calls)
	assert.Equal(t, "invoice text", oracle.lastReq.Text)
	assert.True(t, dec("152.40").Equal(oracle.lastReq.InvoiceTotal))
	assert.True(t, dec("45.60").Equal(oracle.lastReq.TargetDifference))
	assert.Len(t, oracle.lastReq.Items, 1)
}

func TestReconcile_OracleFailureIsNonFatal(t *testing.T) {
	oracle := &stubOracle{err: errors.New("api timeout")}
	a := newAnalysis("106.80", "152.40", true)

	var warnings bytes.Buffer
	NewController(oracle).WithWarnings(&warnings).Reconcile(context.Background(), a, "text")

	assert.True(t, a.Reconciled)
	assert.Equal(t, "api timeout", a.OracleErr)
	assert.Equal(t, 1, a.Ledger.Len(), "ledger must be unchanged on oracle failure")
	assert.Equal(t, model.ValidationFailed, a.Validation.Status)
	assert.Contains(t, warnings.String(), "api timeout")
}

func TestReconcile_AdditiveOnly(t *testing.T) {
	oracle := &stubOracle{items: []model.LineItem{{Category: "Other", Cost: dec("45.60")}}}
	a := newAnalysis("106.80", "152.40", true)
	original := a.Ledger.Items[0]

	NewController(oracle).Reconcile(context.Background(), a, "text")

	require.Equal(t, 2, a.Ledger.Len())
	assert.Equal(t, original, a.Ledger.Items[0], "existing items are never mutated or reordered")
}

func TestReconcile_SecondPassIsNoOp(t *testing.T) {
	oracle := &stubOracle{items: []model.LineItem{{Category: "Other", Cost: dec("20.00")}}}
	a := newAnalysis("106.80", "152.40", true)

	c := NewController(oracle)
	c.Reconcile(context.Background(), a, "text")
	c.Reconcile(context.Background(), a, "text")

	assert.Equal(t, 1, oracle.calls, "reconciliation runs at most once per invoice")
	assert.Equal(t, 2, a.Ledger.Len())
}

func TestReconcile_NoInvoiceTotalStaysIndeterminate(t *testing.T) {
	oracle := &stubOracle{}
	a := newAnalysis("106.80", "", false)

	NewController(oracle).Reconcile(context.Background(), a, "text")

	assert.Equal(t, 0, oracle.calls)
	assert.True(t, a.Reconciled)
	assert.Equal(t, model.ValidationIndeterminate, a.Validation.Status)
}

func TestReconcile_DropsNegativeCandidates(t *testing.T) {
	oracle := &stubOracle{items: []model.LineItem{
		{Category: "Other", Cost: dec("-5.00")},
		{Category: "Other", Cost: dec("45.60")},
	}}
	a := newAnalysis("106.80", "152.40", true)

	NewController(oracle).Reconcile(context.Background(), a, "text")

	assert.Equal(t, 1, a.ItemsAdded)
	assert.True(t, dec("152.40").Equal(a.Ledger.Total))
}

func TestReconcile_CustomTolerance(t *testing.T) {
	oracle := &stubOracle{}
	a := newAnalysis("152.39", "152.40", true)

	// With a forensic cent-level tolerance, a 0.01 difference is no longer
	// within bounds and triggers the oracle.
	NewController(oracle).WithTolerance(dec("0.01")).Reconcile(context.Background(), a, "text")

	assert.Equal(t, 1, oracle.calls)
}

func TestSanitize_DefaultsEmptyFields(t *testing.T) {
	out := Sanitize([]model.LineItem{{Cost: dec("5.00")}})
	require.Len(t, out, 1)

	item := out[0]
	assert.Equal(t, "Other", item.Category)
	assert.Equal(t, "Other", item.ServiceName)
	assert.Equal(t, "standard", item.ServiceType)
	assert.Equal(t, "unknown", item.Region)
	assert.Equal(t, "Units", item.UsageUnit)
	assert.Equal(t, "Standard rate", item.RateDescription)
}

func TestSanitize_KeepsZeroCost(t *testing.T) {
	out := Sanitize([]model.LineItem{{Category: "Lambda", Cost: decimal.Zero}})
	assert.Len(t, out, 1)
}

func TestSanitize_DropsNegativeCost(t *testing.T) {
	out := Sanitize([]model.LineItem{{Category: "Other", Cost: dec("-1.00")}})
	assert.Empty(t, out)
}

func TestSanitize_ClampsNegativeQuantity(t *testing.T) {
	out := Sanitize([]model.LineItem{{Category: "EC2", Cost: dec("1.00"), UsageQuantity: -3}})
	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].UsageQuantity)
}
