package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(cost string) LineItem {
	return LineItem{Category: "EC2", Cost: dec(cost)}
}

func TestLedger_AppendMaintainsTotal(t *testing.T) {
	var l Ledger
	l.Append(item("10.00"), item("0.00"), item("5.50"))

	assert.Equal(t, 3, l.Len())
	assert.True(t, dec("15.50").Equal(l.Total), "total is %s", l.Total)
}

func TestLedger_AppendEmpty(t *testing.T) {
	var l Ledger
	l.Append()
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Total.IsZero())
}

func TestLedger_TotalIsExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, not a float approximation.
	var l Ledger
	l.Append(item("0.1"), item("0.2"))
	assert.True(t, dec("0.3").Equal(l.Total))
}

func TestValidate_WithinTolerance(t *testing.T) {
	s := Validate(dec("151.50"), dec("152.40"), true, dec("1.00"))
	assert.Equal(t, ValidationPassed, s.Status)
	assert.True(t, s.Passed())
	assert.True(t, dec("0.90").Equal(s.Difference))
}

func TestValidate_OutsideTolerance(t *testing.T) {
	s := Validate(dec("106.80"), dec("152.40"), true, dec("1.00"))
	assert.Equal(t, ValidationFailed, s.Status)
	assert.False(t, s.Passed())
	assert.True(t, dec("45.60").Equal(s.Difference))
}

func TestValidate_ExactlyAtTolerance(t *testing.T) {
	// The threshold is strict: a difference equal to the tolerance fails.
	s := Validate(dec("151.40"), dec("152.40"), true, dec("1.00"))
	assert.Equal(t, ValidationFailed, s.Status)
}

func TestValidate_Overcount(t *testing.T) {
	s := Validate(dec("160.00"), dec("152.40"), true, dec("1.00"))
	require.Equal(t, ValidationFailed, s.Status)
	assert.True(t, s.Difference.IsNegative())
}

func TestValidate_NoInvoiceTotal(t *testing.T) {
	s := Validate(dec("106.80"), decimal.Zero, false, dec("1.00"))
	assert.Equal(t, ValidationIndeterminate, s.Status)
	assert.False(t, s.Passed())
	assert.False(t, s.HasInvoiceTotal)
	assert.True(t, s.Difference.IsZero())
}
