package report

import (
	"bytes"
	"encoding/csv"
	"strings"
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

func sampleLedger() model.Ledger {
	var l model.Ledger
	l.Append(
		model.LineItem{
			Category: "EC2", ServiceName: "Elastic Compute Cloud", ServiceType: "t3a.small",
			Region: "us-east-1", UsageQuantity: 720, UsageUnit: "hrs",
			RateDescription: "Standard rate", Cost: dec("9.15"),
			SourceLine: "Amazon EC2 t3a.small 720 Hrs USD 9.15", LineNumber: 3,
		},
		model.LineItem{
			Category: "EC2", ServiceName: "Elastic Compute Cloud", ServiceType: "m5.large",
			Region: "us-east-1", UsageQuantity: 100, UsageUnit: "hrs",
			RateDescription: "Standard rate", Cost: dec("12.85"),
			SourceLine: "Amazon EC2 m5.large 100 Hrs USD 12.85", LineNumber: 4,
		},
		model.LineItem{
			Category: "S3", ServiceName: "Simple Storage Service", ServiceType: "standard",
			Region: "eu-west-1", UsageQuantity: 50, UsageUnit: "gb-mo",
			RateDescription: "Standard rate", Cost: dec("1.15"),
			SourceLine: "Amazon S3 50 GB-Mo USD 1.15", LineNumber: 5,
		},
	)
	return l
}

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, sampleLedger()))

	records := parseCSV(t, buf.String())
	require.Len(t, records, 4)
	assert.Equal(t, strings.Split(LedgerHeader, ","), records[0])

	first := records[1]
	assert.Equal(t, "3", first[0])
	assert.Equal(t, "EC2", first[1])
	assert.Equal(t, "9.15", first[8])
	assert.Equal(t, "Amazon EC2 t3a.small 720 Hrs USD 9.15", first[10])
}

func TestWriteLedger_DocumentOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, sampleLedger()))

	records := parseCSV(t, buf.String())
	assert.Equal(t, "3", records[1][0])
	assert.Equal(t, "4", records[2][0])
	assert.Equal(t, "5", records[3][0])
}

func TestWriteCategoryRollup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCategoryRollup(&buf, sampleLedger()))

	records := parseCSV(t, buf.String())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"category", "items", "total", "share"}, records[0])

	// EC2 has the larger subtotal and comes first.
	assert.Equal(t, "EC2", records[1][0])
	assert.Equal(t, "2", records[1][1])
	assert.Equal(t, "22.00", records[1][2])
	assert.Equal(t, "95.03", records[1][3])

	assert.Equal(t, "S3", records[2][0])
	assert.Equal(t, "4.97", records[2][3])
}

func TestWriteRegionRollup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRegionRollup(&buf, sampleLedger()))

	records := parseCSV(t, buf.String())
	require.Len(t, records, 3)
	assert.Equal(t, "us-east-1", records[1][0])
	assert.Equal(t, "eu-west-1", records[2][0])
}

func TestWriteRollup_ZeroTotalLedger(t *testing.T) {
	var l model.Ledger
	l.Append(model.LineItem{Category: "Lambda", Cost: decimal.Zero})

	var buf bytes.Buffer
	require.NoError(t, WriteCategoryRollup(&buf, l))

	records := parseCSV(t, buf.String())
	require.Len(t, records, 2)
	assert.Equal(t, "0.00", records[1][3], "zero-total ledger reports zero shares")
}

func TestWriteGCPLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGCPLedger(&buf, sampleLedger()))

	records := parseCSV(t, buf.String())
	require.Len(t, records, 4)

	first := records[1]
	assert.Equal(t, "Compute", first[5])
	assert.Equal(t, "Compute Engine", first[6])
	assert.Equal(t, "e2-small", first[8])
	assert.Equal(t, "us-east1", first[9])
}

func TestWriteGCPLedger_UnmappedFieldsBlank(t *testing.T) {
	var l model.Ledger
	l.Append(model.LineItem{Category: "Redshift", ServiceType: "ra3.xlplus", Region: "unknown", Cost: dec("50.00")})

	var buf bytes.Buffer
	require.NoError(t, WriteGCPLedger(&buf, l))

	records := parseCSV(t, buf.String())
	require.Len(t, records, 2)
	row := records[1]
	assert.Equal(t, "", row[5])
	assert.Equal(t, "", row[8])
	assert.Equal(t, "", row[9])
}

func TestWriteSummary(t *testing.T) {
	analysis := model.InvoiceAnalysis{
		Source: "june.pdf",
		Mode:   model.ModeClassified,
		Ledger: sampleLedger(),
	}
	analysis.Validation = model.Validate(analysis.Ledger.Total, dec("23.15"), true, dec("1.00"))
	analysis.OracleInvoked = true
	analysis.ItemsAdded = 2

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, analysis))

	out := buf.String()
	assert.Contains(t, out, "source: june.pdf")
	assert.Contains(t, out, "calculated total: 23.15")
	assert.Contains(t, out, "invoice total: 23.15")
	assert.Contains(t, out, "validation: passed")
	assert.Contains(t, out, "2 items added")
}

func TestWriteSummary_NoInvoiceTotal(t *testing.T) {
	analysis := model.InvoiceAnalysis{Source: "june.txt", Mode: model.ModeForensic}
	analysis.Validation = model.Validate(decimal.Zero, decimal.Zero, false, dec("0.01"))

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, analysis))

	out := buf.String()
	assert.Contains(t, out, "invoice total: not found")
	assert.Contains(t, out, "validation: indeterminate")
}
