// Package report renders finished ledgers for downstream consumers. It only
// reads: the ledger it is handed is never mutated or reordered, and rollups
// sort private copies.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/costlens-dev/costlens/internal/gcpmap"
	"github.com/costlens-dev/costlens/internal/model"
)

// LedgerHeader is the CSV header for the flat ledger export.
const LedgerHeader = "line_number,category,service_name,service_type,region,usage_quantity,usage_unit,rate_description,cost,reason_missed,source_line"

const numLedgerFields = 11

// WriteLedger writes the ledger as CSV in document order.
func WriteLedger(w io.Writer, ledger model.Ledger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(LedgerHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range ledger.Items {
		if err := cw.Write(marshalItem(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalItem(item model.LineItem) []string {
	row := make([]string, numLedgerFields)
	row[0] = strconv.Itoa(item.LineNumber)
	row[1] = item.Category
	row[2] = item.ServiceName
	row[3] = item.ServiceType
	row[4] = item.Region
	row[5] = strconv.FormatFloat(item.UsageQuantity, 'f', -1, 64)
	row[6] = item.UsageUnit
	row[7] = item.RateDescription
	row[8] = item.Cost.StringFixed(2)
	row[9] = item.ReasonMissed
	row[10] = item.SourceLine
	return row
}

// rollup is one aggregation bucket.
type rollup struct {
	key   string
	total decimal.Decimal
	items int
}

// WriteCategoryRollup writes per-category subtotals, largest first. Shares
// are of the ledger total; a zero-total ledger reports zero shares.
func WriteCategoryRollup(w io.Writer, ledger model.Ledger) error {
	return writeRollup(w, ledger, "category", func(item model.LineItem) string { return item.Category })
}

// WriteRegionRollup writes per-region subtotals, largest first.
func WriteRegionRollup(w io.Writer, ledger model.Ledger) error {
	return writeRollup(w, ledger, "region", func(item model.LineItem) string { return item.Region })
}

func writeRollup(w io.Writer, ledger model.Ledger, label string, keyOf func(model.LineItem) string) error {
	buckets := make(map[string]*rollup)
	var order []string
	for _, item := range ledger.Items {
		key := keyOf(item)
		b, ok := buckets[key]
		if !ok {
			b = &rollup{key: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.total = b.total.Add(item.Cost)
		b.items++
	}

	rows := make([]*rollup, 0, len(order))
	for _, key := range order {
		rows = append(rows, buckets[key])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].total.GreaterThan(rows[j].total)
	})

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{label, "items", "total", "share"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	for _, b := range rows {
		share := decimal.Zero
		if !ledger.Total.IsZero() {
			share = b.total.Div(ledger.Total).Mul(hundred).Round(2)
		}
		row := []string{b.key, strconv.Itoa(b.items), b.total.StringFixed(2), share.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %s row %q: %w", label, b.key, err)
		}
	}
	return cw.Error()
}

// GCPLedgerHeader is the CSV header for the GCP-mapped ledger export.
const GCPLedgerHeader = "line_number,category,service_name,region,cost,gcp_category,gcp_service,gcp_service_type,gcp_instance,gcp_region"

// WriteGCPLedger writes the ledger with each item's GCP equivalents
// alongside. Unmapped fields are left blank rather than guessed.
func WriteGCPLedger(w io.Writer, ledger model.Ledger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(GCPLedgerHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range ledger.Items {
		row := []string{
			strconv.Itoa(item.LineNumber),
			item.Category,
			item.ServiceName,
			item.Region,
			item.Cost.StringFixed(2),
			"", "", "", "", "",
		}
		if m, ok := gcpmap.Service(item.Category); ok {
			row[5], row[6], row[7] = m.Category, m.Service, m.ServiceType
		}
		if instance, ok := gcpmap.InstanceType(item.ServiceType); ok {
			row[8] = instance
		}
		if region, ok := gcpmap.Region(item.Region); ok {
			row[9] = region
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteSummary writes a human-readable validation summary.
func WriteSummary(w io.Writer, analysis model.InvoiceAnalysis) error {
	v := analysis.Validation

	fmt.Fprintf(w, "source: %s\n", analysis.Source)
	fmt.Fprintf(w, "mode: %s\n", analysis.Mode)
	fmt.Fprintf(w, "line items: %d\n", analysis.Ledger.Len())
	fmt.Fprintf(w, "calculated total: %s\n", v.CalculatedTotal.StringFixed(2))
	if v.HasInvoiceTotal {
		fmt.Fprintf(w, "invoice total: %s\n", v.InvoiceTotal.StringFixed(2))
		fmt.Fprintf(w, "difference: %s\n", v.Difference.StringFixed(2))
	} else {
		fmt.Fprintln(w, "invoice total: not found")
	}
	fmt.Fprintf(w, "validation: %s\n", v.Status)
	if analysis.OracleInvoked {
		fmt.Fprintf(w, "reconciliation: oracle invoked, %d items added\n", analysis.ItemsAdded)
	}
	if analysis.OracleErr != "" {
		fmt.Fprintf(w, "reconciliation error: %s\n", analysis.OracleErr)
	}
	return nil
}
