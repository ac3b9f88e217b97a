package oracle

import (
	"fmt"
	"strings"

	"github.com/costlens-dev/costlens/internal/reconcile"
)

const systemPrompt = `You are a billing analyst reconciling a cloud invoice.
A first extraction pass missed some charges. Scan the invoice text line by
line for cost amounts absent from the already-extracted items. Look for:
- costs embedded in descriptions, including fractional amounts
- zero-dollar line items (free tier usage still appears as a charge)
- tax amounts, support fees, marketplace charges, adjustments
- per-hour, per-GB, per-request micro-charges

Rules:
- use region names exactly as written in the text, no standardization
- extract amounts with full precision, no rounding
- never invent a charge that is not present in the text

Respond with JSON only (no markdown):
{"missing_items": [{"service_category": "", "service_name": "", "service_type": "", "region": "", "usage_quantity": 0.0, "usage_unit": "", "rate_description": "", "cost_usd": 0.00, "line_text": "", "reason_missed": ""}]}`

// buildPrompt renders one reconciliation request. The already-extracted
// items are listed so the model does not re-propose them.
func buildPrompt(req reconcile.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invoice total: USD %s\n", req.InvoiceTotal.StringFixed(2))
	fmt.Fprintf(&b, "Extracted so far: USD %s\n", req.InvoiceTotal.Sub(req.TargetDifference).StringFixed(2))
	fmt.Fprintf(&b, "Missing target: USD %s\n\n", req.TargetDifference.StringFixed(2))

	b.WriteString("Already extracted items:\n")
	if len(req.Items) == 0 {
		b.WriteString("none\n")
	}
	for _, item := range req.Items {
		fmt.Fprintf(&b, "- line %d | %s | %s | USD %s\n",
			item.LineNumber, item.Category, item.ServiceName, item.Cost.StringFixed(2))
	}

	b.WriteString("\nScan this text line by line:\n")
	b.WriteString(req.Text)
	fmt.Fprintf(&b, "\n\nFind every missing cost to reach exactly USD %s:\n", req.TargetDifference.StringFixed(2))

	return b.String()
}
