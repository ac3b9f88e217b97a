// Package ledger assembles candidate ledgers from raw invoice text.
package ledger

import (
	"strings"

	"github.com/costlens-dev/costlens/internal/classify"
	"github.com/costlens-dev/costlens/internal/model"
	"github.com/costlens-dev/costlens/internal/parse"
)

// Builder defaults, tuned against real cloud invoices.
const (
	DefaultMinLineLength   = 10
	DefaultConfidenceFloor = 0.1
)

// Builder walks invoice text line by line and emits a ledger. Builders hold
// only configuration and are safe to share across invoices.
type Builder struct {
	// MinLineLength drops very short lines in classified mode.
	MinLineLength int
	// ConfidenceFloor drops low-confidence classifications in classified mode.
	ConfidenceFloor float64
	// AllowZeroCost admits zero-cost lines in classified mode. Forensic mode
	// always admits them.
	AllowZeroCost bool
}

// NewBuilder returns a Builder with default thresholds.
func NewBuilder() *Builder {
	return &Builder{
		MinLineLength:   DefaultMinLineLength,
		ConfidenceFloor: DefaultConfidenceFloor,
	}
}

// Build scans every line of text in document order and returns the candidate
// ledger. Lines that match no cost pattern are silently excluded; a matched
// amount that fails decimal parsing counts as no amount found. Line numbers
// are 1-based and refer to the original text.
func (b *Builder) Build(text string, mode model.Mode) model.Ledger {
	var out model.Ledger

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lineNum := i + 1
		if mode == model.ModeForensic {
			if item, ok := b.forensicItem(line, lineNum); ok {
				out.Append(item)
			}
			continue
		}
		if item, ok := b.classifiedItem(line, lineNum); ok {
			out.Append(item)
		}
	}

	return out
}

// classifiedItem emits an item only when the line carries a cost and
// classifies above the confidence floor.
func (b *Builder) classifiedItem(line string, lineNum int) (model.LineItem, bool) {
	if len(line) < b.MinLineLength {
		return model.LineItem{}, false
	}

	cost, ok := parse.Cost(line)
	if !ok {
		return model.LineItem{}, false
	}
	if cost.IsZero() && !b.AllowZeroCost {
		return model.LineItem{}, false
	}

	category, confidence := classify.Classify(line)
	if confidence < b.ConfidenceFloor {
		return model.LineItem{}, false
	}

	quantity, unit, _ := parse.Usage(line)

	return model.LineItem{
		Category:        category,
		ServiceName:     classify.ServiceName(line, category),
		ServiceType:     parse.ServiceType(line),
		Region:          parse.Region(line),
		UsageQuantity:   quantity,
		UsageUnit:       unit,
		RateDescription: parse.RateDescription(line),
		Cost:            cost,
		SourceLine:      line,
		LineNumber:      lineNum,
	}, true
}

// forensicItem admits every line with a forensic cost match, regardless of
// classification confidence. The objective is covering the invoice total,
// not precision of categorization. Regions keep their original surface form
// for cross-referencing the source document.
func (b *Builder) forensicItem(line string, lineNum int) (model.LineItem, bool) {
	cost, ok := parse.ForensicCost(line)
	if !ok {
		return model.LineItem{}, false
	}

	category, _ := classify.Classify(line)

	quantity, unit, found := parse.Usage(line)
	if !found {
		quantity, unit = 1, parse.ForensicDefaultUnit
	}

	return model.LineItem{
		Category:        category,
		ServiceName:     classify.ServiceName(line, category),
		ServiceType:     parse.ServiceType(line),
		Region:          parse.RegionVerbatim(line),
		UsageQuantity:   quantity,
		UsageUnit:       unit,
		RateDescription: parse.RateDescription(line),
		Cost:            cost,
		SourceLine:      line,
		LineNumber:      lineNum,
	}, true
}
