package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/costlens-dev/costlens/internal/model"
)

// wireItem is the JSON shape the model is asked to produce for one candidate.
type wireItem struct {
	ServiceCategory string      `json:"service_category"`
	ServiceName     string      `json:"service_name"`
	ServiceType     string      `json:"service_type"`
	Region          string      `json:"region"`
	UsageQuantity   float64     `json:"usage_quantity"`
	UsageUnit       string      `json:"usage_unit"`
	RateDescription string      `json:"rate_description"`
	CostUSD         json.Number `json:"cost_usd"`
	LineText        string      `json:"line_text"`
	ReasonMissed    string      `json:"reason_missed"`
}

type wireResponse struct {
	MissingItems []wireItem `json:"missing_items"`
}

// parseResponse decodes the model's reply into candidate line items.
// Markdown fences and surrounding prose are stripped first; an entry whose
// cost does not parse as a decimal is dropped, not fatal. Only a reply with
// no decodable JSON object at all is an error.
func parseResponse(text string) ([]model.LineItem, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in oracle response")
	}

	var resp wireResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("decoding oracle response: %w", err)
	}

	items := make([]model.LineItem, 0, len(resp.MissingItems))
	for _, w := range resp.MissingItems {
		cost, err := decimal.NewFromString(w.CostUSD.String())
		if err != nil {
			continue
		}
		items = append(items, model.LineItem{
			Category:        w.ServiceCategory,
			ServiceName:     w.ServiceName,
			ServiceType:     w.ServiceType,
			Region:          w.Region,
			UsageQuantity:   w.UsageQuantity,
			UsageUnit:       w.UsageUnit,
			RateDescription: w.RateDescription,
			Cost:            cost,
			SourceLine:      w.LineText,
			ReasonMissed:    w.ReasonMissed,
		})
	}
	return items, nil
}

// extractJSON pulls the JSON object out of a reply that may be fenced or
// wrapped in prose.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
