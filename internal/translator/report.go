package translator

import (
	"fmt"
	"strings"
)

// Outcome classifies how a single widget fared during conversion.
type Outcome string

const (
	// OutcomeConverted means the widget mapped directly to a panel
	OutcomeConverted Outcome = "converted"
	// OutcomePlaceholder means the widget degraded to a text placeholder
	OutcomePlaceholder Outcome = "placeholder"
	// OutcomeRejected is reserved for widgets that produced no panel.
	// The mapper currently never rejects, it degrades instead.
	OutcomeRejected Outcome = "rejected"
)

// WidgetOutcome records the conversion result of one widget. Index is
// 1-based in flattened widget order and matches the produced panel id.
type WidgetOutcome struct {
	Index      int     `json:"index"`
	Title      string  `json:"title"`
	SourceType string  `json:"source_type"`
	PanelType  string  `json:"panel_type"`
	Outcome    Outcome `json:"outcome"`
	Reason     string  `json:"reason,omitempty"`
}

// QueryNote flags a query that was passed through without a confident
// rewrite.
type QueryNote struct {
	WidgetIndex int    `json:"widget_index"`
	RefID       string `json:"ref_id"`
	Query       string `json:"query"`
	Reason      string `json:"reason"`
}

// Report summarizes one dashboard conversion.
type Report struct {
	Total        int             `json:"total"`
	Converted    int             `json:"converted"`
	Placeholders int             `json:"placeholders"`
	Rejected     int             `json:"rejected"`
	Widgets      []WidgetOutcome `json:"widgets"`
	Notes        []QueryNote     `json:"notes,omitempty"`
}

// add records a widget outcome and updates the counters.
func (r *Report) add(o WidgetOutcome) {
	r.Total++
	switch o.Outcome {
	case OutcomePlaceholder:
		r.Placeholders++
	case OutcomeRejected:
		r.Rejected++
	default:
		r.Converted++
	}
	r.Widgets = append(r.Widgets, o)
}

// note records a query fallback.
func (r *Report) note(n QueryNote) {
	r.Notes = append(r.Notes, n)
}

// Format returns a human-readable string representation of the report
func (r *Report) Format() string {
	var sb strings.Builder

	if r.Rejected == 0 {
		sb.WriteString("✓ Conversion complete\n")
	} else {
		sb.WriteString(fmt.Sprintf("✗ Conversion finished with %d rejected widget(s)\n", r.Rejected))
	}
	sb.WriteString(fmt.Sprintf("  %d widget(s): %d converted, %d placeholder(s)", r.Total, r.Converted, r.Placeholders))

	if r.Placeholders > 0 || r.Rejected > 0 || len(r.Notes) > 0 {
		sb.WriteString("\n")
	}

	for _, w := range r.Widgets {
		if w.Outcome == OutcomeConverted {
			continue
		}
		sb.WriteString(fmt.Sprintf("\nWARNING: widget %d %q (%s)\n", w.Index, w.Title, w.SourceType))
		sb.WriteString(fmt.Sprintf("  Mapped to: %s\n", w.PanelType))
		if w.Reason != "" {
			sb.WriteString(fmt.Sprintf("  Reason: %s\n", w.Reason))
		}
	}

	if len(r.Notes) > 0 {
		sb.WriteString("\n")
		for _, n := range r.Notes {
			sb.WriteString(fmt.Sprintf("💡 widget %d query %s: %s\n", n.WidgetIndex, n.RefID, n.Reason))
		}
	}

	return sb.String()
}
