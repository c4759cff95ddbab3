package translator

import (
	"strings"
	"testing"
)

func TestReportCounters(t *testing.T) {
	var r Report
	r.add(WidgetOutcome{Index: 1, Outcome: OutcomeConverted})
	r.add(WidgetOutcome{Index: 2, Outcome: OutcomeConverted})
	r.add(WidgetOutcome{Index: 3, Outcome: OutcomePlaceholder})
	r.add(WidgetOutcome{Index: 4, Outcome: OutcomeRejected})

	if r.Total != 4 {
		t.Errorf("Expected total 4, got %d", r.Total)
	}
	if r.Converted != 2 {
		t.Errorf("Expected 2 converted, got %d", r.Converted)
	}
	if r.Placeholders != 1 {
		t.Errorf("Expected 1 placeholder, got %d", r.Placeholders)
	}
	if r.Rejected != 1 {
		t.Errorf("Expected 1 rejected, got %d", r.Rejected)
	}
	if len(r.Widgets) != 4 {
		t.Errorf("Expected 4 outcomes recorded, got %d", len(r.Widgets))
	}
}

func TestReportFormatClean(t *testing.T) {
	var r Report
	r.add(WidgetOutcome{Index: 1, Title: "CPU", SourceType: "timeseries", PanelType: "timeseries", Outcome: OutcomeConverted})

	out := r.Format()
	if !strings.HasPrefix(out, "✓ Conversion complete") {
		t.Errorf("Expected success marker, got %q", out)
	}
	if !strings.Contains(out, "1 widget(s): 1 converted, 0 placeholder(s)") {
		t.Errorf("Expected summary line, got %q", out)
	}
	if strings.Contains(out, "WARNING") {
		t.Errorf("Expected no warnings, got %q", out)
	}
}

func TestReportFormatWarnsOnPlaceholders(t *testing.T) {
	var r Report
	r.add(WidgetOutcome{Index: 1, Title: "CPU", SourceType: "timeseries", PanelType: "timeseries", Outcome: OutcomeConverted})
	r.add(WidgetOutcome{
		Index:      2,
		Title:      "Deploys",
		SourceType: "event_stream",
		PanelType:  "text",
		Outcome:    OutcomePlaceholder,
		Reason:     "event streams have no Grafana equivalent",
	})

	out := r.Format()
	if !strings.Contains(out, `WARNING: widget 2 "Deploys" (event_stream)`) {
		t.Errorf("Expected placeholder warning, got %q", out)
	}
	if !strings.Contains(out, "Mapped to: text") {
		t.Errorf("Expected mapped-to line, got %q", out)
	}
	if !strings.Contains(out, "Reason: event streams have no Grafana equivalent") {
		t.Errorf("Expected reason line, got %q", out)
	}
}

func TestReportFormatIncludesQueryNotes(t *testing.T) {
	var r Report
	r.add(WidgetOutcome{Index: 1, Outcome: OutcomeConverted})
	r.note(QueryNote{WidgetIndex: 1, RefID: "A0", Query: "top(avg:x{*}, 10)", Reason: FallbackReason})

	out := r.Format()
	if !strings.Contains(out, "widget 1 query A0") {
		t.Errorf("Expected query note, got %q", out)
	}
	if !strings.Contains(out, FallbackReason) {
		t.Errorf("Expected fallback reason, got %q", out)
	}
}

func TestReportFormatRejectedMarker(t *testing.T) {
	var r Report
	r.add(WidgetOutcome{Index: 1, Outcome: OutcomeRejected, Title: "Bad", SourceType: "x", PanelType: ""})

	out := r.Format()
	if !strings.HasPrefix(out, "✗") {
		t.Errorf("Expected failure marker, got %q", out)
	}
	if !strings.Contains(out, "1 rejected widget(s)") {
		t.Errorf("Expected rejected count, got %q", out)
	}
}
