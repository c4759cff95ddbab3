package analyzer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/graang/graang/internal/model"
	"github.com/graang/graang/internal/translator"
	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
)

const reportWidth = 80

// Analysis holds the statistics extracted from a Datadog dashboard
type Analysis struct {
	Title              string
	Description        string
	SourcePath         string
	TotalWidgets       int
	GroupWidgets       int
	NestedWidgets      int
	TotalQueries       int
	WidgetTypes        map[string]int
	VisualizationTypes map[string]int
	QueryTypes         map[string]int
	MetricSources      map[string]int
	TemplateVariables  []model.TemplateVariable

	widgets []model.Widget
}

// Analyze walks a dashboard and collects widget, query and metric
// statistics. The caller's document is left untouched.
func Analyze(d *model.Dashboard) *Analysis {
	src := *d
	src.Normalize()

	a := &Analysis{
		Title:              src.Title,
		Description:        src.Description,
		WidgetTypes:        make(map[string]int),
		VisualizationTypes: make(map[string]int),
		QueryTypes:         make(map[string]int),
		MetricSources:      make(map[string]int),
		TemplateVariables:  src.TemplateVariables,
		widgets:            src.Widgets,
	}
	if a.Title == "" {
		a.Title = "Untitled Dashboard"
	}

	a.TotalWidgets = len(src.Widgets)
	a.walk(src.Widgets, false)

	return a
}

// AnalyzeFile loads and analyzes a dashboard file
func AnalyzeFile(path string) (*Analysis, error) {
	logger.Debug("Analyzing dashboard file", zap.String("path", path))

	d, err := translator.ParseFile(path)
	if err != nil {
		return nil, err
	}

	a := Analyze(d)
	a.SourcePath = path
	return a, nil
}

func (a *Analysis) walk(widgets []model.Widget, nested bool) {
	for _, w := range widgets {
		t := w.Definition.Type
		if t == "" {
			t = "unknown"
		}
		a.WidgetTypes[t]++

		if w.Definition.Type == model.WidgetGroup && w.Definition.Widgets != nil {
			a.GroupWidgets++
			a.walk(w.Definition.Widgets, true)
			continue
		}

		if nested {
			a.NestedWidgets++
		}
		if w.Definition.Viz != "" {
			a.VisualizationTypes[w.Definition.Viz]++
		}
		for _, req := range w.Definition.Requests {
			a.countRequest(req)
		}
	}
}

func (a *Analysis) countRequest(req model.Request) {
	expr := req.Query
	if expr == "" {
		expr = req.QueryAlt
	}
	if expr != "" {
		a.TotalQueries++
		a.recordMetricSource(expr)

		t := req.Type
		if t == "" {
			t = "unknown"
		}
		a.QueryTypes[t]++
	}

	for _, sq := range req.Queries {
		if sq.Query == "" {
			continue
		}
		a.TotalQueries++
		a.recordMetricSource(sq.Query)

		name := sq.Name
		if name == "" {
			name = "unknown"
		}
		a.QueryTypes[name]++
	}
}

// recordMetricSource counts the metric namespace of a query, the first
// dotted segment of the metric name, e.g. "system" in
// "avg:system.cpu.user{*}".
func (a *Analysis) recordMetricSource(query string) {
	if src := metricSource(query); src != "" {
		a.MetricSources[src]++
	}
}

func metricSource(query string) string {
	i := strings.Index(query, ":")
	if i < 0 {
		return ""
	}
	rest := query[i+1:]
	if j := strings.Index(rest, ":"); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.Index(rest, "{"); j >= 0 {
		rest = rest[:j]
	}
	j := strings.Index(rest, ".")
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// Report returns the full analysis report as a string
func (a *Analysis) Report() string {
	heavy := strings.Repeat("=", reportWidth)
	var sb strings.Builder

	sb.WriteString("\n" + heavy + "\n")
	sb.WriteString(center("DASHBOARD ANALYSIS REPORT") + "\n")
	sb.WriteString(heavy + "\n")

	sb.WriteString(fmt.Sprintf("Dashboard Title: %s\n", a.Title))
	if a.SourcePath != "" {
		sb.WriteString(fmt.Sprintf("Source File: %s\n", a.SourcePath))
	}

	if a.Description != "" {
		sb.WriteString("\nDescription:\n")
		sb.WriteString(wrap(strings.ReplaceAll(a.Description, "\n", " "), reportWidth) + "\n")
	}

	section(&sb, "SUMMARY STATISTICS")
	sb.WriteString(fmt.Sprintf("Total Widgets: %d\n", a.TotalWidgets))
	sb.WriteString(fmt.Sprintf("   - Group Widgets: %d\n", a.GroupWidgets))
	sb.WriteString(fmt.Sprintf("   - Nested Widgets: %d\n", a.NestedWidgets))
	sb.WriteString(fmt.Sprintf("Total Queries: %d\n", a.TotalQueries))
	sb.WriteString(fmt.Sprintf("Template Variables: %d\n", len(a.TemplateVariables)))

	section(&sb, "WIDGET TYPES")
	writeCounts(&sb, a.WidgetTypes)

	if len(a.VisualizationTypes) > 0 {
		section(&sb, "VISUALIZATION TYPES")
		writeCounts(&sb, a.VisualizationTypes)
	}

	section(&sb, "QUERY TYPES")
	writeCounts(&sb, a.QueryTypes)

	section(&sb, "METRIC SOURCES")
	writeCounts(&sb, a.MetricSources)

	if len(a.TemplateVariables) > 0 {
		section(&sb, "TEMPLATE VARIABLES")
		for _, v := range a.TemplateVariables {
			prefix := v.Prefix
			if prefix == "" {
				prefix = "none"
			}
			def := v.Default
			if def == "" {
				def = "*"
			}
			sb.WriteString(fmt.Sprintf("  - %s (prefix: %s, default: %s)\n", v.Name, prefix, def))
		}
	}

	section(&sb, "DASHBOARD STRUCTURE")
	writeHierarchy(&sb, a.widgets, 0)

	sb.WriteString("\n" + heavy + "\n")
	return sb.String()
}

func section(sb *strings.Builder, title string) {
	light := strings.Repeat("-", reportWidth)
	sb.WriteString("\n" + light + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(light + "\n")
}

// writeCounts prints count entries sorted by count descending, then name,
// so equal counts render in a stable order.
func writeCounts(sb *strings.Builder, counts map[string]int) {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", e.name, e.count))
	}
}

func writeHierarchy(sb *strings.Builder, widgets []model.Widget, indent int) {
	pad := strings.Repeat(" ", indent)
	for i, w := range widgets {
		t := w.Definition.Type
		if t == "" {
			t = "unknown"
		}
		title := w.Definition.Title
		if title == "" {
			title = "[No title]"
		}
		sb.WriteString(fmt.Sprintf("%sWidget %d: %s (%s)\n", pad, i+1, title, t))

		if w.Definition.Type == model.WidgetGroup && w.Definition.Widgets != nil {
			sb.WriteString(fmt.Sprintf("%sGroup contains %d widgets:\n", pad+"  ", len(w.Definition.Widgets)))
			writeHierarchy(sb, w.Definition.Widgets, indent+4)
		}

		if len(w.Definition.Requests) > 0 {
			if w.Definition.Requests[0].RefKey != "" {
				sb.WriteString(pad + "  Queries (dictionary format):\n")
			} else {
				sb.WriteString(fmt.Sprintf("%sQueries (%d):\n", pad+"  ", len(w.Definition.Requests)))
			}
			for j, req := range w.Definition.Requests {
				label := req.RefKey
				if label == "" {
					label = strconv.Itoa(j)
				}
				writeRequest(sb, req, indent+4, label)
			}
		}
	}
}

func writeRequest(sb *strings.Builder, req model.Request, indent int, label string) {
	pad := strings.Repeat(" ", indent)

	expr := req.Query
	if expr == "" {
		expr = req.QueryAlt
	}
	if expr != "" {
		sb.WriteString(fmt.Sprintf("%sQuery %s: %s\n", pad, label, expr))
		if req.Aggregator != "" {
			sb.WriteString(fmt.Sprintf("%s  Aggregator: %s\n", pad, req.Aggregator))
		}
		if req.Type != "" {
			sb.WriteString(fmt.Sprintf("%s  Type: %s\n", pad, req.Type))
		}
	}

	for i, sq := range req.Queries {
		if sq.Query == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%sSubquery %d: %s\n", pad, i+1, sq.Query))
		if sq.DataSource != "" {
			sb.WriteString(fmt.Sprintf("%s  Data Source: %s\n", pad, sq.DataSource))
		}
		if sq.Name != "" {
			sb.WriteString(fmt.Sprintf("%s  Name: %s\n", pad, sq.Name))
		}
		if sq.Aggregator != "" {
			sb.WriteString(fmt.Sprintf("%s  Aggregator: %s\n", pad, sq.Aggregator))
		}
	}

	for i, f := range req.Formulas {
		if f.Formula == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%sFormula %d: %s (alias: %s)\n", pad, i+1, f.Formula, f.Alias))
	}
}

func center(s string) string {
	if len(s) >= reportWidth {
		return s
	}
	left := (reportWidth - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// wrap breaks text into lines no wider than width, splitting on spaces
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			sb.WriteString(line + "\n")
			line = word
			continue
		}
		line += " " + word
	}
	sb.WriteString(line)
	return sb.String()
}
