package translator

import (
	"fmt"

	"github.com/graang/graang/internal/model"
)

// defaultPanelTitle is used when neither the definition nor the widget
// carries a title.
const defaultPanelTitle = "Untitled Panel"

// logStreamNotice is the body of the placeholder panel emitted for
// event stream widgets.
const logStreamNotice = "Log stream widgets cannot be converted automatically. " +
	"Recreate this panel against your log datasource."

// widgetMapper converts widgets into panels. It never fails: stream
// widgets and unrecognized types degrade to text placeholders that keep
// their grid slot.
type widgetMapper struct {
	datasource string
	layout     *layoutMapper
}

func newWidgetMapper(datasource, layoutType string) *widgetMapper {
	return &widgetMapper{
		datasource: datasource,
		layout:     newLayoutMapper(layoutType),
	}
}

// Map converts the widget at the given 1-based flattened position into a
// panel, recording the outcome and any query fallback notes.
func (m *widgetMapper) Map(index int, w model.Widget) (model.Panel, WidgetOutcome, []QueryNote) {
	def := w.Definition

	panel := model.Panel{
		ID:      index,
		Title:   widgetTitle(w),
		GridPos: m.layout.next(w),
	}
	outcome := WidgetOutcome{
		Index:      index,
		Title:      panel.Title,
		SourceType: def.Type,
		Outcome:    OutcomeConverted,
	}
	var notes []QueryNote

	switch def.Type {
	case "timeseries":
		panel.Type = "timeseries"
		panel.Datasource = m.datasourceRef()
		panel.Options = timeseriesOptions(def.Viz)
		panel.Targets, notes = m.targets(index, def.Requests)

	case "query_value":
		panel.Type = "stat"
		panel.Datasource = m.datasourceRef()
		panel.Options = statOptions()
		panel.Targets, notes = m.targets(index, def.Requests)

	case "toplist":
		panel.Type = "bargauge"
		panel.Datasource = m.datasourceRef()
		panel.Options = bargaugeOptions()
		panel.Targets, notes = m.targets(index, def.Requests)

	case "note":
		panel.Type = "text"
		panel.Content = def.Content
		panel.Mode = "markdown"

	case "heatmap":
		panel.Type = "heatmap"
		panel.Datasource = m.datasourceRef()
		panel.Options = heatmapOptions()
		panel.Targets, notes = m.targets(index, def.Requests)

	case "hostmap":
		panel.Type = "table"
		panel.Datasource = m.datasourceRef()
		panel.Targets, notes = m.targets(index, def.Requests)

	case "event_stream":
		panel.Type = "text"
		panel.Content = logStreamNotice
		panel.Mode = "markdown"
		outcome.Outcome = OutcomePlaceholder
		outcome.Reason = "log stream widgets have no metric equivalent"

	default:
		name := def.Type
		if name == "" {
			name = "unknown"
		}
		panel.Type = "text"
		panel.Content = fmt.Sprintf("Unsupported Datadog widget type: %s", name)
		panel.Mode = "markdown"
		outcome.SourceType = name
		outcome.Outcome = OutcomePlaceholder
		outcome.Reason = fmt.Sprintf("widget type %q is not supported", name)
	}

	outcome.PanelType = panel.Type
	return panel, outcome, notes
}

// SupportedWidgetType reports whether widgets of the given type convert
// to a native panel rather than a text placeholder.
func SupportedWidgetType(widgetType string) bool {
	switch widgetType {
	case "timeseries", "query_value", "toplist", "note", "heatmap", "hostmap":
		return true
	}
	return false
}

// targets translates the widget's requests into panel targets. Requests
// without a query string are skipped but keep their reference slot.
func (m *widgetMapper) targets(widgetIndex int, requests model.RequestList) ([]model.Target, []QueryNote) {
	var targets []model.Target
	var notes []QueryNote

	for i, req := range requests {
		expr := req.Expression()
		if expr == "" {
			continue
		}

		refID := req.RefKey
		if refID == "" {
			refID = fmt.Sprintf("A%d", i)
		}

		translated, exact := TranslateQuery(expr)
		if !exact {
			notes = append(notes, QueryNote{
				WidgetIndex: widgetIndex,
				RefID:       refID,
				Query:       expr,
				Reason:      FallbackReason,
			})
		}

		targets = append(targets, model.Target{
			Datasource:   m.datasourceRef(),
			Expr:         translated,
			RefID:        refID,
			LegendFormat: req.DisplayName,
		})
	}

	return targets, notes
}

func (m *widgetMapper) datasourceRef() *model.DatasourceRef {
	return &model.DatasourceRef{Type: m.datasource, UID: m.datasource}
}

// widgetTitle resolves the panel title, preferring the definition title,
// then the widget-level title used by legacy graph entries.
func widgetTitle(w model.Widget) string {
	if w.Definition.Title != "" {
		return w.Definition.Title
	}
	if w.Title != "" {
		return w.Title
	}
	return defaultPanelTitle
}

func timeseriesOptions(viz string) *model.PanelOptions {
	opts := &model.PanelOptions{
		Legend:  &model.LegendOptions{ShowLegend: true},
		Tooltip: &model.TooltipOptions{Mode: "single", Sort: "none"},
	}
	switch viz {
	case "line":
		opts.DrawStyle = "line"
	case "area":
		opts.DrawStyle = "line"
		opts.FillOpacity = 25
	case "bar":
		opts.DrawStyle = "bars"
	}
	return opts
}

func statOptions() *model.PanelOptions {
	return &model.PanelOptions{
		TextMode:      "value",
		ColorMode:     "value",
		GraphMode:     "none",
		JustifyMode:   "auto",
		Orientation:   "auto",
		ReduceOptions: lastValueReduce(),
	}
}

func bargaugeOptions() *model.PanelOptions {
	return &model.PanelOptions{
		Orientation:   "horizontal",
		DisplayMode:   "basic",
		ReduceOptions: lastValueReduce(),
	}
}

func heatmapOptions() *model.PanelOptions {
	calculate := false
	return &model.PanelOptions{
		Calculate: &calculate,
		Color:     &model.HeatmapColor{Scheme: "Spectral"},
	}
}

func lastValueReduce() *model.ReduceOptions {
	return &model.ReduceOptions{
		Values: false,
		Calcs:  []string{"lastNotNull"},
		Fields: "",
	}
}
