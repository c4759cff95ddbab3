package model

// Constants applied to every converted Grafana dashboard.
const (
	// GrafanaSchemaVersion is the dashboard schema version emitted by the converter
	GrafanaSchemaVersion = 36

	// DefaultRefresh is the refresh interval set on converted dashboards
	DefaultRefresh = "5s"

	// DefaultTimezone is the timezone set on converted dashboards
	DefaultTimezone = "browser"

	// ConvertedTag marks dashboards produced by this converter
	ConvertedTag = "converted-from-datadog"
)

// Board represents a Grafana dashboard document
type Board struct {
	ID            *int64      `json:"id"`
	UID           string      `json:"uid"`
	Title         string      `json:"title"`
	Tags          []string    `json:"tags"`
	Timezone      string      `json:"timezone"`
	SchemaVersion int         `json:"schemaVersion"`
	Version       int         `json:"version"`
	Refresh       string      `json:"refresh"`
	Time          TimeRange   `json:"time"`
	Panels        []Panel     `json:"panels"`
	Templating    Templating  `json:"templating"`
	Annotations   Annotations `json:"annotations"`
}

// TimeRange holds the default dashboard time window
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Panel represents a single Grafana panel
type Panel struct {
	ID         int            `json:"id"`
	Title      string         `json:"title"`
	Type       string         `json:"type"`
	GridPos    GridPos        `json:"gridPos"`
	Datasource *DatasourceRef `json:"datasource,omitempty"`
	Targets    []Target       `json:"targets,omitempty"`
	Options    *PanelOptions  `json:"options,omitempty"`
	Content    string         `json:"content,omitempty"`
	Mode       string         `json:"mode,omitempty"`
}

// GridPos places a panel on the 24-column dashboard grid
type GridPos struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// DatasourceRef identifies the datasource a panel or target reads from
type DatasourceRef struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
}

// Target represents one query of a panel
type Target struct {
	Datasource   *DatasourceRef `json:"datasource,omitempty"`
	Expr         string         `json:"expr"`
	RefID        string         `json:"refId"`
	Instant      bool           `json:"instant"`
	LegendFormat string         `json:"legendFormat"`
}

// PanelOptions carries the type-specific options block. Only the fields
// belonging to the panel's type are populated.
type PanelOptions struct {
	Legend        *LegendOptions  `json:"legend,omitempty"`
	Tooltip       *TooltipOptions `json:"tooltip,omitempty"`
	DrawStyle     string          `json:"drawStyle,omitempty"`
	FillOpacity   int             `json:"fillOpacity,omitempty"`
	TextMode      string          `json:"textMode,omitempty"`
	ColorMode     string          `json:"colorMode,omitempty"`
	GraphMode     string          `json:"graphMode,omitempty"`
	JustifyMode   string          `json:"justifyMode,omitempty"`
	Orientation   string          `json:"orientation,omitempty"`
	DisplayMode   string          `json:"displayMode,omitempty"`
	ReduceOptions *ReduceOptions  `json:"reduceOptions,omitempty"`
	Calculate     *bool           `json:"calculate,omitempty"`
	Color         *HeatmapColor   `json:"color,omitempty"`
}

// LegendOptions controls panel legend display
type LegendOptions struct {
	ShowLegend bool `json:"showLegend"`
}

// TooltipOptions controls panel tooltip behavior
type TooltipOptions struct {
	Mode string `json:"mode"`
	Sort string `json:"sort"`
}

// ReduceOptions controls how stat-style panels reduce series to a value
type ReduceOptions struct {
	Values bool     `json:"values"`
	Calcs  []string `json:"calcs"`
	Fields string   `json:"fields"`
}

// HeatmapColor selects the heatmap color scheme
type HeatmapColor struct {
	Scheme string `json:"scheme"`
}

// Templating wraps the dashboard variable list
type Templating struct {
	List []TemplateVar `json:"list"`
}

// TemplateVar represents one Grafana dashboard variable
type TemplateVar struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Datasource  *DatasourceRef `json:"datasource,omitempty"`
	Current     CurrentValue   `json:"current"`
	Options     []VarOption    `json:"options"`
	Query       string         `json:"query"`
	SkipURLSync bool           `json:"skipUrlSync"`
	Hide        int            `json:"hide"`
}

// CurrentValue is the selected value of a dashboard variable
type CurrentValue struct {
	Value string `json:"value,omitempty"`
	Text  string `json:"text,omitempty"`
}

// VarOption is one selectable value of a dashboard variable
type VarOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Annotations wraps the dashboard annotation list
type Annotations struct {
	List []Annotation `json:"list"`
}

// Annotation represents one dashboard annotation query
type Annotation struct {
	BuiltIn    int            `json:"builtIn"`
	Datasource *DatasourceRef `json:"datasource"`
	Enable     bool           `json:"enable"`
	Hide       bool           `json:"hide"`
	IconColor  string         `json:"iconColor"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
}

// BuiltInAnnotations returns the annotation block Grafana adds to new
// dashboards.
func BuiltInAnnotations() Annotations {
	return Annotations{
		List: []Annotation{
			{
				BuiltIn:    1,
				Datasource: &DatasourceRef{Type: "grafana", UID: "-- Grafana --"},
				Enable:     true,
				Hide:       true,
				IconColor:  "rgba(0, 211, 255, 1)",
				Name:       "Annotations & Alerts",
				Type:       "dashboard",
			},
		},
	}
}

// ImportPayload wraps a board in the envelope Grafana's dashboard import
// API expects, carrying the destination folder label.
type ImportPayload struct {
	Dashboard   *Board `json:"dashboard"`
	FolderTitle string `json:"folderTitle,omitempty"`
	Overwrite   bool   `json:"overwrite"`
}
