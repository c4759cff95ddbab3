package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Layout modes used by Datadog dashboards.
const (
	LayoutOrdered = "ordered"
	LayoutFree    = "free"
)

// WidgetGroup is the definition type of container widgets holding nested widgets.
const WidgetGroup = "group"

// Dashboard represents a Datadog dashboard export
type Dashboard struct {
	Title             string             `yaml:"title" json:"title"`
	Description       string             `yaml:"description,omitempty" json:"description,omitempty"`
	LayoutType        string             `yaml:"layout_type,omitempty" json:"layout_type,omitempty"`
	Widgets           []Widget           `yaml:"widgets,omitempty" json:"widgets,omitempty"`
	Graphs            []Widget           `yaml:"graphs,omitempty" json:"graphs,omitempty"`
	TemplateVariables []TemplateVariable `yaml:"template_variables,omitempty" json:"template_variables,omitempty"`
}

// Widget represents a single widget entry in a dashboard
type Widget struct {
	ID         int64         `yaml:"id,omitempty" json:"id,omitempty"`
	Title      string        `yaml:"title,omitempty" json:"title,omitempty"` // legacy graph entries carry the title here
	Definition Definition    `yaml:"definition" json:"definition"`
	Layout     *WidgetLayout `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// Definition contains the widget type and its visualization settings
type Definition struct {
	Type     string      `yaml:"type" json:"type"`
	Title    string      `yaml:"title,omitempty" json:"title,omitempty"`
	Viz      string      `yaml:"viz,omitempty" json:"viz,omitempty"`
	Content  string      `yaml:"content,omitempty" json:"content,omitempty"`
	Requests RequestList `yaml:"requests,omitempty" json:"requests,omitempty"`
	Widgets  []Widget    `yaml:"widgets,omitempty" json:"widgets,omitempty"`
}

// WidgetLayout holds free-layout coordinates as percentages of a 100-unit canvas
type WidgetLayout struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Request represents one query request within a widget definition
type Request struct {
	Query       string     `yaml:"q,omitempty" json:"q,omitempty"`
	QueryAlt    string     `yaml:"query,omitempty" json:"query,omitempty"`
	Aggregator  string     `yaml:"aggregator,omitempty" json:"aggregator,omitempty"`
	Type        string     `yaml:"type,omitempty" json:"type,omitempty"`
	DisplayName string     `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Queries     []SubQuery `yaml:"queries,omitempty" json:"queries,omitempty"`
	Formulas    []Formula  `yaml:"formulas,omitempty" json:"formulas,omitempty"`

	// RefKey is set when the requests block uses the keyed-map form and
	// carries the map key the request was filed under.
	RefKey string `yaml:"-" json:"-"`
}

// SubQuery represents one entry of the newer multi-query request format
type SubQuery struct {
	Query      string `yaml:"query,omitempty" json:"query,omitempty"`
	DataSource string `yaml:"data_source,omitempty" json:"data_source,omitempty"`
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Aggregator string `yaml:"aggregator,omitempty" json:"aggregator,omitempty"`
}

// Formula combines subquery results into a derived expression
type Formula struct {
	Formula string `yaml:"formula" json:"formula"`
	Alias   string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// TemplateVariable represents a Datadog dashboard template variable
type TemplateVariable struct {
	Name    string   `yaml:"name" json:"name"`
	Prefix  string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Default string   `yaml:"default,omitempty" json:"default,omitempty"`
	Values  []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// Expression returns the query string of a request, checking the older q
// field first, then the query field, then the first entry of the queries
// array.
func (r Request) Expression() string {
	if r.Query != "" {
		return r.Query
	}
	if r.QueryAlt != "" {
		return r.QueryAlt
	}
	if len(r.Queries) > 0 {
		return r.Queries[0].Query
	}
	return ""
}

// Normalize folds the legacy graphs array into the widget list. Older
// screenboard exports put their widgets under a top-level graphs key.
func (d *Dashboard) Normalize() {
	if len(d.Widgets) == 0 && len(d.Graphs) > 0 {
		d.Widgets = d.Graphs
		d.Graphs = nil
	}
}

// FlattenedWidgets returns the widgets to convert: top-level non-group
// widgets in document order, followed by widgets nested inside group
// containers. Group containers themselves are not returned.
func (d *Dashboard) FlattenedWidgets() []Widget {
	flat := make([]Widget, 0, len(d.Widgets))
	var nested []Widget

	var walk func(widgets []Widget, inGroup bool)
	walk = func(widgets []Widget, inGroup bool) {
		for _, w := range widgets {
			if w.Definition.Type == WidgetGroup && w.Definition.Widgets != nil {
				walk(w.Definition.Widgets, true)
				continue
			}
			if inGroup {
				nested = append(nested, w)
			} else {
				flat = append(flat, w)
			}
		}
	}
	walk(d.Widgets, false)

	return append(flat, nested...)
}

// RequestList accepts both request encodings Datadog uses: a plain list,
// and a map keying requests (or lists of requests) by purpose, e.g.
// {"fill": {...}, "size": {...}}. Map entries are flattened in sorted key
// order so conversion output is deterministic.
type RequestList []Request

// UnmarshalJSON implements json.Unmarshaler
func (l *RequestList) UnmarshalJSON(data []byte) error {
	var list []Request
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return fmt.Errorf("requests must be a list or a map: %w", err)
	}

	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Request
	for _, k := range keys {
		raw := keyed[k]

		var one Request
		if err := json.Unmarshal(raw, &one); err == nil {
			one.RefKey = k
			out = append(out, one)
			continue
		}

		var many []Request
		if err := json.Unmarshal(raw, &many); err != nil {
			return fmt.Errorf("request %q is neither an object nor a list: %w", k, err)
		}
		for i := range many {
			many[i].RefKey = fmt.Sprintf("%s_%d", k, i)
		}
		out = append(out, many...)
	}

	*l = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (l *RequestList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var list []Request
		if err := value.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	case yaml.MappingNode:
		keyed := make(map[string]*yaml.Node, len(value.Content)/2)
		keys := make([]string, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i].Value
			keyed[key] = value.Content[i+1]
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var out []Request
		for _, k := range keys {
			node := keyed[k]
			if node.Kind == yaml.SequenceNode {
				var many []Request
				if err := node.Decode(&many); err != nil {
					return fmt.Errorf("request %q: %w", k, err)
				}
				for i := range many {
					many[i].RefKey = fmt.Sprintf("%s_%d", k, i)
				}
				out = append(out, many...)
				continue
			}
			var one Request
			if err := node.Decode(&one); err != nil {
				return fmt.Errorf("request %q: %w", k, err)
			}
			one.RefKey = k
			out = append(out, one)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("requests must be a list or a map")
	}
}
