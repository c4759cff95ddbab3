package validator

import (
	"strings"
	"testing"

	"github.com/graang/graang/internal/model"
)

func validDashboard() *model.Dashboard {
	return &model.Dashboard{
		Title: "Service Health",
		Widgets: []model.Widget{
			{Definition: model.Definition{Type: "timeseries", Title: "CPU", Requests: model.RequestList{
				{Query: "avg:system.cpu.user{*}"},
			}}},
			{Definition: model.Definition{Type: "note", Content: "hi"}},
		},
		TemplateVariables: []model.TemplateVariable{
			{Name: "env", Prefix: "env", Default: "prod"},
		},
	}
}

func TestValidateCleanDashboard(t *testing.T) {
	result := NewValidator(validDashboard()).Validate()

	if !result.Valid {
		t.Fatalf("Expected valid dashboard, got errors: %+v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %+v", result.Warnings)
	}
}

func TestValidateEmptyDashboard(t *testing.T) {
	result := NewValidator(&model.Dashboard{Title: "Empty"}).Validate()

	if result.Valid {
		t.Fatal("Expected empty dashboard to be invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Field != "widgets" {
		t.Errorf("Expected widgets error, got %+v", result.Errors[0])
	}
}

func TestValidateEmptyGroupsOnly(t *testing.T) {
	d := &model.Dashboard{
		Widgets: []model.Widget{
			{Definition: model.Definition{Type: "group", Widgets: []model.Widget{}}},
		},
	}

	result := NewValidator(d).Validate()
	if result.Valid {
		t.Fatal("Expected dashboard of empty groups to be invalid")
	}
	if !strings.Contains(result.Errors[0].Message, "empty groups") {
		t.Errorf("Expected empty groups error, got %q", result.Errors[0].Message)
	}
}

func TestValidateLegacyGraphs(t *testing.T) {
	d := &model.Dashboard{
		Title: "Legacy",
		Graphs: []model.Widget{
			{Definition: model.Definition{Type: "timeseries"}},
		},
	}

	result := NewValidator(d).Validate()
	if !result.Valid {
		t.Fatalf("Expected legacy graphs to count as widgets, got errors: %+v", result.Errors)
	}
	if len(d.Graphs) != 1 {
		t.Errorf("Expected caller's dashboard untouched, graphs now %d", len(d.Graphs))
	}
}

func TestValidateMissingTitleWarns(t *testing.T) {
	d := validDashboard()
	d.Title = ""

	result := NewValidator(d).Validate()
	if !result.Valid {
		t.Fatalf("Expected missing title to stay valid, got errors: %+v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Field != "title" {
		t.Errorf("Expected title warning, got %+v", result.Warnings)
	}
}

func TestValidateUnsupportedTypesWarn(t *testing.T) {
	d := validDashboard()
	d.Widgets = append(d.Widgets,
		model.Widget{Definition: model.Definition{Type: "event_stream"}},
		model.Widget{Definition: model.Definition{Type: "event_stream"}},
		model.Widget{Definition: model.Definition{Type: "alert_graph"}},
	)

	result := NewValidator(d).Validate()
	if !result.Valid {
		t.Fatalf("Expected unsupported types to stay valid, got errors: %+v", result.Errors)
	}

	var messages []string
	for _, w := range result.Warnings {
		messages = append(messages, w.Message)
	}
	joined := strings.Join(messages, "\n")
	if !strings.Contains(joined, "'alert_graph' used by widget(s): 5") {
		t.Errorf("Expected alert_graph warning with position, got %q", joined)
	}
	if !strings.Contains(joined, "'event_stream' used by widget(s): 3, 4") {
		t.Errorf("Expected event_stream warning with positions, got %q", joined)
	}
}

func TestValidateUntypedWidgetWarns(t *testing.T) {
	d := &model.Dashboard{
		Widgets: []model.Widget{{Definition: model.Definition{}}},
	}

	result := NewValidator(d).Validate()
	if !result.Valid {
		t.Fatalf("Expected untyped widget to stay valid, got errors: %+v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "Widget 1 has no type") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected untyped widget warning, got %+v", result.Warnings)
	}
}

func TestValidateDuplicateVariables(t *testing.T) {
	d := validDashboard()
	d.TemplateVariables = []model.TemplateVariable{
		{Name: "env"},
		{Name: "cluster"},
		{Name: "env"},
	}

	result := NewValidator(d).Validate()
	if result.Valid {
		t.Fatal("Expected duplicate variables to be invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}
	if !strings.Contains(result.Errors[0].Message, "Duplicate template variable 'env' (positions 1 and 3)") {
		t.Errorf("Unexpected message: %q", result.Errors[0].Message)
	}
}

func TestValidateUnnamedVariable(t *testing.T) {
	d := validDashboard()
	d.TemplateVariables = []model.TemplateVariable{{Prefix: "env"}}

	result := NewValidator(d).Validate()
	if result.Valid {
		t.Fatal("Expected unnamed variable to be invalid")
	}
	if !strings.Contains(result.Errors[0].Message, "has no name") {
		t.Errorf("Unexpected message: %q", result.Errors[0].Message)
	}
}

func TestValidateFallbackQueriesWarn(t *testing.T) {
	d := validDashboard()
	d.Widgets = append(d.Widgets, model.Widget{
		Definition: model.Definition{Type: "timeseries", Requests: model.RequestList{
			{Query: "top(avg:system.cpu.user{*}, 10, 'mean', 'desc')"},
		}},
	})

	result := NewValidator(d).Validate()
	if !result.Valid {
		t.Fatalf("Expected fallback queries to stay valid, got errors: %+v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "1 of 2 queries cannot be translated cleanly") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected fallback query warning, got %+v", result.Warnings)
	}
}

func TestValidateGroupHints(t *testing.T) {
	d := &model.Dashboard{
		Widgets: []model.Widget{
			{Definition: model.Definition{
				Type: "group",
				Widgets: []model.Widget{
					{Definition: model.Definition{Type: "note", Content: "inner"}},
					{Definition: model.Definition{
						Type:    "group",
						Widgets: []model.Widget{{Definition: model.Definition{Type: "note"}}},
					}},
				},
			}},
		},
	}

	result := NewValidator(d).Validate()
	hints := strings.Join(result.Hints, "\n")
	if !strings.Contains(hints, "1 group(s) found") {
		t.Errorf("Expected group hint, got %q", hints)
	}
	if !strings.Contains(hints, "Nested groups are flattened") {
		t.Errorf("Expected nesting hint, got %q", hints)
	}
}

func TestFormatValid(t *testing.T) {
	result := NewValidator(validDashboard()).Validate()
	out := result.Format()

	if !strings.HasPrefix(out, "✓ Dashboard validation passed") {
		t.Errorf("Expected success marker, got %q", out)
	}
	if !strings.Contains(out, "2 widget(s) total") {
		t.Errorf("Expected widget count, got %q", out)
	}
}

func TestFormatInvalid(t *testing.T) {
	result := NewValidator(&model.Dashboard{}).Validate()
	out := result.Format()

	if !strings.HasPrefix(out, "✗ Dashboard validation failed with 1 error(s)") {
		t.Errorf("Expected failure marker, got %q", out)
	}
	if !strings.Contains(out, "ERROR: Dashboard has no widgets") {
		t.Errorf("Expected error block, got %q", out)
	}
	if !strings.Contains(out, "Fix: Add at least one widget") {
		t.Errorf("Expected fix line, got %q", out)
	}
}
