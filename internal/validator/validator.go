package validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/graang/graang/internal/model"
	"github.com/graang/graang/internal/translator"
)

// ValidationResult represents the result of dashboard validation
type ValidationResult struct {
	Valid     bool
	Errors    []ValidationError
	Warnings  []ValidationWarning
	Hints     []string
	dashboard *model.Dashboard
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
	Index   int // Optional: 1-based widget position
	Fix     string
}

// ValidationWarning represents a validation warning
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// Validator validates Datadog dashboard documents before conversion
type Validator struct {
	dashboard *model.Dashboard
}

// NewValidator creates a new validator. The dashboard is normalized on a
// copy, the caller's document is left untouched.
func NewValidator(dashboard *model.Dashboard) *Validator {
	d := *dashboard
	d.Normalize()
	return &Validator{
		dashboard: &d,
	}
}

// Validate performs all validation checks
func (v *Validator) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:     true,
		Errors:    []ValidationError{},
		Warnings:  []ValidationWarning{},
		Hints:     []string{},
		dashboard: v.dashboard,
	}

	// Run all validation checks
	v.validateWidgets(result)
	v.validateTitle(result)
	v.validateWidgetTypes(result)
	v.validateVariables(result)
	v.validateQueries(result)
	v.validateGroups(result)

	// Set overall validity
	result.Valid = len(result.Errors) == 0

	return result
}

// validateWidgets checks that the dashboard resolves to at least one widget
func (v *Validator) validateWidgets(result *ValidationResult) {
	if len(v.dashboard.Widgets) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "widgets",
			Message: "Dashboard has no widgets",
			Fix:     "Add at least one widget or legacy graph entry",
		})
		return
	}

	if len(v.dashboard.FlattenedWidgets()) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "widgets",
			Message: "Dashboard contains only empty groups",
			Fix:     "Add widgets to the groups or remove them",
		})
	}
}

// validateTitle checks the dashboard title
func (v *Validator) validateTitle(result *ValidationResult) {
	if v.dashboard.Title == "" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "title",
			Message: "Dashboard has no title",
			Hint:    "The converted dashboard will be titled \"Untitled Dashboard\"",
		})
	}
}

// validateWidgetTypes checks for widget types that degrade to placeholders
func (v *Validator) validateWidgetTypes(result *ValidationResult) {
	unsupported := make(map[string][]int) // type -> widget positions

	for i, w := range v.dashboard.FlattenedWidgets() {
		t := w.Definition.Type
		if t == "" {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   "definition.type",
				Message: fmt.Sprintf("Widget %d has no type", i+1),
				Hint:    "It will become a text placeholder panel",
			})
			continue
		}
		if !translator.SupportedWidgetType(t) {
			unsupported[t] = append(unsupported[t], i+1)
		}
	}

	types := make([]string, 0, len(unsupported))
	for t := range unsupported {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "definition.type",
			Message: fmt.Sprintf("Unsupported widget type '%s' used by widget(s): %s", t, joinPositions(unsupported[t])),
			Hint:    "These will become text placeholder panels",
		})
	}
}

// validateVariables checks template variable names
func (v *Validator) validateVariables(result *ValidationResult) {
	seen := make(map[string]int) // name -> first position

	for i, tv := range v.dashboard.TemplateVariables {
		if tv.Name == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "template_variables",
				Message: fmt.Sprintf("Template variable %d has no name", i+1),
				Index:   i + 1,
				Fix:     "Name the variable or remove it",
			})
			continue
		}

		if first, exists := seen[tv.Name]; exists {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "template_variables",
				Message: fmt.Sprintf("Duplicate template variable '%s' (positions %d and %d)", tv.Name, first, i+1),
				Index:   i + 1,
				Fix:     "Use unique variable names",
			})
			continue
		}
		seen[tv.Name] = i + 1
	}

	if len(v.dashboard.TemplateVariables) > 0 {
		result.Hints = append(result.Hints, "Template variables convert to custom Grafana variables with their default value preselected")
	}
}

// validateQueries counts queries that cannot be rewritten cleanly
func (v *Validator) validateQueries(result *ValidationResult) {
	total := 0
	fallbacks := 0

	for _, w := range v.dashboard.FlattenedWidgets() {
		for _, req := range w.Definition.Requests {
			expr := req.Expression()
			if expr == "" {
				continue
			}
			total++
			if _, exact := translator.TranslateQuery(expr); !exact {
				fallbacks++
			}
		}
	}

	if fallbacks > 0 {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "requests",
			Message: fmt.Sprintf("%d of %d queries cannot be translated cleanly", fallbacks, total),
			Hint:    "These queries pass through unchanged and need manual review in Grafana",
		})
	}
}

// validateGroups reports how group widgets will be handled
func (v *Validator) validateGroups(result *ValidationResult) {
	groups := 0
	nested := false

	for _, w := range v.dashboard.Widgets {
		if w.Definition.Type != model.WidgetGroup {
			continue
		}
		groups++
		for _, inner := range w.Definition.Widgets {
			if inner.Definition.Type == model.WidgetGroup {
				nested = true
			}
		}
	}

	if groups > 0 {
		result.Hints = append(result.Hints, fmt.Sprintf("%d group(s) found: group members are appended after top-level widgets", groups))
	}
	if nested {
		result.Hints = append(result.Hints, "Nested groups are flattened into a single panel list")
	}
}

// Format returns a human-readable string representation of the validation result
func (r *ValidationResult) Format() string {
	var sb strings.Builder

	if r.Valid {
		sb.WriteString("✓ Dashboard validation passed\n")
		sb.WriteString(fmt.Sprintf("  %d widget(s) total", r.countWidgets()))

		if len(r.Warnings) > 0 || len(r.Hints) > 0 {
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(fmt.Sprintf("✗ Dashboard validation failed with %d error(s)\n", len(r.Errors)))
	}

	// Print errors
	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("\nERROR: %s\n", err.Message))
		if err.Field != "" {
			sb.WriteString(fmt.Sprintf("  Field: %s\n", err.Field))
		}
		if err.Fix != "" {
			sb.WriteString(fmt.Sprintf("  Fix: %s\n", err.Fix))
		}
	}

	// Print warnings
	for _, warn := range r.Warnings {
		sb.WriteString(fmt.Sprintf("\nWARNING: %s\n", warn.Message))
		if warn.Field != "" {
			sb.WriteString(fmt.Sprintf("  Field: %s\n", warn.Field))
		}
		if warn.Hint != "" {
			sb.WriteString(fmt.Sprintf("  Hint: %s\n", warn.Hint))
		}
	}

	// Print hints
	if len(r.Hints) > 0 {
		sb.WriteString("\n")
		for _, hint := range r.Hints {
			sb.WriteString(fmt.Sprintf("💡 %s\n", hint))
		}
	}

	return sb.String()
}

// countWidgets counts flattened widgets in the validated dashboard
func (r *ValidationResult) countWidgets() int {
	if r.dashboard == nil {
		return 0
	}
	return len(r.dashboard.FlattenedWidgets())
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
