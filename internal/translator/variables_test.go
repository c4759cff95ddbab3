package translator

import (
	"testing"

	"github.com/graang/graang/internal/model"
)

func TestTransformVariablesRoundTrip(t *testing.T) {
	vars := []model.TemplateVariable{
		{Name: "k8s_cluster", Prefix: "kube_cluster", Default: "*"},
	}

	templating := transformVariables(vars, "prometheus")
	if len(templating.List) != 1 {
		t.Fatalf("Expected 1 variable, got %d", len(templating.List))
	}

	v := templating.List[0]
	if v.Name != "k8s_cluster" {
		t.Errorf("Expected name preserved verbatim, got %q", v.Name)
	}
	if v.Type != "custom" {
		t.Errorf("Expected custom type, got %q", v.Type)
	}
	if v.Query != "kube_cluster" {
		t.Errorf("Expected prefix as query, got %q", v.Query)
	}
	if v.Current.Value != "*" || v.Current.Text != "*" {
		t.Errorf("Expected default as current value and text, got %+v", v.Current)
	}
	if v.SkipURLSync {
		t.Errorf("Expected skipUrlSync false")
	}
	if v.Hide != 0 {
		t.Errorf("Expected hide 0, got %d", v.Hide)
	}
}

func TestTransformVariablesPreservesOrder(t *testing.T) {
	vars := []model.TemplateVariable{
		{Name: "cluster", Prefix: "kube_cluster"},
		{Name: "namespace", Prefix: "kube_namespace"},
		{Name: "pod", Prefix: "pod_name"},
	}

	templating := transformVariables(vars, "prometheus")
	if len(templating.List) != 3 {
		t.Fatalf("Expected 3 variables, got %d", len(templating.List))
	}
	for i, name := range []string{"cluster", "namespace", "pod"} {
		if templating.List[i].Name != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, templating.List[i].Name)
		}
	}
}

func TestTransformVariablesBuildsOptions(t *testing.T) {
	vars := []model.TemplateVariable{
		{Name: "env", Prefix: "environment", Default: "prod", Values: []string{"prod", "staging"}},
	}

	templating := transformVariables(vars, "prometheus")
	opts := templating.List[0].Options
	if len(opts) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(opts))
	}
	if opts[0].Text != "prod" || opts[0].Value != "prod" {
		t.Errorf("Expected first option prod, got %+v", opts[0])
	}
	if opts[1].Text != "staging" || opts[1].Value != "staging" {
		t.Errorf("Expected second option staging, got %+v", opts[1])
	}
}

func TestTransformVariablesUsesDatasourceOption(t *testing.T) {
	vars := []model.TemplateVariable{{Name: "host", Prefix: "host"}}

	templating := transformVariables(vars, "thanos")
	ds := templating.List[0].Datasource
	if ds == nil || ds.Type != "thanos" || ds.UID != "thanos" {
		t.Errorf("Expected thanos datasource ref, got %+v", ds)
	}
}

func TestTransformVariablesEmptyListStaysEmpty(t *testing.T) {
	templating := transformVariables(nil, "prometheus")
	if templating.List == nil {
		t.Fatalf("Expected an empty list, got nil")
	}
	if len(templating.List) != 0 {
		t.Errorf("Expected no variables, got %d", len(templating.List))
	}
}
