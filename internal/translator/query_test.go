package translator

import "testing"

func TestTranslateQueryFullForm(t *testing.T) {
	query := "sum:kubernetes.cpu.usage.total{kube_cluster:$k8s_cluster} by {kube_cluster}"
	want := "sum(kubernetes.cpu.usage.total{kube_cluster:$k8s_cluster}) by (kube_cluster)"

	got, exact := TranslateQuery(query)
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !exact {
		t.Errorf("Expected a confident rewrite")
	}
}

func TestTranslateQueryWithoutByClause(t *testing.T) {
	got, exact := TranslateQuery("avg:system.cpu.user{host:web-01}")
	want := "avg(system.cpu.user{host:web-01})"

	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !exact {
		t.Errorf("Expected a confident rewrite")
	}
}

func TestTranslateQueryWithoutFilters(t *testing.T) {
	got, exact := TranslateQuery("max:system.load.1")
	if got != "max(system.load.1)" {
		t.Errorf("Expected wrapped aggregator, got %q", got)
	}
	if !exact {
		t.Errorf("Expected a confident rewrite")
	}
}

func TestTranslateQueryEmptyByClause(t *testing.T) {
	got, _ := TranslateQuery("sum:requests.count{*} by {}")
	if got != "sum(requests.count{*}) by ()" {
		t.Errorf("Expected empty grouping parens, got %q", got)
	}
}

func TestTranslateQueryNoAggregatorPassesThrough(t *testing.T) {
	query := "just a plain string"
	got, exact := TranslateQuery(query)
	if got != query {
		t.Errorf("Expected pass-through, got %q", got)
	}
	if exact {
		t.Errorf("Expected fallback to be flagged")
	}
}

func TestTranslateQueryKnownFunction(t *testing.T) {
	got, exact := TranslateQuery("per_second(sum:aws.elb.request_count{*})")
	want := "rate(sum(aws.elb.request_count{*}))"

	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !exact {
		t.Errorf("Expected a confident rewrite")
	}
}

func TestTranslateQueryDerivative(t *testing.T) {
	got, _ := TranslateQuery("derivative(avg:system.disk.used{*})")
	if got != "deriv(avg(system.disk.used{*}))" {
		t.Errorf("Expected deriv mapping, got %q", got)
	}
}

func TestTranslateQueryUnknownFunctionPassesThrough(t *testing.T) {
	query := "ewma_10(avg:system.cpu.user{*})"
	got, exact := TranslateQuery(query)
	if got != query {
		t.Errorf("Expected unknown function to pass through, got %q", got)
	}
	if exact {
		t.Errorf("Expected fallback to be flagged")
	}
}

func TestTranslateQueryFiltersCarriedVerbatim(t *testing.T) {
	got, _ := TranslateQuery("avg:redis.mem.used{env:prod,service:cache} by {shard}")
	want := "avg(redis.mem.used{env:prod,service:cache}) by (shard)"
	if got != want {
		t.Errorf("Expected filters untouched, got %q", got)
	}
}

func TestTranslateQueryEmptyString(t *testing.T) {
	got, exact := TranslateQuery("")
	if got != "" || exact {
		t.Errorf("Expected empty pass-through, got %q exact=%v", got, exact)
	}
}

func TestTranslateQueryLeadingColonPassesThrough(t *testing.T) {
	query := ":system.cpu.user{*}"
	got, exact := TranslateQuery(query)
	if got != query || exact {
		t.Errorf("Expected pass-through for missing aggregator, got %q exact=%v", got, exact)
	}
}
