package translator

import "strings"

// FallbackReason is attached to report notes for queries that were passed
// through without a confident rewrite.
const FallbackReason = "unconverted - manual review required"

// funcEquivalents maps Datadog arithmetic and rate functions to their
// PromQL counterparts. Functions outside this table pass through unchanged.
var funcEquivalents = map[string]string{
	"abs":        "abs",
	"log2":       "log2",
	"log10":      "log10",
	"exp":        "exp",
	"sqrt":       "sqrt",
	"derivative": "deriv",
	"per_second": "rate",
}

// TranslateQuery rewrites a Datadog metric query into PromQL form. The
// source language expresses aggregation as agg:metric{filters} by {tags},
// the target as agg(metric{filters}) by (tags). Tag filters are carried
// verbatim. The second return value reports whether the rewrite was
// confident; a query without a recognizable aggregator prefix is returned
// unchanged with false, never an error.
func TranslateQuery(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return q, false
	}

	// An outer function call wraps the whole expression, e.g.
	// per_second(sum:aws.elb.request_count{*}).
	if name, inner, ok := splitOuterCall(q); ok {
		mapped, known := funcEquivalents[name]
		if !known {
			return q, false
		}
		innerExpr, exact := TranslateQuery(inner)
		return mapped + "(" + innerExpr + ")", exact
	}

	colon := strings.Index(q, ":")
	if colon <= 0 || !isAggregator(q[:colon]) {
		return q, false
	}

	agg := q[:colon]
	rest := q[colon+1:]

	if metric, group, ok := splitByClause(rest); ok {
		return agg + "(" + metric + ") by (" + group + ")", true
	}
	return agg + "(" + rest + ")", true
}

// splitOuterCall reports whether the query is a single function call
// spanning the whole string, returning the function name and its argument.
func splitOuterCall(q string) (name, inner string, ok bool) {
	open := strings.Index(q, "(")
	if open <= 0 || !strings.HasSuffix(q, ")") {
		return "", "", false
	}
	name = q[:open]
	if !isAggregator(name) {
		return "", "", false
	}
	// The colon of an aggregator prefix appears before any call paren.
	if colon := strings.Index(q, ":"); colon >= 0 && colon < open {
		return "", "", false
	}
	return name, q[open+1 : len(q)-1], true
}

// splitByClause extracts a trailing by {...} grouping clause.
func splitByClause(rest string) (metric, group string, ok bool) {
	idx := strings.LastIndex(rest, " by {")
	if idx < 0 || !strings.HasSuffix(rest, "}") {
		return "", "", false
	}
	group = rest[idx+len(" by {") : len(rest)-1]
	return rest[:idx], group, true
}

// isAggregator reports whether s looks like an aggregator or function
// name: letters, digits, underscores, nothing else.
func isAggregator(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
