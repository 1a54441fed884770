// Package validate checks generated dashboards and rules against the set of
// metrics the service exports.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/group-post-monitor/tools/dashgen/rules"
)

// Result collects validation problems. Errors make an artifact unusable;
// warnings flag cosmetic gaps.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard parses every Prometheus target in dash and checks that each
// referenced metric is known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			checkPanel(&res, p.Panel, known)
		}
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				checkPanel(&res, &p.RowPanel.Panels[i], known)
			}
		}
	}
	return res
}

// Rules parses every expression in cr and checks that each referenced
// metric is known or recorded by another rule in cr.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	recorded := make(map[string]bool)
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			if r.Record != "" {
				recorded[r.Record] = true
			}
		}
	}

	lookup := func(name string) bool { return known[name] || recorded[name] }

	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			checkExpr(&res, fmt.Sprintf("rule %q", name), r.Expr, lookup)
		}
	}
	return res
}

func checkPanel(res *Result, p *dashboard.Panel, known map[string]bool) {
	title := "<untitled>"
	if p.Title != nil && *p.Title != "" {
		title = *p.Title
	} else {
		res.warnf("panel without a title")
	}
	if p.Description == nil || *p.Description == "" {
		res.warnf("panel %q has no description", title)
	}
	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", title)
	}

	lookup := func(name string) bool { return known[name] }
	for _, t := range p.Targets {
		q, ok := t.(*prometheus.Dataquery)
		if !ok {
			res.warnf("panel %q has a non-Prometheus target", title)
			continue
		}
		checkExpr(res, fmt.Sprintf("panel %q", title), q.Expr, lookup)
	}
}

func checkExpr(res *Result, where, expr string, known func(string) bool) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}

	for _, name := range metricNames(parsed) {
		if !known(baseName(name, known)) {
			res.errorf("%s: unknown metric %q", where, name)
		}
	}
}

func metricNames(expr parser.Expr) []string {
	var names []string
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names
}

// baseName strips histogram series suffixes when the remaining name is known.
func baseName(name string, known func(string) bool) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known(base) {
			return base
		}
	}
	return name
}
