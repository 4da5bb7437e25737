package definition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pthm/hxform/lib/rules"
	"github.com/pthm/hxform/lib/trigger"
)

// Issue is a problem found in a definition.
type Issue struct {
	Severity string `json:"severity"` // "error" or "warning"
	Field    string `json:"field,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Message  string `json:"message"`
}

// LintResult holds every issue found. Valid is false when any issue is an
// error.
type LintResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// targetRules name another field in their criteria.
var targetRules = map[string]bool{
	"eqTarget":  true,
	"neqTarget": true,
	"gtTarget":  true,
	"gteTarget": true,
	"ltTarget":  true,
	"lteTarget": true,
}

// Lint checks def without building a form. A nil engine checks against the
// builtin rules.
func Lint(def *Definition, engine *rules.Engine) *LintResult {
	if engine == nil {
		engine = rules.Default()
	}
	result := &LintResult{Valid: true, Issues: make([]Issue, 0)}
	add := func(issue Issue) {
		if issue.Severity == "error" {
			result.Valid = false
		}
		result.Issues = append(result.Issues, issue)
	}

	declared := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		switch {
		case f.Name == "":
			add(Issue{Severity: "error", Message: "field has no name"})
		case declared[f.Name]:
			add(Issue{Severity: "error", Field: f.Name, Message: "field is declared more than once"})
		}
		declared[f.Name] = true
	}

	m := make(trigger.Map, len(def.Fields))
	for _, f := range def.Fields {
		for _, r := range f.Rules {
			if !engine.Has(r.Name) {
				add(Issue{Severity: "error", Field: f.Name, Rule: r.Name, Message: fmt.Sprintf("unknown rule %q", r.Name)})
				continue
			}
			if target, ok := r.Criteria.(string); ok && targetRules[r.Name] && !declared[target] {
				add(Issue{Severity: "warning", Field: f.Name, Rule: r.Name, Message: fmt.Sprintf("compares against undeclared field %q", target)})
			}
		}
		for name := range f.Messages {
			if name != "required" && !f.hasRule(name) {
				add(Issue{Severity: "warning", Field: f.Name, Rule: name, Message: "message overrides a rule the field does not declare"})
			}
		}
		for _, t := range f.Triggers {
			switch {
			case t == f.Name:
				add(Issue{Severity: "warning", Field: f.Name, Message: "field triggers itself"})
			case !declared[t]:
				add(Issue{Severity: "warning", Field: f.Name, Message: fmt.Sprintf("triggers undeclared field %q", t)})
			}
		}
		m[f.Name] = append(m[f.Name], f.Triggers...)
	}

	for _, cycle := range trigger.Cycles(m, def.Names()) {
		if len(cycle) < 2 {
			continue
		}
		add(Issue{
			Severity: "warning",
			Field:    cycle[0],
			Message:  fmt.Sprintf("trigger cycle %s -> %s; each field validates once per change", strings.Join(cycle, " -> "), cycle[0]),
		})
	}

	for _, name := range sortedKeys(def.Values) {
		if !declared[name] {
			add(Issue{Severity: "error", Field: name, Message: "value given for undeclared field"})
		}
	}
	for _, name := range sortedKeys(def.Initial) {
		if !declared[name] {
			add(Issue{Severity: "warning", Field: name, Message: "initial value for undeclared field"})
		}
	}

	return result
}

func (f Field) hasRule(name string) bool {
	for _, r := range f.Rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
