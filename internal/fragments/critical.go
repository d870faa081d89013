package fragments

import (
	"fmt"
	"sort"
	"strings"
)

// criticalRules are baseline rules a project must not switch off.
var criticalRules = []string{
	"kitium/lint-config-extends-kitium",
	"kitium/shared-config-dependency",
	"security/detect-object-injection",
	"security/detect-possible-timing-attacks",
	"no-unsanitized/method",
	"no-unsanitized/property",
	"node/no-path-concat",
	"node/no-new-require",
}

// CriticalRules returns the guarded rule identifiers.
func CriticalRules() []string {
	return append([]string(nil), criticalRules...)
}

// Violation describes a critical rule disabled by a rule map.
type Violation struct {
	Rule   string
	Value  any
	Source string
}

func (v Violation) String() string {
	if v.Source == "" {
		return fmt.Sprintf("critical rule %q is disabled", v.Rule)
	}
	return fmt.Sprintf("critical rule %q is disabled in %s", v.Rule, v.Source)
}

// CheckCriticalRules reports every critical rule that rules turns off.
// Violations are sorted by rule identifier.
func CheckCriticalRules(rules map[string]any, source string) []Violation {
	var violations []Violation
	for _, rule := range criticalRules {
		value, ok := rules[rule]
		if !ok || !isDisabled(value) {
			continue
		}
		violations = append(violations, Violation{Rule: rule, Value: value, Source: source})
	}
	sort.Slice(violations, func(i, j int) bool { return violations[i].Rule < violations[j].Rule })
	return violations
}

// isDisabled reports whether a rule value turns the rule off.
func isDisabled(value any) bool {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		return s == "off" || s == "0"
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case []any:
		return len(v) > 0 && isDisabled(v[0])
	case []string:
		return len(v) > 0 && isDisabled(v[0])
	}
	return false
}
