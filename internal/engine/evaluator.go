package engine

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

var truthyTokens = map[string]bool{"true": true, "y": true, "yes": true}
var falsyTokens = map[string]bool{"false": true, "n": true, "no": true}

// normalize maps a raw rule or attribute value onto one of three comparable
// kinds: bool, float64, or a trimmed lower-case string. Booleans and numbers
// pass through; recognized truthy/falsy tokens become booleans; numeric
// strings become float64.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		return t
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if truthyTokens[s] {
			return true
		}
		if falsyTokens[s] {
			return false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	default:
		return v
	}
}

// canon renders a normalized value as its canonical string form, used for
// membership tests and cross-kind equality.
func canon(v interface{}) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		// Unexpected kinds; values are scalar in practice.
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", t)))
	}
}

// EvaluateCondition evaluates one (attribute, operator, rule value) triple.
// A nil attribute is unsatisfied for every operator (fail-closed). An unknown
// operator passes (with a warning) unless strict mode is on, in which case it
// fails closed.
func EvaluateCondition(attrValue interface{}, operator string, ruleValue interface{}, strict bool) bool {
	if attrValue == nil {
		return false
	}

	attr := normalize(attrValue)
	if attr == nil {
		return false
	}

	op := strings.ToLower(strings.TrimSpace(operator))
	switch op {
	case "=", "==":
		return valuesEqual(attr, normalize(ruleValue))
	case "!=", "<>":
		return !valuesEqual(attr, normalize(ruleValue))
	case ">", "<", ">=", "<=":
		return compareOrdered(attr, normalize(ruleValue), op)
	case "in":
		return memberOf(attr, ruleValue)
	case "not_in":
		return !memberOf(attr, ruleValue)
	default:
		if strict {
			log.Printf("Warning: unknown operator %q, failing closed (strict mode)", operator)
			return false
		}
		log.Printf("Warning: unknown operator %q, passing through", operator)
		return true
	}
}

func valuesEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
	}
	// Mixed kinds fall back to canonical string comparison.
	return canon(a) == canon(b)
}

func compareOrdered(a, b interface{}, op string) bool {
	af, aNum := asNumber(a)
	bf, bNum := asNumber(b)
	if aNum && bNum {
		switch op {
		case ">":
			return af > bf
		case "<":
			return af < bf
		case ">=":
			return af >= bf
		case "<=":
			return af <= bf
		}
	}

	// Non-numeric operands compare by string ordinal.
	as, bs := canon(a), canon(b)
	switch op {
	case ">":
		return as > bs
	case "<":
		return as < bs
	case ">=":
		return as >= bs
	case "<=":
		return as <= bs
	}
	return false
}

func asNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// memberOf tests the attribute's canonical form against a rule list. The rule
// value may be an actual list or a comma-separated string.
func memberOf(attr interface{}, ruleValue interface{}) bool {
	target := canon(attr)
	for _, member := range ruleMembers(ruleValue) {
		if canon(normalize(member)) == target {
			return true
		}
	}
	return false
}

func ruleMembers(ruleValue interface{}) []interface{} {
	switch t := ruleValue.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []string:
		members := make([]interface{}, 0, len(t))
		for _, s := range t {
			members = append(members, s)
		}
		return members
	case string:
		parts := strings.Split(t, ",")
		members := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			members = append(members, strings.TrimSpace(p))
		}
		return members
	default:
		return []interface{}{t}
	}
}
