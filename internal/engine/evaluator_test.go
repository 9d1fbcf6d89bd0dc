package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCondition_Equality(t *testing.T) {
	tests := []struct {
		name string
		attr interface{}
		op   string
		rule interface{}
		want bool
	}{
		{"numbers equal", 5, "=", 5, true},
		{"numbers equal double-equals", 5, "==", 5, true},
		{"numeric string equals number", "5", "=", 5, true},
		{"numbers unequal", 5, "=", 6, false},
		{"strings equal after trim and case", "  Evaluative ", "=", "evaluative", true},
		{"truthy token equals bool", "Yes", "=", true, true},
		{"falsy token equals bool", "N", "=", false, true},
		{"not equal", 5, "!=", 6, true},
		{"not equal angle form", "a", "<>", "b", true},
		{"not equal on equal values", 5, "!=", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.attr, tt.op, tt.rule, false))
		})
	}
}

func TestEvaluateCondition_Ordering(t *testing.T) {
	tests := []struct {
		name string
		attr interface{}
		op   string
		rule interface{}
		want bool
	}{
		{"greater", 5, ">", 3, true},
		{"greater fails", 2, ">", 3, false},
		{"greater or equal boundary", 3, ">=", 3, true},
		{"less", 2, "<", 3, true},
		{"less or equal boundary", 3, "<=", 3, true},
		{"numeric string compares numerically", "10", ">", 9, true},
		{"bool compares as one", true, ">", 0, true},
		{"string ordinal", "beta", ">", "alpha", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.attr, tt.op, tt.rule, false))
		})
	}
}

func TestEvaluateCondition_Membership(t *testing.T) {
	tests := []struct {
		name string
		attr interface{}
		op   string
		rule interface{}
		want bool
	}{
		{"in list", "evaluative", "in", []interface{}{"evaluative", "argumentative"}, true},
		{"in string slice", "evaluative", "in", []string{"neutral", "evaluative"}, true},
		{"in comma-separated string", "evaluative", "in", "evaluative, argumentative", true},
		{"in misses", "narrative", "in", "evaluative,argumentative", false},
		{"not_in hits", "narrative", "not_in", "evaluative,argumentative", true},
		{"not_in misses", "evaluative", "not_in", "evaluative,argumentative", false},
		{"numeric membership", 3, "in", "1,2,3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.attr, tt.op, tt.rule, false))
		})
	}
}

func TestEvaluateCondition_InAndNotInAreComplements(t *testing.T) {
	attrs := []interface{}{"evaluative", "narrative", 3, true, "y"}
	rules := []interface{}{"evaluative,argumentative", []string{"1", "2", "3"}, "true,false"}

	for _, attr := range attrs {
		for _, rule := range rules {
			in := EvaluateCondition(attr, "in", rule, false)
			notIn := EvaluateCondition(attr, "not_in", rule, false)
			assert.Equal(t, in, !notIn, "attr=%v rule=%v", attr, rule)
		}
	}
}

func TestEvaluateCondition_NilAttributeFailsEveryOperator(t *testing.T) {
	ops := []string{"=", "==", "!=", "<>", ">", "<", ">=", "<=", "in", "not_in", "bogus"}
	for _, op := range ops {
		assert.False(t, EvaluateCondition(nil, op, "anything", false), "op=%s", op)
		assert.False(t, EvaluateCondition(nil, op, "anything", true), "op=%s strict", op)
	}
}

func TestEvaluateCondition_UnknownOperator(t *testing.T) {
	// Permissive mode passes through; strict mode fails closed.
	assert.True(t, EvaluateCondition("x", "matches", "y", false))
	assert.False(t, EvaluateCondition("x", "matches", "y", true))
}

func TestEvaluateCondition_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.True(t, EvaluateCondition(5, ">=", 3, false))
		assert.False(t, EvaluateCondition(2, ">=", 3, false))
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, true, normalize("YES"))
	assert.Equal(t, false, normalize(" no "))
	assert.Equal(t, 3.5, normalize("3.5"))
	assert.Equal(t, 7.0, normalize(7))
	assert.Equal(t, "narrative", normalize("  Narrative "))
	assert.Nil(t, normalize(nil))
}
