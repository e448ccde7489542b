package parser

import (
	"strings"
	"testing"

	"orcaparse/syntax"
)

// sexpr prints an expression tree fully parenthesized.
func sexpr(n *syntax.Node) string {
	switch n.Variant() {
	case syntax.VariantBinary:
		return "(" + sexpr(n.ChildByField("left")) + " " + n.FieldText("operator") + " " + sexpr(n.ChildByField("right")) + ")"
	case syntax.VariantParen:
		return sexpr(n.ChildByField("expression"))
	case syntax.VariantArrayAccess:
		return n.FieldText("name") + "[" + sexpr(n.ChildByField("index")) + "]"
	case syntax.VariantVariable:
		return n.FieldText("name")
	}
	return n.Content()
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2 - 3 - 4", "((2 - 3) - 4)"},
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"(a - b) - c", "((a - b) - c)"},
		{"a - (b - c)", "(a - (b - c))"},
		{"x[i + 1] * 2", "(x[(i + 1)] * 2)"},
		{"energies[jobStep]", "energies[jobStep]"},
		{"-1.5 * y", "(-1.5 * y)"},
		{"a -1", "(a - 1)"},
		{"1 +\n  2", "(1 + 2)"},
		{`"text"`, `"text"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := ParseExpression(tt.src)
			if err != nil {
				t.Fatalf("ParseExpression failed: %v", err)
			}
			if got := sexpr(expr); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseExpressionLiteralKinds(t *testing.T) {
	tests := []struct {
		src     string
		variant string
	}{
		{"42", syntax.VariantIntegerValue},
		{"4.2", syntax.VariantFloat},
		{"1.0e-3", syntax.VariantFloat},
		{`"a"`, syntax.VariantQuoted},
	}
	for _, tt := range tests {
		expr, err := ParseExpression(tt.src)
		if err != nil {
			t.Fatalf("ParseExpression(%q) failed: %v", tt.src, err)
		}
		if expr.Variant() != syntax.VariantLiteral {
			t.Fatalf("expected literal, got %s", expr.Variant())
		}
		if v := expr.ChildByField("value"); v.Variant() != tt.variant {
			t.Errorf("%s: expected %s, got %s", tt.src, tt.variant, v.Variant())
		}
	}
}

func TestParseExpressionErrors(t *testing.T) {
	for _, src := range []string{"", "1 +", "(1 + 2", "a[1", "1 2", "then"} {
		if _, err := ParseExpression(src); err == nil {
			t.Errorf("expected an error for %q", src)
		}
	}
}

func TestExpressionSpans(t *testing.T) {
	src := "alpha + beta"
	expr, err := ParseExpression(src)
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	span := expr.Span()
	if span.Start.Offset != 0 || span.End.Offset != len(src) {
		t.Errorf("expected span [0,%d), got [%d,%d)", len(src), span.Start.Offset, span.End.Offset)
	}
	right := expr.ChildByField("right")
	if got := src[right.Span().Start.Offset:right.Span().End.Offset]; got != "beta" {
		t.Errorf("expected right operand text beta, got %q", got)
	}
	if !strings.HasPrefix(src[expr.ChildByField("operator").Span().Start.Offset:], "+") {
		t.Error("expected operator span to point at '+'")
	}
}
