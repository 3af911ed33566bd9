package checker

import (
	"strings"
	"testing"

	"tacc/internal/ast"
	"tacc/internal/lexer"
	"tacc/internal/parser"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	return program
}

func containsMsg(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func TestWellTypedProgram(t *testing.T) {
	input := `
int a = 2;
int b = 3;
int c = a + b;
if (c > 4) {
	print(c);
} else {
	print(0);
}
while (a < b) {
	a = a + 1;
}
`
	c := New()
	if !c.Check(parse(t, input)) {
		t.Fatalf("expected acceptance, errors: %v", c.Errors())
	}
	if len(c.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", c.Warnings())
	}
}

func TestRedeclaration(t *testing.T) {
	c := New()
	if c.Check(parse(t, "int a = 1; bool a = true;")) {
		t.Fatal("expected rejection")
	}
	if !containsMsg(c.Errors(), "Variable 'a' already defined") {
		t.Errorf("wrong errors: %v", c.Errors())
	}
}

func TestAssignToUndeclared(t *testing.T) {
	c := New()
	if c.Check(parse(t, "x = 5;")) {
		t.Fatal("expected rejection")
	}
	if !containsMsg(c.Errors(), "Variable 'x' is not defined") {
		t.Errorf("wrong errors: %v", c.Errors())
	}
}

func TestUndefinedVariableRead(t *testing.T) {
	// y is read once, so exactly one error is reported and checking
	// continues past it
	c := New()
	if c.Check(parse(t, "int x = y + 1; print(x);")) {
		t.Fatal("expected rejection")
	}
	count := 0
	for _, msg := range c.Errors() {
		if msg == "Undefined variable 'y'" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 undefined-variable error, got %d: %v", count, c.Errors())
	}
}

func TestSelfReferentialInitializer(t *testing.T) {
	// the name enters scope only after its initializer is checked
	c := New()
	if c.Check(parse(t, "int a = a;")) {
		t.Fatal("expected rejection")
	}
	if !containsMsg(c.Errors(), "Undefined variable 'a'") {
		t.Errorf("wrong errors: %v", c.Errors())
	}
}

func TestErrorAccumulation(t *testing.T) {
	c := New()
	c.Check(parse(t, "x = 1; y = 2; int z = w;"))

	if len(c.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(c.Errors()), c.Errors())
	}
}

func TestInitializerTypeMismatchWarning(t *testing.T) {
	c := New()
	if !c.Check(parse(t, "int a = true;")) {
		t.Fatalf("warnings must not reject, errors: %v", c.Errors())
	}
	want := "Type mismatch in initialization of 'a': expected int, got bool"
	if !containsMsg(c.Warnings(), want) {
		t.Errorf("wrong warnings: %v", c.Warnings())
	}
}

func TestAssignmentTypeMismatchWarning(t *testing.T) {
	c := New()
	c.Check(parse(t, "bool b = true; b = 3;"))
	want := "Type mismatch in assignment to 'b': expected bool, got int"
	if !containsMsg(c.Warnings(), want) {
		t.Errorf("wrong warnings: %v", c.Warnings())
	}
}

func TestConditionWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"if", "int a = 1; if (a) { print(a); }", "If condition should be boolean, got int"},
		{"while", "int a = 1; while (a) { print(a); }", "While condition should be boolean, got int"},
		{"for", "for (int i = 0; i; i) { print(i); }", "For condition should be boolean, got int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			if !c.Check(parse(t, tt.input)) {
				t.Fatalf("warnings must not reject, errors: %v", c.Errors())
			}
			if !containsMsg(c.Warnings(), tt.want) {
				t.Errorf("wrong warnings: %v", c.Warnings())
			}
		})
	}
}

func TestOperatorTypeWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"logical operand", "int a = 1; bool b = a && true;", "Logical operator expects boolean, got int"},
		{"mixed arithmetic", "int a = 1 + true;", "Type mismatch in binary operation"},
		{"unary minus", "int a = -true;", "Unary minus expects int, got bool"},
		{"logical not", "bool b = !3;", "Logical not expects bool, got int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Check(parse(t, tt.input))
			if !containsMsg(c.Warnings(), tt.want) {
				t.Errorf("wrong warnings: %v", c.Warnings())
			}
		})
	}
}

func TestUninitializedWarning(t *testing.T) {
	c := New()
	if !c.Check(parse(t, "int a; print(a);")) {
		t.Fatalf("expected acceptance, errors: %v", c.Errors())
	}
	if !containsMsg(c.Warnings(), "Variable 'a' may be uninitialized") {
		t.Errorf("wrong warnings: %v", c.Warnings())
	}
}

func TestAssignmentInitializes(t *testing.T) {
	c := New()
	c.Check(parse(t, "int a; a = 1; print(a);"))
	for _, w := range c.Warnings() {
		if strings.Contains(w, "uninitialized") {
			t.Errorf("assignment should mark the variable initialized: %v", c.Warnings())
		}
	}
}

func TestComparisonYieldsBool(t *testing.T) {
	program := parse(t, "int a = 1; bool b = a < 2;")
	c := New()
	if !c.Check(program) {
		t.Fatalf("expected acceptance, errors: %v", c.Errors())
	}
	if len(c.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", c.Warnings())
	}
}

func TestCallIsOpaqueInt(t *testing.T) {
	c := New()
	if !c.Check(parse(t, "int a = 1; int b = foo(a);")) {
		t.Fatalf("expected acceptance, errors: %v", c.Errors())
	}
	if len(c.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", c.Warnings())
	}
}
