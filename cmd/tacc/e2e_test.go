package main

import (
	"reflect"
	"strings"
	"testing"

	"tacc/internal/checker"
	"tacc/internal/interp"
	"tacc/internal/ir"
	"tacc/internal/irgen"
	"tacc/internal/lexer"
	"tacc/internal/optimizer"
	"tacc/internal/parser"
)

// compile runs the front end and code generation with optimization,
// failing the test on any parse or semantic error.
func compile(t *testing.T, src string) *ir.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	c := checker.New()
	if !c.Check(program) {
		t.Fatalf("checker errors: %v", c.Errors())
	}
	return optimizer.Optimize(irgen.New().Generate(program))
}

func run(t *testing.T, prog *ir.Program) []string {
	t.Helper()
	machine := interp.New()
	if !machine.Execute(prog) {
		t.Fatalf("runtime error: %v", machine.Err())
	}
	return machine.Output()
}

func countAdds(prog *ir.Program) int {
	n := 0
	for _, instr := range prog.Instrs {
		if bin, ok := instr.(*ir.BinInstr); ok && bin.Op == ir.Add {
			n++
		}
	}
	return n
}

func TestSumOfVariables(t *testing.T) {
	prog := compile(t, "int a = 2; int b = 3; print(a + b);")

	// the operands are variables, so folding leaves the add in place
	if countAdds(prog) != 1 {
		t.Errorf("expected one add instruction:\n%s", prog)
	}
	if got := run(t, prog); !reflect.DeepEqual(got, []string{"5"}) {
		t.Errorf("expected [5], got %v", got)
	}
}

func TestSumOfLiteralsFolds(t *testing.T) {
	prog := compile(t, "print(2 + 3);")

	if countAdds(prog) != 0 {
		t.Errorf("expected the add to fold:\n%s", prog)
	}
	if got := run(t, prog); !reflect.DeepEqual(got, []string{"5"}) {
		t.Errorf("expected [5], got %v", got)
	}
}

func TestWhileLoopCounts(t *testing.T) {
	prog := compile(t, "int x = 0; while (x < 3) { print(x); x = x + 1; }")

	if got := run(t, prog); !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Errorf("expected [0 1 2], got %v", got)
	}
}

func TestConstantZeroDivisorFoldsAway(t *testing.T) {
	// a literal zero divisor is folded to 0 at compile time, never faulting
	prog := compile(t, "int z = 5 / 0; print(1);")

	for _, instr := range prog.Instrs {
		if _, ok := instr.(*ir.BinInstr); ok {
			t.Fatalf("expected the division to fold:\n%s", prog)
		}
	}
	if got := run(t, prog); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("expected [1], got %v", got)
	}
}

func TestRuntimeZeroDivisorFaults(t *testing.T) {
	prog := compile(t, "int d = 0; int z = 5 / d; print(z);")

	machine := interp.New()
	if machine.Execute(prog) {
		t.Fatal("expected a runtime failure")
	}
	if machine.Err() != ir.ErrDivisionByZero {
		t.Errorf("wrong error: %v", machine.Err())
	}
}

func TestUndeclaredVariableRejected(t *testing.T) {
	p := parser.New(lexer.New("print(y);"))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	c := checker.New()
	if c.Check(program) {
		t.Fatal("expected rejection")
	}
	if len(c.Errors()) != 1 || c.Errors()[0] != "Undefined variable 'y'" {
		t.Errorf("expected exactly one undefined-variable error, got %v", c.Errors())
	}
}

func TestFullProgram(t *testing.T) {
	src := `
// sum the even numbers below 10, then classify the total
int total = 0;
for (int i = 0; i < 10;) {
	if (i % 2 == 0) {
		total = total + i;
	}
	i = i + 1;
}
print(total);

bool big = total > 15;
if (big) {
	print(1);
} else {
	print(0);
}

int k = 3;
while (k > 0) {
	print(k);
	k = k - 1;
}
return total;
`
	prog := compile(t, src)

	want := []string{"20", "1", "3", "2", "1"}
	if got := run(t, prog); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestUnoptimizedAndOptimizedAgree(t *testing.T) {
	src := "int a = 2 * 3; int unused = 99; print(a + 4); print(!false);"

	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	c := checker.New()
	if !c.Check(program) {
		t.Fatalf("checker errors: %v", c.Errors())
	}

	raw := irgen.New().Generate(program)
	opt := optimizer.Optimize(raw)

	if got := run(t, raw); !reflect.DeepEqual(got, run(t, opt)) {
		t.Errorf("optimization changed behavior: %v vs %v", got, run(t, opt))
	}
	if len(opt.Instrs) >= len(raw.Instrs) {
		t.Errorf("expected the optimizer to shrink the program (%d vs %d)", len(opt.Instrs), len(raw.Instrs))
	}
}

func TestListingFormat(t *testing.T) {
	prog := compile(t, "int a = 2; int b = 3; print(a + b);")

	listing := prog.String()
	if !strings.Contains(listing, "  0:  a = 2\n") {
		t.Errorf("wrong listing format:\n%s", listing)
	}

	table := prog.VarTable()
	if !strings.Contains(table, "  a : int\n") || !strings.Contains(table, "  b : int\n") {
		t.Errorf("wrong variable table:\n%s", table)
	}
}
