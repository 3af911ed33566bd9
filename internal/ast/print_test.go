package ast

import (
	"testing"

	"tacc/internal/ir"
)

func TestDump(t *testing.T) {
	program := &Program{Statements: []Statement{
		&DeclStmt{Name: "x", DeclType: ir.Int, Initializer: &BinExpr{
			Left:  &ConstExpr{Value: 1, Type: ir.Int},
			Op:    ir.Add,
			Right: &ConstExpr{Value: 2, Type: ir.Int},
		}},
		&IfStmt{
			Condition:  &BinExpr{Left: &VarExpr{Name: "x"}, Op: ir.Lt, Right: &ConstExpr{Value: 5, Type: ir.Int}},
			ThenBranch: []Statement{&PrintStmt{Value: &VarExpr{Name: "x"}}},
			ElseBranch: []Statement{&ReturnStmt{}},
		},
	}}

	want := `Decl int x
  Binary +
    Const 1
    Const 2
If
  Cond
    Binary <
      Var x
      Const 5
  Then
    Print
      Var x
  Else
    Return
`
	if got := Dump(program); got != want {
		t.Errorf("wrong dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpLoopsAndCalls(t *testing.T) {
	program := &Program{Statements: []Statement{
		&ForStmt{
			Init:      &DeclStmt{Name: "i", DeclType: ir.Int, Initializer: &ConstExpr{Value: 0, Type: ir.Int}},
			Condition: &BinExpr{Left: &VarExpr{Name: "i"}, Op: ir.Lt, Right: &ConstExpr{Value: 3, Type: ir.Int}},
			Body: []Statement{
				&AssignStmt{Name: "i", Value: &CallExpr{Func: "next", Args: []Expression{&VarExpr{Name: "i"}}}},
			},
		},
		&WhileStmt{
			Condition: &UnExpr{Op: ir.Not, Operand: &ConstExpr{Value: 0, Type: ir.Bool}},
			Body:      []Statement{&ReturnStmt{Value: &ConstExpr{Value: 1, Type: ir.Int}}},
		},
	}}

	want := `For
  Init
    Decl int i
      Const 0
  Cond
    Binary <
      Var i
      Const 3
  Body
    Assign i
      Call next
        Var i
While
  Cond
    Unary !
      Const false
  Body
    Return
      Const 1
`
	if got := Dump(program); got != want {
		t.Errorf("wrong dump:\n%s\nwant:\n%s", got, want)
	}
}
