package ast

import (
	"fmt"
	"strings"

	"tacc/internal/ir"
)

// Dump renders the tree for inspection, one node per line with two-space
// indentation per level.
func Dump(p *Program) string {
	var sb strings.Builder
	for _, stmt := range p.Statements {
		dumpStatement(&sb, stmt, 0)
	}
	return sb.String()
}

func line(sb *strings.Builder, depth int, format string, args ...any) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, format, args...)
	sb.WriteByte('\n')
}

func dumpStatement(sb *strings.Builder, stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *DeclStmt:
		line(sb, depth, "Decl %s %s", s.DeclType, s.Name)
		if s.Initializer != nil {
			dumpExpression(sb, s.Initializer, depth+1)
		}
	case *AssignStmt:
		line(sb, depth, "Assign %s", s.Name)
		dumpExpression(sb, s.Value, depth+1)
	case *IfStmt:
		line(sb, depth, "If")
		line(sb, depth+1, "Cond")
		dumpExpression(sb, s.Condition, depth+2)
		line(sb, depth+1, "Then")
		for _, st := range s.ThenBranch {
			dumpStatement(sb, st, depth+2)
		}
		if s.ElseBranch != nil {
			line(sb, depth+1, "Else")
			for _, st := range s.ElseBranch {
				dumpStatement(sb, st, depth+2)
			}
		}
	case *WhileStmt:
		line(sb, depth, "While")
		line(sb, depth+1, "Cond")
		dumpExpression(sb, s.Condition, depth+2)
		line(sb, depth+1, "Body")
		for _, st := range s.Body {
			dumpStatement(sb, st, depth+2)
		}
	case *ForStmt:
		line(sb, depth, "For")
		if s.Init != nil {
			line(sb, depth+1, "Init")
			dumpStatement(sb, s.Init, depth+2)
		}
		if s.Condition != nil {
			line(sb, depth+1, "Cond")
			dumpExpression(sb, s.Condition, depth+2)
		}
		if s.Update != nil {
			line(sb, depth+1, "Update")
			dumpExpression(sb, s.Update, depth+2)
		}
		line(sb, depth+1, "Body")
		for _, st := range s.Body {
			dumpStatement(sb, st, depth+2)
		}
	case *BlockStmt:
		line(sb, depth, "Block")
		for _, st := range s.Statements {
			dumpStatement(sb, st, depth+1)
		}
	case *ReturnStmt:
		line(sb, depth, "Return")
		if s.Value != nil {
			dumpExpression(sb, s.Value, depth+1)
		}
	case *PrintStmt:
		line(sb, depth, "Print")
		dumpExpression(sb, s.Value, depth+1)
	}
}

func dumpExpression(sb *strings.Builder, expr Expression, depth int) {
	switch e := expr.(type) {
	case *BinExpr:
		line(sb, depth, "Binary %s", e.Op)
		dumpExpression(sb, e.Left, depth+1)
		dumpExpression(sb, e.Right, depth+1)
	case *UnExpr:
		line(sb, depth, "Unary %s", e.Op)
		dumpExpression(sb, e.Operand, depth+1)
	case *VarExpr:
		line(sb, depth, "Var %s", e.Name)
	case *ConstExpr:
		line(sb, depth, "Const %s", constLiteral(e))
	case *CallExpr:
		line(sb, depth, "Call %s", e.Func)
		for _, arg := range e.Args {
			dumpExpression(sb, arg, depth+1)
		}
	}
}

func constLiteral(e *ConstExpr) string {
	if e.Type == ir.Bool {
		if e.Value != 0 {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%d", e.Value)
}
