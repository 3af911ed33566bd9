package irgen

import (
	"fmt"

	"tacc/internal/ast"
	"tacc/internal/ir"
)

// Generator lowers a semantically accepted AST into linear three-address
// code. Temporary and label counters are reset at the start of every
// Generate call.
type Generator struct {
	prog       *ir.Program
	tempCount  int
	labelCount int
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(program *ast.Program) *ir.Program {
	g.prog = ir.NewProgram()
	g.tempCount = 0
	g.labelCount = 0

	// First pass: collect declarations so instructions can reference a
	// variable before its generation site.
	for _, stmt := range program.Statements {
		g.collectDecls(stmt)
	}

	// Second pass: emit instructions.
	for _, stmt := range program.Statements {
		g.genStatement(stmt)
	}

	return g.prog
}

func (g *Generator) collectDecls(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		g.prog.Vars[s.Name] = s.DeclType
	case *ast.IfStmt:
		for _, st := range s.ThenBranch {
			g.collectDecls(st)
		}
		for _, st := range s.ElseBranch {
			g.collectDecls(st)
		}
	case *ast.WhileStmt:
		for _, st := range s.Body {
			g.collectDecls(st)
		}
	case *ast.ForStmt:
		if s.Init != nil {
			g.collectDecls(s.Init)
		}
		for _, st := range s.Body {
			g.collectDecls(st)
		}
	case *ast.BlockStmt:
		for _, st := range s.Statements {
			g.collectDecls(st)
		}
	}
}

func (g *Generator) newTemp() string {
	temp := fmt.Sprintf("t%d", g.tempCount)
	g.tempCount++
	return temp
}

func (g *Generator) newLabel() string {
	label := fmt.Sprintf("L%d", g.labelCount)
	g.labelCount++
	return label
}

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		g.genDecl(s)
	case *ast.AssignStmt:
		src := g.genExpression(s.Value)
		g.prog.Emit(&ir.Assign{Dest: ir.Variable(s.Name), Src: src})
	case *ast.IfStmt:
		g.genIf(s)
	case *ast.WhileStmt:
		g.genWhile(s)
	case *ast.ForStmt:
		g.genFor(s)
	case *ast.BlockStmt:
		for _, st := range s.Statements {
			g.genStatement(st)
		}
	case *ast.ReturnStmt:
		val := ir.Constant(0)
		if s.Value != nil {
			val = g.genExpression(s.Value)
		}
		g.prog.Emit(&ir.Return{Val: val})
	case *ast.PrintStmt:
		val := g.genExpression(s.Value)
		g.prog.Emit(&ir.Print{Val: val})
	}
}

// A declaration without an initializer only registers the variable's
// type; its zero value is established by the interpreter.
func (g *Generator) genDecl(decl *ast.DeclStmt) {
	g.prog.Vars[decl.Name] = decl.DeclType

	if decl.Initializer != nil {
		src := g.genExpression(decl.Initializer)
		g.prog.Emit(&ir.Assign{Dest: ir.Variable(decl.Name), Src: src})
	}
}

func (g *Generator) genIf(stmt *ast.IfStmt) {
	cond := g.genExpression(stmt.Condition)
	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	// ifz jumps on a falsy condition; the then-branch is fallthrough.
	g.prog.Emit(&ir.IfGoto{Cond: cond, Label: elseLabel})

	for _, st := range stmt.ThenBranch {
		g.genStatement(st)
	}

	if len(stmt.ElseBranch) > 0 {
		g.prog.Emit(&ir.Goto{Label: endLabel})
		g.prog.Emit(&ir.Label{Name: elseLabel})
		for _, st := range stmt.ElseBranch {
			g.genStatement(st)
		}
		g.prog.Emit(&ir.Label{Name: endLabel})
	} else {
		g.prog.Emit(&ir.Label{Name: elseLabel})
	}
}

func (g *Generator) genWhile(stmt *ast.WhileStmt) {
	loopLabel := g.newLabel()
	endLabel := g.newLabel()

	g.prog.Emit(&ir.Label{Name: loopLabel})

	cond := g.genExpression(stmt.Condition)
	g.prog.Emit(&ir.IfGoto{Cond: cond, Label: endLabel})

	for _, st := range stmt.Body {
		g.genStatement(st)
	}

	g.prog.Emit(&ir.Goto{Label: loopLabel})
	g.prog.Emit(&ir.Label{Name: endLabel})
}

func (g *Generator) genFor(stmt *ast.ForStmt) {
	if stmt.Init != nil {
		g.genStatement(stmt.Init)
	}

	loopLabel := g.newLabel()
	endLabel := g.newLabel()

	g.prog.Emit(&ir.Label{Name: loopLabel})

	// An absent condition means an infinite loop: no exit test emitted.
	if stmt.Condition != nil {
		cond := g.genExpression(stmt.Condition)
		g.prog.Emit(&ir.IfGoto{Cond: cond, Label: endLabel})
	}

	for _, st := range stmt.Body {
		g.genStatement(st)
	}

	if stmt.Update != nil {
		g.genExpression(stmt.Update) // value discarded
	}

	g.prog.Emit(&ir.Goto{Label: loopLabel})
	g.prog.Emit(&ir.Label{Name: endLabel})
}

// genExpression lowers an expression post-order and returns the operand
// holding its value. Constants and variables emit nothing; every
// operator or call writes into a fresh temporary.
func (g *Generator) genExpression(expr ast.Expression) ir.Operand {
	switch e := expr.(type) {
	case *ast.ConstExpr:
		return ir.Constant(e.Value)
	case *ast.VarExpr:
		return ir.Variable(e.Name)
	case *ast.BinExpr:
		left := g.genExpression(e.Left)
		right := g.genExpression(e.Right)
		dest := ir.Temporary(g.newTemp())
		g.prog.Emit(&ir.BinInstr{Dest: dest, Op: e.Op, Left: left, Right: right})
		return dest
	case *ast.UnExpr:
		val := g.genExpression(e.Operand)
		dest := ir.Temporary(g.newTemp())
		g.prog.Emit(&ir.UnInstr{Dest: dest, Op: e.Op, Val: val})
		return dest
	case *ast.CallExpr:
		args := make([]ir.Operand, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, g.genExpression(arg))
		}
		dest := ir.Temporary(g.newTemp())
		g.prog.Emit(&ir.Call{Dest: dest, Func: e.Func, Args: args})
		return dest
	}
	return ir.Constant(0)
}
