package checker

import (
	"fmt"

	"tacc/internal/ast"
	"tacc/internal/ir"
)

// Checker walks the AST once, building a flat symbol table and tagging
// every expression with its static type. Errors are fatal (the program is
// rejected); warnings are advisory and never block code generation.
type Checker struct {
	symbols  map[string]*Symbol
	errors   []string
	warnings []string
}

type Symbol struct {
	Name        string
	Type        ir.Type
	Line        int
	Initialized bool
}

func New() *Checker {
	return &Checker{symbols: make(map[string]*Symbol)}
}

// Check reports whether the program is accepted (zero fatal errors).
func (c *Checker) Check(program *ast.Program) bool {
	for _, stmt := range program.Statements {
		c.checkStatement(stmt)
	}
	return len(c.errors) == 0
}

func (c *Checker) Errors() []string   { return c.errors }
func (c *Checker) Warnings() []string { return c.warnings }

func (c *Checker) error(msg string) {
	c.errors = append(c.errors, msg)
}

func (c *Checker) warn(msg string) {
	c.warnings = append(c.warnings, msg)
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		c.checkDecl(s)
	case *ast.AssignStmt:
		c.checkAssign(s)
	case *ast.IfStmt:
		condType := c.checkExpression(s.Condition)
		if condType != ir.Bool {
			c.warn(fmt.Sprintf("If condition should be boolean, got %s", condType))
		}
		for _, st := range s.ThenBranch {
			c.checkStatement(st)
		}
		for _, st := range s.ElseBranch {
			c.checkStatement(st)
		}
	case *ast.WhileStmt:
		condType := c.checkExpression(s.Condition)
		if condType != ir.Bool {
			c.warn(fmt.Sprintf("While condition should be boolean, got %s", condType))
		}
		for _, st := range s.Body {
			c.checkStatement(st)
		}
	case *ast.ForStmt:
		if s.Init != nil {
			c.checkStatement(s.Init)
		}
		if s.Condition != nil {
			condType := c.checkExpression(s.Condition)
			if condType != ir.Bool {
				c.warn(fmt.Sprintf("For condition should be boolean, got %s", condType))
			}
		}
		if s.Update != nil {
			c.checkExpression(s.Update)
		}
		for _, st := range s.Body {
			c.checkStatement(st)
		}
	case *ast.BlockStmt:
		for _, st := range s.Statements {
			c.checkStatement(st)
		}
	case *ast.PrintStmt:
		c.checkExpression(s.Value)
	case *ast.ReturnStmt:
		if s.Value != nil {
			c.checkExpression(s.Value)
		}
	}
}

func (c *Checker) checkDecl(decl *ast.DeclStmt) {
	if _, exists := c.symbols[decl.Name]; exists {
		c.error(fmt.Sprintf("Variable '%s' already defined", decl.Name))
		return
	}

	// The initializer is checked before the name is in scope, so
	// `int a = a;` reads an undefined variable.
	if decl.Initializer != nil {
		exprType := c.checkExpression(decl.Initializer)
		if exprType != decl.DeclType {
			c.warn(fmt.Sprintf("Type mismatch in initialization of '%s': expected %s, got %s",
				decl.Name, decl.DeclType, exprType))
		}
	}

	c.symbols[decl.Name] = &Symbol{
		Name:        decl.Name,
		Type:        decl.DeclType,
		Line:        decl.Line,
		Initialized: decl.Initializer != nil,
	}
}

func (c *Checker) checkAssign(assign *ast.AssignStmt) {
	sym, exists := c.symbols[assign.Name]
	if !exists {
		c.error(fmt.Sprintf("Variable '%s' is not defined", assign.Name))
		return
	}

	exprType := c.checkExpression(assign.Value)
	if exprType != sym.Type {
		c.warn(fmt.Sprintf("Type mismatch in assignment to '%s': expected %s, got %s",
			assign.Name, sym.Type, exprType))
	}

	sym.Initialized = true
}

// checkExpression infers and tags the static type of an expression.
// Undefined variable reads are fatal but yield int so the walk continues.
func (c *Checker) checkExpression(expr ast.Expression) ir.Type {
	switch e := expr.(type) {
	case *ast.BinExpr:
		e.Type = c.checkBinExpr(e)
		return e.Type
	case *ast.UnExpr:
		e.Type = c.checkUnExpr(e)
		return e.Type
	case *ast.VarExpr:
		e.Type = c.checkVarExpr(e)
		return e.Type
	case *ast.ConstExpr:
		return e.Type
	case *ast.CallExpr:
		for _, arg := range e.Args {
			c.checkExpression(arg)
		}
		// Calls are opaque in this single-scope language.
		e.Type = ir.Int
		return e.Type
	}
	return ir.Int
}

func (c *Checker) checkBinExpr(expr *ast.BinExpr) ir.Type {
	leftType := c.checkExpression(expr.Left)
	rightType := c.checkExpression(expr.Right)

	if expr.Op.IsComparison() {
		return ir.Bool
	}

	if expr.Op.IsLogical() {
		if leftType != ir.Bool {
			c.warn(fmt.Sprintf("Logical operator expects boolean, got %s", leftType))
		}
		if rightType != ir.Bool {
			c.warn(fmt.Sprintf("Logical operator expects boolean, got %s", rightType))
		}
		return ir.Bool
	}

	if leftType != rightType {
		c.warn("Type mismatch in binary operation")
	}
	return leftType
}

func (c *Checker) checkUnExpr(expr *ast.UnExpr) ir.Type {
	opType := c.checkExpression(expr.Operand)

	if expr.Op == ir.Neg {
		if opType != ir.Int {
			c.warn(fmt.Sprintf("Unary minus expects int, got %s", opType))
		}
		return ir.Int
	}

	if opType != ir.Bool {
		c.warn(fmt.Sprintf("Logical not expects bool, got %s", opType))
	}
	return ir.Bool
}

func (c *Checker) checkVarExpr(expr *ast.VarExpr) ir.Type {
	sym, exists := c.symbols[expr.Name]
	if !exists {
		c.error(fmt.Sprintf("Undefined variable '%s'", expr.Name))
		return ir.Int
	}

	if !sym.Initialized {
		c.warn(fmt.Sprintf("Variable '%s' may be uninitialized", expr.Name))
	}
	return sym.Type
}
