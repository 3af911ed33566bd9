package ast

import "tacc/internal/ir"

// The AST is produced by the parser and consumed read-only by the checker
// and the code generator. Every node carries its source line. Expression
// nodes carry a static type tag that only the checker writes.

type Node interface {
	Pos() int
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0
}

// int x; / bool b = true;
type DeclStmt struct {
	Name        string
	DeclType    ir.Type
	Initializer Expression
	Line        int
}

func (ds *DeclStmt) statementNode() {}
func (ds *DeclStmt) Pos() int       { return ds.Line }

type AssignStmt struct {
	Name  string
	Value Expression
	Line  int
}

func (as *AssignStmt) statementNode() {}
func (as *AssignStmt) Pos() int       { return as.Line }

type IfStmt struct {
	Condition  Expression
	ThenBranch []Statement
	ElseBranch []Statement
	Line       int
}

func (is *IfStmt) statementNode() {}
func (is *IfStmt) Pos() int       { return is.Line }

type WhileStmt struct {
	Condition Expression
	Body      []Statement
	Line      int
}

func (ws *WhileStmt) statementNode() {}
func (ws *WhileStmt) Pos() int       { return ws.Line }

// for (init; cond; update) body. Any of the three clauses may be absent;
// an absent condition means an infinite loop.
type ForStmt struct {
	Init      Statement
	Condition Expression
	Update    Expression
	Body      []Statement
	Line      int
}

func (fs *ForStmt) statementNode() {}
func (fs *ForStmt) Pos() int       { return fs.Line }

type BlockStmt struct {
	Statements []Statement
	Line       int
}

func (bs *BlockStmt) statementNode() {}
func (bs *BlockStmt) Pos() int       { return bs.Line }

type ReturnStmt struct {
	Value Expression // nil for a bare return
	Line  int
}

func (rs *ReturnStmt) statementNode() {}
func (rs *ReturnStmt) Pos() int       { return rs.Line }

type PrintStmt struct {
	Value Expression
	Line  int
}

func (ps *PrintStmt) statementNode() {}
func (ps *PrintStmt) Pos() int       { return ps.Line }

type BinExpr struct {
	Left  Expression
	Op    ir.BinOp
	Right Expression
	Type  ir.Type
	Line  int
}

func (be *BinExpr) expressionNode() {}
func (be *BinExpr) Pos() int        { return be.Line }

type UnExpr struct {
	Op      ir.UnOp
	Operand Expression
	Type    ir.Type
	Line    int
}

func (ue *UnExpr) expressionNode() {}
func (ue *UnExpr) Pos() int        { return ue.Line }

type VarExpr struct {
	Name string
	Type ir.Type
	Line int
}

func (ve *VarExpr) expressionNode() {}
func (ve *VarExpr) Pos() int        { return ve.Line }

// ConstExpr is an integer or boolean literal. Booleans are stored as 0/1
// with the Bool type tag already set by the parser.
type ConstExpr struct {
	Value int
	Type  ir.Type
	Line  int
}

func (ce *ConstExpr) expressionNode() {}
func (ce *ConstExpr) Pos() int        { return ce.Line }

type CallExpr struct {
	Func string
	Args []Expression
	Type ir.Type
	Line int
}

func (ce *CallExpr) expressionNode() {}
func (ce *CallExpr) Pos() int        { return ce.Line }
