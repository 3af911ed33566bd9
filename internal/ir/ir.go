package ir

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IR for the tacc compiler.
// Simple linear three-address code: an ordered instruction list where the
// index is the implicit address, plus a table of declared variable types.

type Type int

const (
	Int Type = iota
	Bool
)

func (t Type) String() string {
	if t == Bool {
		return "bool"
	}
	return "int"
}

// Binary operators
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	And
	Or
)

var binOpNames = [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">=", "&&", "||"}

func (op BinOp) String() string { return binOpNames[op] }

// IsComparison reports whether op yields a boolean result.
func (op BinOp) IsComparison() bool { return op >= Eq && op <= Ge }

// IsLogical reports whether op expects boolean operands.
func (op BinOp) IsLogical() bool { return op == And || op == Or }

// Unary operators
type UnOp int

const (
	Neg UnOp = iota
	Not
)

func (op UnOp) String() string {
	if op == Not {
		return "!"
	}
	return "-"
}

type OperandKind int

const (
	VarOperand OperandKind = iota
	ConstOperand
	TempOperand
)

// Operand is a variable reference, an integer constant, or a compiler
// temporary. Temporaries and variables share one runtime namespace; the
// distinction only matters to dead-code analysis.
type Operand struct {
	Kind  OperandKind
	Name  string
	Value int
}

func Variable(name string) Operand  { return Operand{Kind: VarOperand, Name: name} }
func Constant(v int) Operand        { return Operand{Kind: ConstOperand, Value: v} }
func Temporary(name string) Operand { return Operand{Kind: TempOperand, Name: name} }

func (o Operand) IsConst() bool { return o.Kind == ConstOperand }
func (o Operand) IsVar() bool   { return o.Kind == VarOperand }
func (o Operand) IsTemp() bool  { return o.Kind == TempOperand }

func (o Operand) String() string {
	if o.Kind == ConstOperand {
		return strconv.Itoa(o.Value)
	}
	return o.Name
}

type Instruction interface {
	String() string
}

type BinInstr struct {
	Dest  Operand
	Op    BinOp
	Left  Operand
	Right Operand
}

func (b *BinInstr) String() string {
	return b.Dest.String() + " = " + b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}

type UnInstr struct {
	Dest Operand
	Op   UnOp
	Val  Operand
}

func (u *UnInstr) String() string {
	return u.Dest.String() + " = " + u.Op.String() + u.Val.String()
}

type Assign struct {
	Dest Operand
	Src  Operand
}

func (a *Assign) String() string {
	return a.Dest.String() + " = " + a.Src.String()
}

type Label struct {
	Name string
}

func (l *Label) String() string { return l.Name + ":" }

type Goto struct {
	Label string
}

func (g *Goto) String() string { return "goto " + g.Label }

// IfGoto jumps when the condition is falsy (zero); control falls through
// to the next instruction on a truthy condition.
type IfGoto struct {
	Cond  Operand
	Label string
}

func (i *IfGoto) String() string {
	return "ifz " + i.Cond.String() + " goto " + i.Label
}

type Call struct {
	Dest Operand
	Func string
	Args []Operand
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Dest.String() + " = " + c.Func + "(" + strings.Join(args, ", ") + ")"
}

type Return struct {
	Val Operand
}

func (r *Return) String() string { return "return " + r.Val.String() }

type Print struct {
	Val Operand
}

func (p *Print) String() string { return "print(" + p.Val.String() + ")" }

type Nop struct{}

func (n *Nop) String() string { return "nop" }

// Program is an ordered instruction sequence plus the declared variable
// types. Every Goto/IfGoto target must name a Label that occurs exactly
// once; the interpreter verifies this before executing.
type Program struct {
	Instrs []Instruction
	Vars   map[string]Type
}

func NewProgram() *Program {
	return &Program{Vars: make(map[string]Type)}
}

func (p *Program) Emit(instr Instruction) {
	p.Instrs = append(p.Instrs, instr)
}

// String renders the instruction listing, one per line:
// a 3-space-padded index, two spaces, then the instruction text.
func (p *Program) String() string {
	var sb strings.Builder
	for i, instr := range p.Instrs {
		fmt.Fprintf(&sb, "%3d:  %s\n", i, instr.String())
	}
	return sb.String()
}

// VarTable renders the variable table as sorted "name : type" lines.
func (p *Program) VarTable() string {
	names := make([]string, 0, len(p.Vars))
	for name := range p.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s : %s\n", name, p.Vars[name])
	}
	return sb.String()
}
