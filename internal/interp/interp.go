package interp

import (
	"fmt"
	"strconv"

	"tacc/internal/ir"
)

// Interpreter executes a TAC program with a program counter over a flat
// variable store. Declared variables start at zero; temporaries appear in
// the store when first written.
type Interpreter struct {
	vars   map[string]int
	output []string
	err    error
}

func New() *Interpreter {
	return &Interpreter{}
}

// Output returns the ordered log of printed values.
func (in *Interpreter) Output() []string { return in.output }

// Err returns the runtime error that aborted the last Execute, if any.
func (in *Interpreter) Err() error { return in.err }

// Execute runs the program and reports success. Execution succeeds when
// the counter runs past the last instruction or a return executes; any
// runtime error (bad label, undefined name, zero divisor) aborts.
func (in *Interpreter) Execute(prog *ir.Program) bool {
	in.vars = make(map[string]int, len(prog.Vars))
	in.output = nil
	in.err = nil

	for name := range prog.Vars {
		in.vars[name] = 0
	}

	if err := checkLabels(prog); err != nil {
		in.err = err
		return false
	}

	for pc := 0; pc < len(prog.Instrs); pc++ {
		target, jumped, done, err := in.step(prog, prog.Instrs[pc])
		if err != nil {
			in.err = err
			return false
		}
		if done {
			return true
		}
		if jumped {
			// one before the label; the loop increment performs the jump
			pc = target - 1
		}
	}
	return true
}

// step executes one instruction. jumped reports a control transfer to the
// label at index target; done reports a return.
func (in *Interpreter) step(prog *ir.Program, instr ir.Instruction) (target int, jumped, done bool, err error) {
	switch i := instr.(type) {
	case *ir.BinInstr:
		left, err := in.value(i.Left)
		if err != nil {
			return 0, false, false, err
		}
		right, err := in.value(i.Right)
		if err != nil {
			return 0, false, false, err
		}
		result, err := ir.EvalBinOp(i.Op, left, right)
		if err != nil {
			return 0, false, false, err
		}
		in.setValue(i.Dest, result)

	case *ir.UnInstr:
		val, err := in.value(i.Val)
		if err != nil {
			return 0, false, false, err
		}
		in.setValue(i.Dest, ir.EvalUnOp(i.Op, val))

	case *ir.Assign:
		val, err := in.value(i.Src)
		if err != nil {
			return 0, false, false, err
		}
		in.setValue(i.Dest, val)

	case *ir.Label, *ir.Nop:
		// no-op

	case *ir.Goto:
		target, err := findLabel(prog, i.Label)
		if err != nil {
			return 0, false, false, err
		}
		return target, true, false, nil

	case *ir.IfGoto:
		cond, err := in.value(i.Cond)
		if err != nil {
			return 0, false, false, err
		}
		if cond == 0 {
			target, err := findLabel(prog, i.Label)
			if err != nil {
				return 0, false, false, err
			}
			return target, true, false, nil
		}

	case *ir.Print:
		val, err := in.value(i.Val)
		if err != nil {
			return 0, false, false, err
		}
		in.output = append(in.output, strconv.Itoa(val))

	case *ir.Return:
		return 0, false, true, nil

	case *ir.Call:
		// Only the built-in print is recognized; unknown calls are
		// silently ignored.
		if i.Func == "print" && len(i.Args) > 0 {
			val, err := in.value(i.Args[0])
			if err != nil {
				return 0, false, false, err
			}
			in.output = append(in.output, strconv.Itoa(val))
		}
	}

	return 0, false, false, nil
}

func (in *Interpreter) value(op ir.Operand) (int, error) {
	if op.IsConst() {
		return op.Value, nil
	}
	if v, ok := in.vars[op.Name]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("Undefined variable: %s", op.Name)
}

func (in *Interpreter) setValue(op ir.Operand, v int) {
	in.vars[op.Name] = v
}

// checkLabels verifies at execution start that every jump target names a
// label defined exactly once.
func checkLabels(prog *ir.Program) error {
	seen := make(map[string]int)
	for _, instr := range prog.Instrs {
		if label, ok := instr.(*ir.Label); ok {
			seen[label.Name]++
			if seen[label.Name] > 1 {
				return fmt.Errorf("Duplicate label: %s", label.Name)
			}
		}
	}
	for _, instr := range prog.Instrs {
		var target string
		switch i := instr.(type) {
		case *ir.Goto:
			target = i.Label
		case *ir.IfGoto:
			target = i.Label
		default:
			continue
		}
		if seen[target] == 0 {
			return fmt.Errorf("Label not found: %s", target)
		}
	}
	return nil
}

// findLabel resolves a jump target by linear scan. Programs are small
// enough that a precomputed label index is not worth carrying.
func findLabel(prog *ir.Program, label string) (int, error) {
	for i, instr := range prog.Instrs {
		if l, ok := instr.(*ir.Label); ok && l.Name == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("Label not found: %s", label)
}
