package optimizer

import "tacc/internal/ir"

// Optimize runs the two passes in fixed order, each exactly once:
// constant folding, then dead-code elimination. The input program is left
// untouched; a new program is returned.
func Optimize(prog *ir.Program) *ir.Program {
	return eliminateDeadCode(foldConstants(prog))
}

func copyVars(vars map[string]ir.Type) map[string]ir.Type {
	out := make(map[string]ir.Type, len(vars))
	for name, t := range vars {
		out[name] = t
	}
	return out
}

// foldConstants rewrites every operator instruction whose operands are all
// constants into an assignment of the precomputed result. A constant zero
// divisor folds to 0 instead of failing; only a runtime zero divisor is a
// fault, and that is the interpreter's to raise.
func foldConstants(prog *ir.Program) *ir.Program {
	result := &ir.Program{
		Instrs: make([]ir.Instruction, 0, len(prog.Instrs)),
		Vars:   copyVars(prog.Vars),
	}

	for _, instr := range prog.Instrs {
		switch in := instr.(type) {
		case *ir.BinInstr:
			if in.Left.IsConst() && in.Right.IsConst() {
				value, err := ir.EvalBinOp(in.Op, in.Left.Value, in.Right.Value)
				if err != nil {
					value = 0
				}
				result.Emit(&ir.Assign{Dest: in.Dest, Src: ir.Constant(value)})
				continue
			}
		case *ir.UnInstr:
			if in.Val.IsConst() {
				value := ir.EvalUnOp(in.Op, in.Val.Value)
				result.Emit(&ir.Assign{Dest: in.Dest, Src: ir.Constant(value)})
				continue
			}
		}
		result.Emit(instr)
	}

	return result
}

// eliminateDeadCode removes assignments to names that are never read.
// This is a single scan, not a fixed-point iteration: a chain of
// temporaries that only fed a removed instruction survives one run.
func eliminateDeadCode(prog *ir.Program) *ir.Program {
	assigned := make(map[string]bool)
	used := make(map[string]bool)

	use := func(op ir.Operand) {
		if !op.IsConst() {
			used[op.Name] = true
		}
	}

	for _, instr := range prog.Instrs {
		switch in := instr.(type) {
		case *ir.Assign:
			assigned[in.Dest.Name] = true
			use(in.Src)
		case *ir.BinInstr:
			assigned[in.Dest.Name] = true
			use(in.Left)
			use(in.Right)
		case *ir.UnInstr:
			assigned[in.Dest.Name] = true
			use(in.Val)
		case *ir.Print:
			use(in.Val)
		case *ir.Return:
			use(in.Val)
		case *ir.IfGoto:
			use(in.Cond)
		case *ir.Call:
			for _, arg := range in.Args {
				use(arg)
			}
		}
	}

	result := &ir.Program{
		Instrs: make([]ir.Instruction, 0, len(prog.Instrs)),
		Vars:   copyVars(prog.Vars),
	}

	for _, instr := range prog.Instrs {
		dead := false
		switch in := instr.(type) {
		case *ir.Assign:
			dead = assigned[in.Dest.Name] && !used[in.Dest.Name]
		case *ir.BinInstr:
			dead = assigned[in.Dest.Name] && !used[in.Dest.Name]
		case *ir.UnInstr:
			dead = assigned[in.Dest.Name] && !used[in.Dest.Name]
		}
		if !dead {
			result.Emit(instr)
		}
	}

	return result
}
