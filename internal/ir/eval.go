package ir

import "errors"

var (
	ErrDivisionByZero = errors.New("Division by zero")
	ErrModuloByZero   = errors.New("Modulo by zero")
)

func truthy(v int) bool { return v != 0 }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// EvalBinOp applies a binary operator to already-resolved integer values.
// Comparisons and logicals yield 1/0 with non-zero truthiness; logical
// operators do not short-circuit (both operands are already evaluated).
// The constant folder and the interpreter both go through here so folded
// results always match runtime results.
func EvalBinOp(op BinOp, left, right int) (int, error) {
	switch op {
	case Add:
		return left + right, nil
	case Sub:
		return left - right, nil
	case Mul:
		return left * right, nil
	case Div:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case Mod:
		if right == 0 {
			return 0, ErrModuloByZero
		}
		return left % right, nil
	case Eq:
		return boolToInt(left == right), nil
	case Ne:
		return boolToInt(left != right), nil
	case Lt:
		return boolToInt(left < right), nil
	case Gt:
		return boolToInt(left > right), nil
	case Le:
		return boolToInt(left <= right), nil
	case Ge:
		return boolToInt(left >= right), nil
	case And:
		return boolToInt(truthy(left) && truthy(right)), nil
	case Or:
		return boolToInt(truthy(left) || truthy(right)), nil
	}
	return 0, nil
}

// EvalUnOp applies a unary operator to an already-resolved value.
func EvalUnOp(op UnOp, val int) int {
	if op == Not {
		return boolToInt(!truthy(val))
	}
	return -val
}
