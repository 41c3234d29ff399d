package problemgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDivisionByZero is returned by Evaluate for a literal zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Evaluate computes the value of a space-separated infix expression such as
// "12 + 34 * 5 / 2". Multiplication and division bind tighter than addition
// and subtraction; operators of equal precedence apply left to right.
// "×" and "÷" are accepted as aliases of "*" and "/".
func Evaluate(text string) (float64, error) {
	nums, ops, err := tokenize(text)
	if err != nil {
		return 0, err
	}

	var sum float64
	sign := 1.0
	term := nums[0]

	for i, op := range ops {
		n := nums[i+1]
		switch op {
		case OpMul:
			term *= n
		case OpDiv:
			if n == 0 {
				return 0, ErrDivisionByZero
			}
			term /= n
		case OpAdd, OpSub:
			sum += sign * term
			term = n
			sign = 1
			if op == OpSub {
				sign = -1
			}
		}
	}
	return sum + sign*term, nil
}

// tokenize splits text into alternating operands and operators.
func tokenize(text string) ([]float64, []Operator, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("empty expression")
	}
	if len(fields)%2 == 0 {
		return nil, nil, fmt.Errorf("malformed expression %q: expected operand after operator", text)
	}

	nums := make([]float64, 0, len(fields)/2+1)
	ops := make([]Operator, 0, len(fields)/2)
	for i, f := range fields {
		if i%2 == 1 {
			op := Operator(normalizeOp(f))
			if !op.valid() {
				return nil, nil, fmt.Errorf("unsupported operator: %s", f)
			}
			ops = append(ops, op)
			continue
		}
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid operand %q: %w", f, err)
		}
		nums = append(nums, n)
	}
	return nums, ops, nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// Round2 rounds v to 2 decimal places, halves away from zero.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
