package problemgen

import "time"

// Question is a generated arithmetic expression and its answer.
type Question struct {
	// Equation is the expression shown to the player, e.g. "12 + 34 * 5".
	// Tokens are separated by single spaces.
	Equation string

	// Answer is the value of Equation rounded to 2 decimal places.
	Answer float64

	// Difficulty is the level the question was requested for. It is kept
	// as given even when the level fell back to level 1 settings.
	Difficulty int

	// Operands and Operators are the parts Equation was assembled from,
	// after the division-by-zero guard was applied.
	Operands  []int
	Operators []Operator

	// CreatedAt is when the question was generated.
	CreatedAt time.Time
}

// Operator is one of the four binary arithmetic operators.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// valid reports whether o is a known operator.
func (o Operator) valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}
