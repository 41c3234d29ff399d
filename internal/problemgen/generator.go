package problemgen

import (
	"strconv"
	"strings"

	"github.com/abhisek/mindspeed/internal/clock"
)

// Generator produces arithmetic questions.
type Generator interface {
	// Generate builds a question for the given difficulty. Levels outside
	// MinDifficulty..MaxDifficulty use level 1 settings.
	Generate(difficulty int) Question
}

// Arithmetic generates random expressions with weighted operator choice.
// It is not safe for concurrent use unless its Source is.
type Arithmetic struct {
	src   Source
	clock clock.Clock
}

var _ Generator = (*Arithmetic)(nil)

// New creates an Arithmetic generator drawing from src and stamping
// questions with clk.
func New(src Source, clk clock.Clock) *Arithmetic {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Arithmetic{src: src, clock: clk}
}

func (g *Arithmetic) Generate(difficulty int) Question {
	settings := SettingsFor(difficulty)

	operands := g.operands(settings.OperandCount, settings.DigitLength)
	operators := g.operators(settings.OperandCount - 1)
	text := g.buildText(operands, operators)

	// The text is assembled from known tokens, so it always parses.
	value, _ := Evaluate(text)

	return Question{
		Equation:   text,
		Answer:     Round2(value),
		Difficulty: difficulty,
		Operands:   operands,
		Operators:  operators,
		CreatedAt:  g.clock.Now(),
	}
}

// operands draws count uniform integers with exactly digits digits.
func (g *Arithmetic) operands(count, digits int) []int {
	lo := pow10(digits - 1)
	hi := pow10(digits) - 1

	nums := make([]int, count)
	for i := range nums {
		nums[i] = intBetween(g.src, lo, hi)
	}
	return nums
}

// operators draws count independent operators from the weighted multiset.
func (g *Arithmetic) operators(count int) []Operator {
	ops := make([]Operator, count)
	for i := range ops {
		ops[i] = weightedOperators[g.src.IntN(len(weightedOperators))]
	}
	return ops
}

// buildText joins operands and operators left to right. A zero divisor is
// replaced in place by a value in [1, 9].
func (g *Arithmetic) buildText(operands []int, operators []Operator) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(operands[0]))

	for i, op := range operators {
		next := operands[i+1]
		if op == OpDiv && next == 0 {
			next = intBetween(g.src, 1, 9)
			operands[i+1] = next
		}
		b.WriteByte(' ')
		b.WriteString(string(op))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(next))
	}
	return b.String()
}

// Samples generates one question for every difficulty level.
func Samples(g Generator) []Question {
	out := make([]Question, 0, MaxDifficulty-MinDifficulty+1)
	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		out = append(out, g.Generate(d))
	}
	return out
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}
