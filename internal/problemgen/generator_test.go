package problemgen

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mindspeed/internal/clock"
)

// scriptedSource returns queued values from IntN, then zeros.
type scriptedSource struct {
	values []int
	calls  []int // n passed to each IntN call
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

var testNow = time.Date(2025, 6, 25, 9, 30, 15, 0, time.UTC)

func testGenerator(seed uint64) *Arithmetic {
	return New(NewSource(seed), clock.NewManual(testNow))
}

func TestGenerate_ShapeMatchesDifficulty(t *testing.T) {
	gen := testGenerator(42)

	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		settings := SettingsFor(d)
		lo := pow10(settings.DigitLength - 1)
		hi := pow10(settings.DigitLength) - 1

		for i := 0; i < 200; i++ {
			q := gen.Generate(d)

			if len(q.Operands) != settings.OperandCount {
				t.Fatalf("difficulty %d: %d operands, want %d", d, len(q.Operands), settings.OperandCount)
			}
			if len(q.Operators) != settings.OperandCount-1 {
				t.Fatalf("difficulty %d: %d operators, want %d", d, len(q.Operators), settings.OperandCount-1)
			}
			for _, n := range q.Operands {
				if n < lo || n > hi {
					t.Fatalf("difficulty %d: operand %d outside [%d, %d]", d, n, lo, hi)
				}
			}

			fields := strings.Fields(q.Equation)
			if len(fields) != 2*settings.OperandCount-1 {
				t.Fatalf("difficulty %d: equation %q has %d tokens", d, q.Equation, len(fields))
			}
			if q.Difficulty != d {
				t.Errorf("Difficulty = %d, want %d", q.Difficulty, d)
			}
		}
	}
}

func TestGenerate_AnswerMatchesEquation(t *testing.T) {
	gen := testGenerator(7)

	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		for i := 0; i < 200; i++ {
			q := gen.Generate(d)
			v, err := Evaluate(q.Equation)
			if err != nil {
				t.Fatalf("evaluate %q: %v", q.Equation, err)
			}
			if got := Round2(v); got != q.Answer {
				t.Fatalf("re-evaluated %q = %v, stored answer %v", q.Equation, got, q.Answer)
			}
		}
	}
}

func TestGenerate_NoDivisionByZeroLiteral(t *testing.T) {
	gen := testGenerator(99)

	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		for i := 0; i < 500; i++ {
			q := gen.Generate(d)
			fields := strings.Fields(q.Equation)
			for j := 1; j < len(fields)-1; j += 2 {
				if fields[j] == "/" && fields[j+1] == "0" {
					t.Fatalf("equation %q divides by literal zero", q.Equation)
				}
			}
		}
	}
}

func TestGenerate_UnknownDifficultyFallsBackToLevelOne(t *testing.T) {
	gen := testGenerator(1)

	for _, d := range []int{0, -3, 5, 100} {
		q := gen.Generate(d)
		if len(q.Operands) != 2 || len(q.Operators) != 1 {
			t.Errorf("difficulty %d: got %d operands / %d operators, want level-1 shape", d, len(q.Operands), len(q.Operators))
		}
		for _, n := range q.Operands {
			if n < 1 || n > 9 {
				t.Errorf("difficulty %d: operand %d is not a single digit", d, n)
			}
		}
		if q.Difficulty != d {
			t.Errorf("Difficulty = %d, want requested %d", q.Difficulty, d)
		}
	}
}

func TestGenerate_ScriptedDraws(t *testing.T) {
	// Level 2: three operands in [10, 99], two operators.
	// IntN(90) draws 2, 40, 89 -> operands 12, 50, 99.
	// IntN(7) draws 5, 6 -> "*", "/".
	src := &scriptedSource{values: []int{2, 40, 89, 5, 6}}
	gen := New(src, clock.NewManual(testNow))

	q := gen.Generate(2)

	if q.Equation != "12 * 50 / 99" {
		t.Fatalf("Equation = %q, want %q", q.Equation, "12 * 50 / 99")
	}
	if q.Answer != 6.06 {
		t.Errorf("Answer = %v, want 6.06", q.Answer)
	}
	if !q.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", q.CreatedAt, testNow)
	}

	wantCalls := []int{90, 90, 90, 7, 7}
	if len(src.calls) != len(wantCalls) {
		t.Fatalf("IntN calls = %v, want %v", src.calls, wantCalls)
	}
	for i := range wantCalls {
		if src.calls[i] != wantCalls[i] {
			t.Errorf("IntN call %d = %d, want %d", i, src.calls[i], wantCalls[i])
		}
	}
}

func TestBuildText_ZeroDivisorResampled(t *testing.T) {
	src := &scriptedSource{values: []int{3}} // IntN(9) -> 3 -> divisor 4
	gen := New(src, clock.NewManual(testNow))

	operands := []int{8, 0, 0}
	text := gen.buildText(operands, []Operator{OpDiv, OpAdd})

	if text != "8 / 4 + 0" {
		t.Errorf("text = %q, want %q", text, "8 / 4 + 0")
	}
	if operands[1] != 4 {
		t.Errorf("resampled operand not stored: %v", operands)
	}
	if operands[2] != 0 {
		t.Errorf("zero after + must stay: %v", operands)
	}
}

func TestOperatorWeights(t *testing.T) {
	counts := map[Operator]int{}
	for _, op := range weightedOperators {
		counts[op]++
	}
	want := map[Operator]int{OpAdd: 3, OpSub: 2, OpMul: 1, OpDiv: 1}
	for op, n := range want {
		if counts[op] != n {
			t.Errorf("weight(%s) = %d, want %d", op, counts[op], n)
		}
	}
}

func TestOperatorDistribution(t *testing.T) {
	gen := testGenerator(2024)
	const draws = 70000

	ops := gen.operators(draws)
	counts := map[Operator]int{}
	for _, op := range ops {
		counts[op]++
	}

	want := map[Operator]float64{OpAdd: 3.0 / 7, OpSub: 2.0 / 7, OpMul: 1.0 / 7, OpDiv: 1.0 / 7}
	for op, p := range want {
		got := float64(counts[op]) / draws
		if got < p-0.01 || got > p+0.01 {
			t.Errorf("P(%s) = %.4f, want %.4f ± 0.01", op, got, p)
		}
	}
}

func TestSameSeedSameQuestions(t *testing.T) {
	a := testGenerator(5)
	b := testGenerator(5)
	for i := 0; i < 20; i++ {
		qa, qb := a.Generate(3), b.Generate(3)
		if qa.Equation != qb.Equation {
			t.Fatalf("draw %d: %q != %q", i, qa.Equation, qb.Equation)
		}
	}
}

func TestSamples(t *testing.T) {
	qs := Samples(testGenerator(3))
	if len(qs) != MaxDifficulty {
		t.Fatalf("got %d samples, want %d", len(qs), MaxDifficulty)
	}
	for i, q := range qs {
		if q.Difficulty != i+1 {
			t.Errorf("sample %d difficulty = %d", i, q.Difficulty)
		}
		if got := len(strings.Fields(q.Equation)); got != 2*SettingsFor(i+1).OperandCount-1 {
			t.Errorf("sample %d %q has %d tokens", i, q.Equation, got)
		}
		for _, n := range q.Operands {
			if len(strconv.Itoa(n)) != SettingsFor(i+1).DigitLength {
				t.Errorf("sample %d operand %d has wrong digit length", i, n)
			}
		}
	}
}
