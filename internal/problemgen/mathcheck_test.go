package problemgen

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate_Precedence(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"5 + 3", 8},
		{"9 - 4", 5},
		{"7 * 6", 42},
		{"8 / 2", 4},
		{"5 + 3 * 2", 11},
		{"5 * 3 + 2", 17},
		{"10 - 4 - 3", 3},
		{"100 / 10 / 5", 2},
		{"2 * 3 / 4", 1.5},
		{"12 + 34 - 56", -10},
		{"1 - 2 * 3 + 4", -1},
		{"20 / 4 * 5 - 1", 24},
		{"7 × 3 ÷ 2", 10.5},
		{"  4   +  4 ", 8},
		{"42", 42},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Evaluate(tt.text)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.text, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"dangling operator", "5 +"},
		{"leading operator", "+ 5 5"},
		{"unknown operator", "5 ^ 2"},
		{"bad operand", "five + 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate(tt.text); err == nil {
				t.Errorf("Evaluate(%q) should fail", tt.text)
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate("5 / 0")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("err = %v, want ErrDivisionByZero", err)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.234, 1.23},
		{1.235, 1.24},
		{2.5, 2.5},
		{-1.235, -1.24},
		{-1.234, -1.23},
		{6.0606, 6.06},
		{1.0 / 3, 0.33},
		{2.0 / 3, 0.67},
		{-2.0 / 3, -0.67},
		{100, 100},
		{-0.001, 0},
	}

	for _, tt := range tests {
		got := Round2(tt.in)
		if got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if z := Round2(-0.001); math.Signbit(z) {
		t.Error("Round2 should not return negative zero")
	}
}
