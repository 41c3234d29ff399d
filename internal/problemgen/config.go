package problemgen

// Settings controls the shape of expressions generated for a difficulty.
type Settings struct {
	// OperandCount is the number of operands in the expression.
	OperandCount int

	// DigitLength is the number of digits in every operand.
	DigitLength int
}

// MinDifficulty and MaxDifficulty bound the levels with their own settings.
const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

var levels = map[int]Settings{
	1: {OperandCount: 2, DigitLength: 1},
	2: {OperandCount: 3, DigitLength: 2},
	3: {OperandCount: 4, DigitLength: 3},
	4: {OperandCount: 5, DigitLength: 4},
}

// SettingsFor returns the settings for difficulty. Unknown levels fall back
// to level 1 without error.
func SettingsFor(difficulty int) Settings {
	if s, ok := levels[difficulty]; ok {
		return s
	}
	return levels[MinDifficulty]
}

// weightedOperators is the multiset operators are drawn from:
// + weighs 3, - weighs 2, * and / weigh 1 each.
var weightedOperators = []Operator{
	OpAdd, OpAdd, OpAdd,
	OpSub, OpSub,
	OpMul,
	OpDiv,
}
