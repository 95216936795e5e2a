package game

// Grade is a judgement, ordered from strictest to most lenient.
type Grade uint8

const (
	NoGrade Grade = iota
	Sick
	Good
	Bad
	Miss
)

// Grades lists every judgement in order of strictness.
var Grades = [...]Grade{Sick, Good, Bad, Miss}

func (g Grade) String() string {
	switch g {
	case Sick:
		return "sick"
	case Good:
		return "good"
	case Bad:
		return "bad"
	case Miss:
		return "miss"
	}
	return "none"
}

// BreaksCombo reports whether this grade resets the combo counter.
func (g Grade) BreaksCombo() bool {
	return g == Bad || g == Miss
}

// Index is the position of the grade in Grades, or -1 for NoGrade.
func (g Grade) Index() int {
	if g == NoGrade || g > Miss {
		return -1
	}
	return int(g) - 1
}
