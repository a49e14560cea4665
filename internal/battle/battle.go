package battle

import (
	"time"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/dex"
)

type Outcome int

const (
	Draw Outcome = iota
	FirstWins
	SecondWins
)

func (o Outcome) String() string {
	switch o {
	case FirstWins:
		return "first"
	case SecondWins:
		return "second"
	default:
		return "draw"
	}
}

// Compare decides a battle on the attack stat alone.
func Compare(a, b dex.Pokemon) Outcome {
	switch {
	case a.Attack > b.Attack:
		return FirstWins
	case b.Attack > a.Attack:
		return SecondWins
	default:
		return Draw
	}
}

// Result is the record of a single battle, as shown to the user and kept
// in the history store.
type Result struct {
	Id           int64
	First        string
	Second       string
	FirstAttack  int
	SecondAttack int
	Outcome      Outcome
	FoughtAt     time.Time
}

func Fight(a, b dex.Pokemon) Result {
	return Result{
		First:        a.Name,
		Second:       b.Name,
		FirstAttack:  a.Attack,
		SecondAttack: b.Attack,
		Outcome:      Compare(a, b),
		FoughtAt:     time.Now(),
	}
}

// Winner returns the winning name, or false on a draw.
func (r Result) Winner() (string, bool) {
	switch r.Outcome {
	case FirstWins:
		return r.First, true
	case SecondWins:
		return r.Second, true
	}
	return "", false
}
