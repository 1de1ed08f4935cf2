package slots

import (
	"fmt"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// State of a play session
type State int

const (
	StateRunning State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// JackpotDrawFunc resolves one jackpot draw
type JackpotDrawFunc func() (domain.JackpotDraw, error)

// Session runs the turn loop of one play. Every play starts with one turn.
// The first SPIN reward adds its amount to the remaining turns and drops the
// bet multiplier to 1 for the rest of the session. A later turn that yields
// SPIN again is discarded and retried. JACKPOT rewards add a jackpot turn to
// the script without consuming the turn budget.
type Session struct {
	machine *Machine
	rnd     func() float64
	jackpot JackpotDrawFunc

	state      State
	bet        int
	turns      int
	no         int
	granted    bool
	bonusTurns int
	rolledBack int
	script     []domain.PlayTurn
}

// NewSession starts a session at the given bet multiplier
func NewSession(m *Machine, bet int, rnd func() float64, jackpot JackpotDrawFunc) *Session {
	return &Session{
		machine: m,
		rnd:     rnd,
		jackpot: jackpot,
		state:   StateRunning,
		bet:     bet,
		turns:   1,
	}
}

// State returns the current session state
func (s *Session) State() State {
	return s.state
}

// Script returns the turns recorded so far
func (s *Session) Script() []domain.PlayTurn {
	return s.script
}

// BonusTurns returns the number of turns granted by the first SPIN reward
func (s *Session) BonusTurns() int {
	return s.bonusTurns
}

// RolledBack returns how many turns were discarded and retried
func (s *Session) RolledBack() int {
	return s.rolledBack
}

// Step executes one turn
func (s *Session) Step() error {
	if s.state == StateDone {
		return nil
	}
	if s.turns <= 0 {
		s.state = StateDone
		return nil
	}

	s.turns--
	drawn := s.machine.Draw(s.rnd)
	rewards := s.machine.Resolve(drawn)

	spins := 0
	jackpots := 0
	for _, r := range rewards {
		switch r.Kind {
		case domain.RewardSpin:
			spins += int(r.Amount)
		case domain.RewardJackpot:
			jackpots++
		}
	}

	if spins > 0 && s.granted {
		// bonus turns cannot chain: give the turn back and draw again
		s.turns++
		s.rolledBack++
		if s.rolledBack >= MaxRolledBackTurns {
			s.turns = 0
			s.state = StateDone
		}
		return nil
	}

	s.no++
	s.script = append(s.script, domain.PlayTurn{
		No:            s.no,
		Type:          domain.TurnSlotMachine,
		Symbols:       drawn,
		Rewards:       rewards,
		BetMultiplier: s.bet,
	})

	for i := 0; i < jackpots; i++ {
		draw, err := s.jackpot()
		if err != nil {
			return fmt.Errorf("jackpot draw failed on turn %d: %w", s.no, err)
		}
		s.script = append(s.script, domain.PlayTurn{
			No:            s.no,
			Type:          domain.TurnJackpot,
			Rewards:       []domain.RewardSpec{draw.Reward},
			BetMultiplier: s.bet,
			Jackpot:       &draw,
		})
	}

	if spins > 0 {
		s.granted = true
		s.bonusTurns = spins
		s.turns += spins
		s.bet = 1
	}

	if s.turns <= 0 {
		s.state = StateDone
	}
	return nil
}

// Run steps the session until it is done
func (s *Session) Run() ([]domain.PlayTurn, error) {
	for s.state == StateRunning {
		if err := s.Step(); err != nil {
			return s.script, err
		}
	}
	return s.script, nil
}

// RunSession is a convenience wrapper running a fresh session to completion
func RunSession(m *Machine, bet int, rnd func() float64, jackpot JackpotDrawFunc) ([]domain.PlayTurn, error) {
	return NewSession(m, bet, rnd, jackpot).Run()
}
