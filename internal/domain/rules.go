package domain

import "fmt"

// ErrNoTransition is returned for phases that cannot be advanced.
var ErrNoTransition = fmt.Errorf("%w: phase cannot be advanced", ErrRule)

// NextPhase returns the phase that follows p and whether the round advances.
// LOBBY is left only by starting the game.
func NextPhase(p Phase) (Phase, bool, error) {
	switch p {
	case PhasePlanning:
		return PhaseAction, false, nil
	case PhaseAction:
		return PhasePayout, false, nil
	case PhasePayout:
		return PhasePlanning, true, nil
	default:
		return p, false, fmt.Errorf("phase %q: %w", p, ErrNoTransition)
	}
}

// RoundTag is the order-deck key of a round number.
func RoundTag(round int) string {
	return fmt.Sprintf("%d", round)
}

// TableIncome sums the income printed on the cards of a table. An id the
// lookup cannot resolve fails the whole sum.
func TableIncome(table []string, lookup func(id string) (CardDefinition, error)) (int, error) {
	total := 0
	for _, id := range table {
		card, err := lookup(id)
		if err != nil {
			return 0, err
		}
		total += card.Income
	}
	return total, nil
}
