package domain

import "fmt"

// Dice glyphs as printed on cards. Each glyph stands for one die.
const (
	GlyphTwo   = '⠊'
	GlyphThree = '⠕'
	GlyphFour  = '⠛'
	GlyphAny   = '?'
)

// AnyPip is the wildcard requirement: any rolled value satisfies it.
const AnyPip = 0

var (
	ErrUnknownOption     = fmt.Errorf("%w: option not found on card", ErrRule)
	ErrInvalidRoll       = fmt.Errorf("%w: rolled dice must be between 1 and %d", ErrRule, DieFaces)
	ErrOptionNotEligible = fmt.Errorf("%w: roll does not satisfy the option", ErrRule)
)

// DecodeDice converts a glyph string into the pip values it requires, in order.
// Runes outside the glyph alphabet are ignored; nil means no requirement.
func DecodeDice(symbol string) []int {
	var pips []int
	for _, r := range symbol {
		switch r {
		case GlyphTwo:
			pips = append(pips, 2)
		case GlyphThree:
			pips = append(pips, 3)
		case GlyphFour:
			pips = append(pips, 4)
		case GlyphAny:
			pips = append(pips, AnyPip)
		}
	}
	return pips
}

// MatchDice reports whether rolled satisfies req. Each requirement consumes a
// distinct die: exact values first, then wildcards take whatever dice remain.
func MatchDice(req, rolled []int) bool {
	remaining := make(map[int]int, len(rolled))
	for _, d := range rolled {
		remaining[d]++
	}
	free := len(rolled)
	wildcards := 0
	for _, pip := range req {
		if pip == AnyPip {
			wildcards++
			continue
		}
		if remaining[pip] == 0 {
			return false
		}
		remaining[pip]--
		free--
	}
	return wildcards <= free
}

// Resolution is the outcome of checking one option against a roll.
type Resolution struct {
	OptionID int    `json:"optionId"`
	Eligible bool   `json:"eligible"`
	Amount   int    `json:"amount,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ResolveOption checks a roll against one option of a card. Options on a card
// are alternatives, so exactly one is evaluated per call.
func ResolveOption(card CardDefinition, optionID int, rolled []int) (Resolution, error) {
	opt, ok := card.Option(optionID)
	if !ok {
		return Resolution{}, fmt.Errorf("card %s option %d: %w", card.ID, optionID, ErrUnknownOption)
	}
	for _, d := range rolled {
		if d < 1 || d > DieFaces {
			return Resolution{}, fmt.Errorf("die %d: %w", d, ErrInvalidRoll)
		}
	}
	return Resolution{
		OptionID: opt.ID,
		Eligible: len(opt.DiceReq) == 0 || MatchDice(opt.DiceReq, rolled),
		Amount:   opt.Amount,
		Text:     opt.Text,
	}, nil
}
