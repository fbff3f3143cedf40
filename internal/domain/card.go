package domain

import "strconv"

// CardType is the closed set of card kinds. It is assigned once when the
// catalog is loaded and never re-derived from free text afterwards.
type CardType string

const (
	CardGangster  CardType = "GANGSTER"
	CardBusiness  CardType = "BUSINESS"
	CardOrder     CardType = "ORDER"
	CardInfluence CardType = "INFLUENCE"
	CardUnknown   CardType = "UNKNOWN"
)

// SubtypeNone is the classifier of cards without a subtype.
const SubtypeNone = "NONE"

// Quantity is either a non-negative number or a verbatim text such as "X" or "2x".
// The zero value is Numeric(0).
type Quantity struct {
	value   int
	text    string
	textual bool
}

// Numeric returns a numeric quantity.
func Numeric(n int) Quantity {
	return Quantity{value: n}
}

// Textual returns a quantity that only has a printed form.
func Textual(s string) Quantity {
	return Quantity{text: s, textual: true}
}

// Int reports the numeric value and whether the quantity is numeric.
func (q Quantity) Int() (int, bool) {
	if q.textual {
		return 0, false
	}
	return q.value, true
}

// Text reports the verbatim text and whether the quantity is textual.
func (q Quantity) Text() (string, bool) {
	if !q.textual {
		return "", false
	}
	return q.text, true
}

// IsNumeric reports whether q holds a number.
func (q Quantity) IsNumeric() bool {
	return !q.textual
}

func (q Quantity) String() string {
	if q.textual {
		return q.text
	}
	return strconv.Itoa(q.value)
}

// CardOption is one of at most two alternative effects printed on a card.
type CardOption struct {
	ID         int
	Text       string
	Amount     int // 0 when the option carries no amount
	DiceSymbol string
	DiceReq    []int // nil when the option has no dice requirement
}

// CardDefinition is an immutable catalog entry.
type CardDefinition struct {
	ID           string
	Type         CardType
	Subtype      string
	IsDefault    bool
	Name         string
	Family       Family
	Description  string
	Phase        string
	Strength     Quantity
	Cost         Quantity
	Income       int
	Target       string
	Round        string
	Requirements []string
	Options      []CardOption
}

// Option returns the option with the given id.
func (c CardDefinition) Option(id int) (CardOption, bool) {
	for _, opt := range c.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return CardOption{}, false
}
