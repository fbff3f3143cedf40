package catalog

// RawEntry is one card in the catalog exchange format. Sibling pairs
// (cost/specialCost, strength/strengthText) carry exactly one populated side.
type RawEntry struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Subtype      string      `json:"subtype"`
	IsDefault    bool        `json:"isDefault"`
	Name         string      `json:"name"`
	Family       string      `json:"family,omitempty"`
	Description  string      `json:"description,omitempty"`
	Phase        string      `json:"phase,omitempty"`
	Cost         *int        `json:"cost"`
	SpecialCost  *string     `json:"specialCost"`
	Income       int         `json:"income"`
	Strength     *int        `json:"strength"`
	StrengthText *string     `json:"strengthText"`
	Target       string      `json:"target,omitempty"`
	Round        string      `json:"round,omitempty"`
	Requirements []string    `json:"requirements,omitempty"`
	Options      []RawOption `json:"options,omitempty"`
}

// RawOption is one card option in the exchange format.
type RawOption struct {
	ID         int    `json:"id"`
	Text       string `json:"text,omitempty"`
	Amount     *int   `json:"amount"`
	DiceSymbol string `json:"diceSymbol,omitempty"`
	DiceReq    []int  `json:"diceReq"`
}
