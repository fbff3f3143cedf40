package domain

const (
	// MarketSize is the number of business cards the market holds when fully stocked.
	MarketSize = 4
	// OpeningHandSize is the number of order cards dealt to each player per round.
	OpeningHandSize = 4
	// MinPlayers is the smallest table a session can start with.
	MinPlayers = 1
	// MaxPlayers equals the number of families.
	MaxPlayers = 5
	// DieFaces bounds a single rolled die.
	DieFaces = 6
)
