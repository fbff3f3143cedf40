// Package deck partitions the catalog into draw piles and shuffles them.
package deck

import (
	"math/rand"

	"cosanostra/internal/catalog"
	"cosanostra/internal/domain"
)

// UntaggedRound is the order pile key for orders without a round tag.
// Those orders may be drawn in any round once the round's own pile is empty.
const UntaggedRound = ""

// Decks are the shuffled piles a session starts with.
type Decks struct {
	Orders    map[string][]string
	Business  []string
	Influence []string
}

// Shuffle returns a uniformly permuted copy of ids. The input is left untouched.
func Shuffle(rng *rand.Rand, ids []string) []string {
	out := append([]string(nil), ids...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Partition returns the ids of the cards matching pred, in catalog order.
func Partition(cat *catalog.Catalog, pred catalog.Predicate) []string {
	cards := cat.Filter(pred)
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// Build shuffles one order pile per round tag, holding every ORDER card of the
// catalog, plus the non-default business and influence decks.
func Build(cat *catalog.Catalog, rng *rand.Rand) Decks {
	decks := Decks{Orders: make(map[string][]string)}

	tags := append([]string{UntaggedRound}, cat.Rounds()...)
	for _, tag := range tags {
		pile := Partition(cat, catalog.All(catalog.OfType(domain.CardOrder), catalog.InRound(tag)))
		if len(pile) == 0 {
			continue
		}
		decks.Orders[tag] = Shuffle(rng, pile)
	}

	decks.Business = Shuffle(rng, Partition(cat, catalog.All(catalog.OfType(domain.CardBusiness), catalog.NonDefault)))
	decks.Influence = Shuffle(rng, Partition(cat, catalog.All(catalog.OfType(domain.CardInfluence), catalog.NonDefault)))
	return decks
}

// Draw takes up to n ids from the front of pile. rest shares no memory with drawn.
func Draw(pile []string, n int) (drawn, rest []string) {
	if n > len(pile) {
		n = len(pile)
	}
	if n <= 0 {
		return nil, pile
	}
	drawn = append([]string(nil), pile[:n]...)
	rest = append([]string(nil), pile[n:]...)
	return drawn, rest
}

// DrawOrders draws n orders for the given round, topping up from the untagged
// pile when the round pile runs out. The piles map is updated in place.
func DrawOrders(piles map[string][]string, round string, n int) []string {
	drawn, rest := Draw(piles[round], n)
	setPile(piles, round, rest)
	if missing := n - len(drawn); missing > 0 && round != UntaggedRound {
		extra, rest := Draw(piles[UntaggedRound], missing)
		setPile(piles, UntaggedRound, rest)
		drawn = append(drawn, extra...)
	}
	return drawn
}

func setPile(piles map[string][]string, tag string, ids []string) {
	if _, ok := piles[tag]; !ok && len(ids) == 0 {
		return
	}
	piles[tag] = ids
}
