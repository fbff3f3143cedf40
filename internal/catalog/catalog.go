// Package catalog holds the immutable card table every session is built from.
//
// A Catalog is created once by Load and is safe for concurrent readers
// without locking: nothing mutates it after construction.
package catalog

import (
	"fmt"
	"sort"
	"strconv"

	"cosanostra/internal/domain"
)

// Issue records a coercion applied to an entry while loading.
type Issue struct {
	CardID  string
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("card %s: %s: %s", i.CardID, i.Field, i.Message)
}

// Catalog is the read-only table of card definitions in declaration order.
type Catalog struct {
	cards    []domain.CardDefinition
	index    map[string]int
	byType   map[domain.CardType][]int
	byFamily map[domain.Family][]int
	byRound  map[string][]int
	issues   []Issue
}

func newCatalog(cards []domain.CardDefinition, issues []Issue) *Catalog {
	c := &Catalog{
		cards:    cards,
		index:    make(map[string]int, len(cards)),
		byType:   make(map[domain.CardType][]int),
		byFamily: make(map[domain.Family][]int),
		byRound:  make(map[string][]int),
		issues:   issues,
	}
	for i, card := range cards {
		c.index[card.ID] = i
		c.byType[card.Type] = append(c.byType[card.Type], i)
		if card.Family != "" {
			c.byFamily[card.Family] = append(c.byFamily[card.Family], i)
		}
		if card.Round != "" {
			c.byRound[card.Round] = append(c.byRound[card.Round], i)
		}
	}
	return c
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// ByID returns the card with the given id.
func (c *Catalog) ByID(id string) (domain.CardDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.CardDefinition{}, false
	}
	return c.cards[i], true
}

// Get is ByID with a reference error for unknown ids.
func (c *Catalog) Get(id string) (domain.CardDefinition, error) {
	card, ok := c.ByID(id)
	if !ok {
		return domain.CardDefinition{}, fmt.Errorf("%w: %q", domain.ErrReference, id)
	}
	return card, nil
}

// All returns every card in declaration order.
func (c *Catalog) All() []domain.CardDefinition {
	return append([]domain.CardDefinition(nil), c.cards...)
}

// ByType returns the cards of type t.
func (c *Catalog) ByType(t domain.CardType) []domain.CardDefinition {
	return c.pick(c.byType[t])
}

// ByFamily returns the cards that belong to family f.
func (c *Catalog) ByFamily(f domain.Family) []domain.CardDefinition {
	return c.pick(c.byFamily[f])
}

// ByRound returns the cards tagged with the given round tag.
func (c *Catalog) ByRound(tag string) []domain.CardDefinition {
	return c.pick(c.byRound[tag])
}

// Defaults returns the starter-kit cards (isDefault) or the deck cards (!isDefault).
func (c *Catalog) Defaults(isDefault bool) []domain.CardDefinition {
	return c.Filter(func(card domain.CardDefinition) bool { return card.IsDefault == isDefault })
}

// Filter returns the cards matching pred in declaration order.
func (c *Catalog) Filter(pred Predicate) []domain.CardDefinition {
	var out []domain.CardDefinition
	for _, card := range c.cards {
		if pred(card) {
			out = append(out, card)
		}
	}
	return out
}

// Rounds returns the distinct round tags, numeric tags first in numeric order.
func (c *Catalog) Rounds() []string {
	tags := make([]string, 0, len(c.byRound))
	for tag := range c.byRound {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		a, errA := strconv.Atoi(tags[i])
		b, errB := strconv.Atoi(tags[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return tags[i] < tags[j]
		}
	})
	return tags
}

// Issues returns the coercions applied while loading.
func (c *Catalog) Issues() []Issue {
	return append([]Issue(nil), c.issues...)
}

// CheckIDs fails with a reference error naming the first unknown id.
func (c *Catalog) CheckIDs(ids ...string) error {
	for _, id := range ids {
		if _, ok := c.index[id]; !ok {
			return fmt.Errorf("%w: %q", domain.ErrReference, id)
		}
	}
	return nil
}

// CheckState verifies that every id referenced by s exists in the catalog.
func (c *Catalog) CheckState(s *domain.GameState) error {
	return c.CheckIDs(s.CardIDs()...)
}

func (c *Catalog) pick(idx []int) []domain.CardDefinition {
	out := make([]domain.CardDefinition, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.cards[i])
	}
	return out
}
