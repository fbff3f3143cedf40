package catalog

import "cosanostra/internal/domain"

// Predicate selects catalog entries.
type Predicate func(domain.CardDefinition) bool

// OfType matches cards of type t.
func OfType(t domain.CardType) Predicate {
	return func(c domain.CardDefinition) bool { return c.Type == t }
}

// InRound matches cards tagged with the given round tag ("" matches untagged cards).
func InRound(tag string) Predicate {
	return func(c domain.CardDefinition) bool { return c.Round == tag }
}

// OfFamily matches cards of family f.
func OfFamily(f domain.Family) Predicate {
	return func(c domain.CardDefinition) bool { return c.Family == f }
}

// IsDefault matches starter-kit cards.
func IsDefault(c domain.CardDefinition) bool {
	return c.IsDefault
}

// NonDefault matches cards that belong to shuffled decks.
func NonDefault(c domain.CardDefinition) bool {
	return !c.IsDefault
}

// Named matches cards whose name is one of names.
func Named(names ...string) Predicate {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(c domain.CardDefinition) bool { return set[c.Name] }
}

// All matches cards accepted by every predicate.
func All(preds ...Predicate) Predicate {
	return func(c domain.CardDefinition) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}
