package domain

import (
	"reflect"
	"testing"
)

func TestRemoveCard(t *testing.T) {
	ids := []string{"a", "b", "a"}

	got, ok := RemoveCard(ids, "a")
	if !ok || !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("RemoveCard = %v/%v", got, ok)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "a"}) {
		t.Fatalf("input mutated: %v", ids)
	}

	if _, ok := RemoveCard(ids, "z"); ok {
		t.Fatalf("expected missing card to report false")
	}
}

func TestRemoveCards(t *testing.T) {
	got := RemoveCards([]string{"a", "b", "a", "c"}, []string{"a", "c"})
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("RemoveCards = %v", got)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := &GameState{
		Version:    3,
		Players:    []PlayerState{{ID: "u1", Hand: []string{"1"}, Table: []string{"2"}}},
		Market:     []string{"m1"},
		OrderDecks: map[string][]string{"1": {"o1"}},
	}

	c := s.Clone()
	c.Players[0].Hand[0] = "x"
	c.Market = append(c.Market, "m2")
	c.OrderDecks["1"][0] = "x"

	if s.Players[0].Hand[0] != "1" || len(s.Market) != 1 || s.OrderDecks["1"][0] != "o1" {
		t.Fatalf("clone aliases original: %+v", s)
	}
}

func TestViewForHidesOtherHands(t *testing.T) {
	s := &GameState{
		Players: []PlayerState{
			{ID: "u1", Hand: []string{"1", "2"}},
			{ID: "u2", Hand: []string{"3"}},
		},
		OrderDecks:   map[string][]string{"1": {"o1", "o2"}},
		BusinessDeck: []string{"b1"},
	}

	view := s.ViewFor("u1")
	if !reflect.DeepEqual(view.Players[0].Hand, []string{"1", "2"}) {
		t.Fatalf("viewer hand missing: %+v", view.Players[0])
	}
	if view.Players[1].Hand != nil || view.Players[1].HandCount != 1 {
		t.Fatalf("opponent hand leaked: %+v", view.Players[1])
	}
	if view.OrderDeckSizes["1"] != 2 || view.BusinessDeckSize != 1 {
		t.Fatalf("unexpected pile sizes: %+v", view)
	}
}

func TestParseFamily(t *testing.T) {
	if f, ok := ParseFamily("Rodzina corleone"); !ok || f != FamilyCorleone {
		t.Fatalf("ParseFamily = %s/%v", f, ok)
	}
	if _, ok := ParseFamily("Genovese"); ok {
		t.Fatalf("unknown family must not parse")
	}
}
