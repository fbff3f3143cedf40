package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosanostra/internal/domain"
)

func intp(n int) *int { return &n }
func strp(s string) *string { return &s }

func sampleEntries() []RawEntry {
	return []RawEntry{
		{ID: "1", Type: "Gangster", Name: "Vito", Family: "Rodzina Corleone", IsDefault: true, Strength: intp(3), Cost: intp(0)},
		{ID: "2", Type: "Interes", Subtype: "firma", Name: "Bakery", Cost: intp(400), Income: 100},
		{ID: "3", Type: "Rozkaz", Subtype: "atak", Name: "Hit", Round: "Runda 1", Cost: intp(0),
			Options: []RawOption{{ID: 1, Text: "Shoot", DiceSymbol: "⠊⠕", Amount: intp(200)}, {ID: 2, Text: "Retreat"}}},
		{ID: "4", Type: "Rozkaz", Name: "Deal", Round: "2", Cost: intp(0)},
		{ID: "5", Type: "Wpływ", Name: "Protection", Family: "Barzini", IsDefault: true, Cost: intp(0), Phase: "Faza akcji"},
		{ID: "6", Type: "Boss", Name: "Don", Cost: nil, SpecialCost: strp("X"), StrengthText: strp("?")},
	}
}

func TestLoadClassifiesEntries(t *testing.T) {
	cat, err := Load(sampleEntries())
	require.NoError(t, err)
	require.Equal(t, 6, cat.Len())

	vito, ok := cat.ByID("1")
	require.True(t, ok)
	assert.Equal(t, domain.CardGangster, vito.Type)
	assert.Equal(t, domain.FamilyCorleone, vito.Family)
	assert.Equal(t, domain.SubtypeNone, vito.Subtype)
	assert.Equal(t, domain.Numeric(3), vito.Strength)

	bakery, _ := cat.ByID("2")
	assert.Equal(t, domain.CardBusiness, bakery.Type)
	assert.Equal(t, "FIRMA", bakery.Subtype)
	assert.Equal(t, domain.Numeric(400), bakery.Cost)

	hit, _ := cat.ByID("3")
	assert.Equal(t, domain.CardOrder, hit.Type)
	assert.Equal(t, "1", hit.Round)
	require.Len(t, hit.Options, 2)
	assert.Equal(t, []int{2, 3}, hit.Options[0].DiceReq)
	assert.Equal(t, 200, hit.Options[0].Amount)
	assert.Nil(t, hit.Options[1].DiceReq)

	don, _ := cat.ByID("6")
	assert.Equal(t, domain.CardUnknown, don.Type)
	assert.Equal(t, domain.Textual("X"), don.Cost)
	assert.Equal(t, domain.Textual("?"), don.Strength)

	var fields []string
	for _, issue := range cat.Issues() {
		fields = append(fields, issue.CardID+":"+issue.Field)
	}
	assert.Contains(t, fields, "6:type")
}

func TestLoadRejectsDuplicateAndMissingIDs(t *testing.T) {
	_, err := Load([]RawEntry{{ID: "1"}, {ID: " 1 "}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = Load([]RawEntry{{ID: ""}})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestLoadCoercesBadFields(t *testing.T) {
	cat, err := Load([]RawEntry{{
		ID:      "9",
		Type:    "rozkaz",
		Family:  "Genovese",
		Cost:    intp(-5),
		Income:  -10,
		Options: []RawOption{{ID: 2, Amount: intp(0)}, {ID: 2}, {ID: 3}},
	}})
	require.NoError(t, err)

	card, _ := cat.ByID("9")
	assert.Equal(t, domain.Family(""), card.Family)
	assert.Equal(t, domain.Textual("-5"), card.Cost)
	assert.Equal(t, 0, card.Income)
	require.Len(t, card.Options, 2)
	assert.Equal(t, 1, card.Options[0].ID)
	assert.Equal(t, 2, card.Options[1].ID)
	assert.Zero(t, card.Options[0].Amount)
	assert.NotEmpty(t, cat.Issues())
}

func TestQueries(t *testing.T) {
	cat, err := Load(sampleEntries())
	require.NoError(t, err)

	assert.Len(t, cat.ByType(domain.CardOrder), 2)
	assert.Len(t, cat.ByFamily(domain.FamilyBarzini), 1)
	assert.Len(t, cat.ByRound("2"), 1)
	assert.Len(t, cat.Defaults(true), 2)
	assert.Len(t, cat.Defaults(false), 4)
	assert.Equal(t, []string{"1", "2"}, cat.Rounds())

	orders := cat.Filter(All(OfType(domain.CardOrder), InRound("1")))
	require.Len(t, orders, 1)
	assert.Equal(t, "3", orders[0].ID)

	named := cat.Filter(All(IsDefault, Named("Protection"), OfFamily(domain.FamilyBarzini)))
	require.Len(t, named, 1)
	assert.Equal(t, "5", named[0].ID)

	_, err = cat.Get("nope")
	assert.ErrorIs(t, err, domain.ErrReference)
}

func TestCheckState(t *testing.T) {
	cat, err := Load(sampleEntries())
	require.NoError(t, err)

	state := &domain.GameState{
		Players: []domain.PlayerState{{ID: "u1", Hand: []string{"3"}, Table: []string{"1"}}},
		Market:  []string{"2"},
	}
	require.NoError(t, cat.CheckState(state))

	state.Trash = []string{"404"}
	err = cat.CheckState(state)
	assert.ErrorIs(t, err, domain.ErrReference)
	assert.Contains(t, err.Error(), "404")
}

func TestNormalizeRound(t *testing.T) {
	tests := map[string]string{
		"Runda 2": "2",
		" 3 ":     "3",
		"01":      "1",
		"finał":   "finał",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeRound(in), "NormalizeRound(%q)", in)
	}
}
