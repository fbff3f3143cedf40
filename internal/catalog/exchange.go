package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"cosanostra/internal/domain"
)

// Encode converts a definition back into the exchange format.
// Load(Encode(c)) yields a definition equal to c field for field.
func Encode(c domain.CardDefinition) RawEntry {
	raw := RawEntry{
		ID:           c.ID,
		Type:         string(c.Type),
		Subtype:      c.Subtype,
		IsDefault:    c.IsDefault,
		Name:         c.Name,
		Family:       string(c.Family),
		Description:  c.Description,
		Phase:        c.Phase,
		Income:       c.Income,
		Target:       c.Target,
		Round:        c.Round,
		Requirements: append([]string(nil), c.Requirements...),
	}
	raw.Cost, raw.SpecialCost = encodeQuantity(c.Cost)
	raw.Strength, raw.StrengthText = encodeQuantity(c.Strength)

	for _, opt := range c.Options {
		ro := RawOption{
			ID:         opt.ID,
			Text:       opt.Text,
			DiceSymbol: opt.DiceSymbol,
			DiceReq:    append([]int(nil), opt.DiceReq...),
		}
		if opt.Amount > 0 {
			amount := opt.Amount
			ro.Amount = &amount
		}
		raw.Options = append(raw.Options, ro)
	}
	return raw
}

// Export returns the whole catalog in the exchange format.
func (c *Catalog) Export() []RawEntry {
	out := make([]RawEntry, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, Encode(card))
	}
	return out
}

// MarshalJSON writes the catalog as a list of exchange records.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Export())
}

// LoadJSON reads a catalog document (a JSON array of exchange records).
func LoadJSON(r io.Reader) (*Catalog, error) {
	var docs []map[string]any
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	entries, err := DecodeEntries(docs)
	if err != nil {
		return nil, err
	}
	return Load(entries)
}

// DecodeEntries converts loosely typed records into exchange entries. Numbers
// written as strings are accepted, and non-numeric cost or strength values are
// moved to their text sibling.
func DecodeEntries(docs []map[string]any) ([]RawEntry, error) {
	entries := make([]RawEntry, 0, len(docs))
	for i, doc := range docs {
		doc = normalizeDoc(doc)

		var entry RawEntry
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &entry,
		})
		if err != nil {
			return nil, fmt.Errorf("build decoder: %w", err)
		}
		if err := decoder.Decode(doc); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrValidation, i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func normalizeDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	moveText(out, "cost", "specialCost")
	moveText(out, "strength", "strengthText")
	if s, ok := out["isDefault"].(string); ok {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "Y", "YES", "TRUE", "1":
			out["isDefault"] = true
		default:
			out["isDefault"] = false
		}
	}
	return out
}

func moveText(doc map[string]any, numField, textField string) {
	s, ok := doc[numField].(string)
	if !ok {
		return
	}
	s = strings.TrimSpace(s)
	if _, err := strconv.Atoi(s); err == nil {
		return
	}
	delete(doc, numField)
	if s == "" {
		return
	}
	if existing, ok := doc[textField].(string); !ok || existing == "" {
		doc[textField] = s
	}
}

func encodeQuantity(q domain.Quantity) (*int, *string) {
	if text, ok := q.Text(); ok {
		return nil, &text
	}
	n, _ := q.Int()
	return &n, nil
}
