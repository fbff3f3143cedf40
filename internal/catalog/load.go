package catalog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"cosanostra/internal/domain"
)

// maxOptions is the number of alternative options a card may print.
const maxOptions = 2

var (
	ErrMissingID   = fmt.Errorf("%w: card without id", domain.ErrValidation)
	ErrDuplicateID = fmt.Errorf("%w: duplicate card id", domain.ErrValidation)
)

// Load validates raw entries and builds the catalog. Only missing or duplicate
// ids fail the load; every other problem is coerced and recorded as an Issue.
func Load(entries []RawEntry) (*Catalog, error) {
	cards := make([]domain.CardDefinition, 0, len(entries))
	seen := make(map[string]int, len(entries))
	var issues []Issue

	for i, raw := range entries {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMissingID)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("entries %d and %d share id %q: %w", first, i, id, ErrDuplicateID)
		}
		seen[id] = i

		card, cardIssues := decodeEntry(raw)
		cards = append(cards, card)
		issues = append(issues, cardIssues...)
	}

	return newCatalog(cards, issues), nil
}

// ClassifyType maps the free-form type column onto the closed enum.
func ClassifyType(s string) domain.CardType {
	clean := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(clean, "gangster"):
		return domain.CardGangster
	case strings.Contains(clean, "interes"), strings.Contains(clean, "business"):
		return domain.CardBusiness
	case strings.Contains(clean, "wplyw"), strings.Contains(clean, "wpływ"), strings.Contains(clean, "influence"):
		return domain.CardInfluence
	case strings.Contains(clean, "rozkaz"), strings.Contains(clean, "order"):
		return domain.CardOrder
	default:
		return domain.CardUnknown
	}
}

// NormalizeRound reduces a round tag such as "Runda 2" to "2".
func NormalizeRound(tag string) string {
	tag = strings.TrimSpace(tag)
	start := strings.IndexFunc(tag, unicode.IsDigit)
	if start < 0 {
		return tag
	}
	end := start
	for end < len(tag) && tag[end] >= '0' && tag[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(tag[start:end])
	if err != nil {
		return tag
	}
	return strconv.Itoa(n)
}

func decodeEntry(raw RawEntry) (domain.CardDefinition, []Issue) {
	id := strings.TrimSpace(raw.ID)
	var issues []Issue
	note := func(field, format string, args ...any) {
		issues = append(issues, Issue{CardID: id, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	card := domain.CardDefinition{
		ID:          id,
		Type:        ClassifyType(raw.Type),
		Subtype:     strings.ToUpper(strings.TrimSpace(raw.Subtype)),
		IsDefault:   raw.IsDefault,
		Name:        strings.TrimSpace(raw.Name),
		Description: raw.Description,
		Phase:       strings.TrimSpace(raw.Phase),
		Target:      strings.TrimSpace(raw.Target),
		Round:       NormalizeRound(raw.Round),
		Income:      raw.Income,
	}
	if card.Type == domain.CardUnknown {
		note("type", "unrecognized type %q, using %s", raw.Type, domain.CardUnknown)
	}
	if card.Subtype == "" {
		card.Subtype = domain.SubtypeNone
	}
	if raw.Family != "" {
		if f, ok := domain.ParseFamily(raw.Family); ok {
			card.Family = f
		} else {
			note("family", "unknown family %q dropped", raw.Family)
		}
	}
	if card.Income < 0 {
		note("income", "negative income %d replaced by 0", card.Income)
		card.Income = 0
	}

	var msg string
	card.Cost, msg = decodeQuantity(raw.Cost, raw.SpecialCost)
	if msg != "" {
		note("cost", "%s", msg)
	}
	card.Strength, msg = decodeQuantity(raw.Strength, raw.StrengthText)
	if msg != "" {
		note("strength", "%s", msg)
	}

	for _, req := range raw.Requirements {
		if req = strings.TrimSpace(req); req != "" {
			card.Requirements = append(card.Requirements, req)
		}
	}

	rawOptions := raw.Options
	if len(rawOptions) > maxOptions {
		note("options", "%d options, keeping the first %d", len(rawOptions), maxOptions)
		rawOptions = rawOptions[:maxOptions]
	}
	for i, ro := range rawOptions {
		opt := domain.CardOption{
			ID:         ro.ID,
			Text:       strings.TrimSpace(ro.Text),
			DiceSymbol: strings.TrimSpace(ro.DiceSymbol),
		}
		if opt.ID != i+1 {
			note("options", "option id %d at position %d renumbered", ro.ID, i+1)
			opt.ID = i + 1
		}
		if ro.Amount != nil {
			if *ro.Amount > 0 {
				opt.Amount = *ro.Amount
			} else {
				note("options", "option %d amount %d dropped", opt.ID, *ro.Amount)
			}
		}
		opt.DiceReq = domain.DecodeDice(opt.DiceSymbol)
		if ro.DiceReq != nil && !reflect.DeepEqual(ro.DiceReq, opt.DiceReq) {
			note("options", "option %d diceReq %v replaced by %v decoded from %q", opt.ID, ro.DiceReq, opt.DiceReq, opt.DiceSymbol)
		}
		card.Options = append(card.Options, opt)
	}

	return card, issues
}

// decodeQuantity folds a numeric/text sibling pair into a Quantity. The text
// side wins when it is set; the importer writes 0 next to it, anything else is noted.
func decodeQuantity(n *int, text *string) (domain.Quantity, string) {
	if text != nil && strings.TrimSpace(*text) != "" {
		t := strings.TrimSpace(*text)
		if n != nil && *n != 0 {
			return domain.Textual(t), fmt.Sprintf("both %d and %q set, keeping text", *n, t)
		}
		return domain.Textual(t), ""
	}
	if n == nil {
		return domain.Numeric(0), ""
	}
	if *n < 0 {
		return domain.Textual(strconv.Itoa(*n)), fmt.Sprintf("negative value %d kept as text", *n)
	}
	return domain.Numeric(*n), ""
}
