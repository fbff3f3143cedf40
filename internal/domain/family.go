package domain

import "strings"

// Family is one of the five fixed player factions.
type Family string

const (
	FamilyCorleone  Family = "Corleone"
	FamilyBarzini   Family = "Barzini"
	FamilyTattaglia Family = "Tattaglia"
	FamilyCuneo     Family = "Cuneo"
	FamilyStracci   Family = "Stracci"
)

// Families lists the factions in seating order: the Nth player to join gets Families[N].
var Families = []Family{
	FamilyCorleone,
	FamilyBarzini,
	FamilyTattaglia,
	FamilyCuneo,
	FamilyStracci,
}

// ParseFamily maps free text such as "Rodzina Corleone" onto a family.
func ParseFamily(s string) (Family, bool) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean == "" {
		return "", false
	}
	for _, f := range Families {
		if strings.Contains(clean, strings.ToLower(string(f))) {
			return f, true
		}
	}
	return "", false
}
