package domain

// RemoveCard removes one occurrence of id from ids and returns the updated list.
// The second result is false when id was not present.
func RemoveCard(ids []string, id string) ([]string, bool) {
	for i, have := range ids {
		if have == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}

// RemoveCards removes the provided cards from a pile, honoring duplicates.
func RemoveCards(ids []string, toRemove []string) []string {
	if len(toRemove) == 0 || len(ids) == 0 {
		return ids
	}

	removeCounts := make(map[string]int, len(toRemove))
	for _, id := range toRemove {
		removeCounts[id]++
	}

	updated := make([]string, 0, len(ids))
	for _, id := range ids {
		if count, ok := removeCounts[id]; ok && count > 0 {
			removeCounts[id] = count - 1
			continue
		}
		updated = append(updated, id)
	}
	return updated
}

// ContainsCard reports whether id is in ids.
func ContainsCard(ids []string, id string) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}
