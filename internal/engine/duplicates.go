package engine

import "sort"

// RemoveDuplicates finds and removes documents whose word sets (ignoring
// frequencies) exactly match an earlier, lower-id document's, so that
// among any group of duplicates the numerically smallest id survives. For
// each removed id, onDuplicate is invoked with that id before removal
// proceeds — the injectable notification sink replacing the original's
// direct console write (spec.md §9 REDESIGN FLAGS).
func (e *Engine) RemoveDuplicates(onDuplicate func(id int)) {
	seen := make(map[string]struct{})
	var toRemove []int

	for _, id := range e.ix.sortedLiveIDs() {
		key := wordSetKey(e.ix.wordFrequencies(id))
		if _, exists := seen[key]; exists {
			if onDuplicate != nil {
				onDuplicate(id)
			}
			toRemove = append(toRemove, id)
			continue
		}
		seen[key] = struct{}{}
	}

	for _, id := range toRemove {
		e.ix.remove(id)
	}
}

// wordSetKey canonicalizes a document's word set into a value comparable
// for set-equality, independent of term frequency.
func wordSetKey(freqs map[string]float64) string {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Strings(words)

	// A NUL byte cannot appear in any valid word (control bytes are
	// rejected at ingest), so it is a safe, unambiguous join separator.
	size := 0
	for _, w := range words {
		size += len(w) + 1
	}
	buf := make([]byte, 0, size)
	for _, w := range words {
		buf = append(buf, w...)
		buf = append(buf, 0)
	}
	return string(buf)
}
