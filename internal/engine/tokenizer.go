package engine

import "strings"

// splitIntoWords walks text and cuts it into words wherever a single ASCII
// space appears. Adjacent delimiters (or a leading/trailing space) yield
// empty words; callers filter or reject those as their own semantics
// require. Empty input yields zero words, not one empty word: there is no
// run of bytes to bound. No trimming, no whitespace collapsing beyond what
// splitting on a single byte naturally produces.
func splitIntoWords(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}

// isValidWord reports whether word contains no control bytes (< 0x20).
// An empty word is valid by this check alone; callers reject emptiness
// separately where it matters (query tokens do, document tokens are
// dropped silently).
func isValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 0x20 {
			return false
		}
	}
	return true
}
