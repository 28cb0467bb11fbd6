package engine

// stopWords is an immutable set of words discarded at ingest and query
// time. Built once at engine construction.
type stopWords struct {
	set map[string]struct{}
}

// newStopWords validates and stores the given words. Empty strings are
// discarded silently; any word containing a control byte fails
// construction with InvalidStopWordsError.
func newStopWords(words []string) (*stopWords, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if !isValidWord(w) {
			return nil, &InvalidStopWordsError{Word: w}
		}
		set[w] = struct{}{}
	}
	return &stopWords{set: set}, nil
}

func (s *stopWords) contains(word string) bool {
	_, ok := s.set[word]
	return ok
}
