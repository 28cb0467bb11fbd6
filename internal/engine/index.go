package engine

import "sort"

// index is the central data model: the inverted map I (word -> docID -> tf),
// the forward map F (docID -> word -> tf) used for removal and duplicate
// detection, per-document metadata M, and the live id set L.
//
// index has no locking of its own: the single-writer, multi-reader
// contract (see §5 of the spec) relies on the engine's callers serializing
// writers externally, so only index's read paths run concurrently.
type index struct {
	inverted map[string]map[int]float64 // I
	forward  map[int]map[string]float64 // F
	meta     map[int]documentData       // M
	liveIDs  map[int]struct{}           // L, membership only; order derived on demand

	// shardCount sizes the shardedMap the parallel scorer builds per call
	// (scorer.go); configurable via engine.NewWithShardCount.
	shardCount int
}

func newIndex(shardCount int) *index {
	return &index{
		inverted:   make(map[string]map[int]float64),
		forward:    make(map[int]map[string]float64),
		meta:       make(map[int]documentData),
		liveIDs:    make(map[int]struct{}),
		shardCount: shardCount,
	}
}

// add inserts a new document. It fails with InvalidIDError if id < 0 or the
// id is already live, and with InvalidWordError if any token in text
// contains a control byte. On success I, F, M, and L are all updated; on
// failure nothing is mutated.
func (ix *index) add(id int, text string, status DocumentStatus, ratings []int, stop *stopWords) error {
	if id < 0 {
		return &InvalidIDError{ID: id, Reason: "negative id"}
	}
	if _, exists := ix.liveIDs[id]; exists {
		return &InvalidIDError{ID: id, Reason: "id already present"}
	}

	words := make([]string, 0, 8)
	for _, token := range splitIntoWords(text) {
		if token == "" {
			continue
		}
		if !isValidWord(token) {
			return &InvalidWordError{Word: token}
		}
		if stop.contains(token) {
			continue
		}
		words = append(words, token)
	}

	rating := computeAverageRating(ratings)

	if len(words) == 0 {
		ix.meta[id] = documentData{rating: rating, status: status}
		ix.liveIDs[id] = struct{}{}
		ix.forward[id] = make(map[string]float64)
		return nil
	}

	inv := 1.0 / float64(len(words))
	forwardFreqs := make(map[string]float64, len(words))
	for _, w := range words {
		forwardFreqs[w] += inv
	}
	for w, tf := range forwardFreqs {
		if ix.inverted[w] == nil {
			ix.inverted[w] = make(map[int]float64)
		}
		ix.inverted[w][id] = tf
	}

	ix.forward[id] = forwardFreqs
	ix.meta[id] = documentData{rating: rating, status: status}
	ix.liveIDs[id] = struct{}{}
	return nil
}

// remove deletes id from M, L, and F, and removes id from every posting
// list in I that contained it. A no-op if id is not live.
func (ix *index) remove(id int) {
	if _, exists := ix.liveIDs[id]; !exists {
		return
	}
	for w := range ix.forward[id] {
		if posting, ok := ix.inverted[w]; ok {
			delete(posting, id)
		}
	}
	delete(ix.forward, id)
	delete(ix.meta, id)
	delete(ix.liveIDs, id)
}

func (ix *index) documentCount() int {
	return len(ix.meta)
}

// wordFrequencies returns F[id], or an empty (non-nil) map when id is
// absent. Never allocates a copy of a present entry.
func (ix *index) wordFrequencies(id int) map[string]float64 {
	if freqs, ok := ix.forward[id]; ok {
		return freqs
	}
	return emptyWordFreqs
}

var emptyWordFreqs = map[string]float64{}

// sortedLiveIDs returns the live ids in ascending order. Live membership is
// a plain map for O(1) checks; ascending iteration is derived on demand,
// which is adequate for the small-to-medium collections this engine
// targets (see spec.md §1 scope).
func (ix *index) sortedLiveIDs() []int {
	ids := make([]int, 0, len(ix.liveIDs))
	for id := range ix.liveIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (ix *index) isLive(id int) bool {
	_, ok := ix.liveIDs[id]
	return ok
}

func (ix *index) dataFor(id int) documentData {
	return ix.meta[id]
}
