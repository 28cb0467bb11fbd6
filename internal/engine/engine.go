// Package engine implements an in-memory full-text search index: an
// inverted index over space-delimited words, TF-IDF ranked retrieval with
// required ("plus") and forbidden ("minus") query terms, stop-word
// filtering, and pluggable per-document predicates.
//
// The engine is single-writer, multi-reader: AddDocument, RemoveDocument,
// and duplicate removal must be serialized by the caller against each
// other and against all read operations (FindTopDocuments, MatchDocument,
// GetWordFrequencies). Concurrent reads are always safe against each
// other, including when FindTopDocuments itself runs with the Parallel
// execution policy.
package engine

// Engine is the external-facing search index.
type Engine struct {
	stop *stopWords
	ix   *index
}

// New constructs an Engine with the given immutable stop-word list and the
// default shard count (spec.md §4.5). Empty strings are discarded
// silently; a stop word containing a control byte fails construction with
// InvalidStopWordsError.
func New(stopWordList []string) (*Engine, error) {
	return NewWithShardCount(stopWordList, defaultShardCount)
}

// NewWithShardCount is New with an explicit shard count for the parallel
// scorer's sharded map (internal/config's engine.shard_count knob). A
// non-positive shardCount falls back to defaultShardCount.
func NewWithShardCount(stopWordList []string, shardCount int) (*Engine, error) {
	sw, err := newStopWords(stopWordList)
	if err != nil {
		return nil, err
	}
	if shardCount < 1 {
		shardCount = defaultShardCount
	}
	return &Engine{stop: sw, ix: newIndex(shardCount)}, nil
}

// AddDocument extends the index with a new document. text is tokenized by
// splitting on ASCII space; stop words are dropped. Fails with
// InvalidIDError (id < 0, or id already present) or InvalidWordError (a
// token contains a control byte) without mutating the index.
func (e *Engine) AddDocument(id int, text string, status DocumentStatus, ratings []int) error {
	return e.ix.add(id, text, status, ratings, e.stop)
}

// RemoveDocument deletes id from the index. Silent no-op if id is unknown.
// policy only affects how the posting-list scan over the document's own
// words is parallelized; it never changes the outcome.
func (e *Engine) RemoveDocument(id int, policy ExecutionPolicy) {
	if policy == Parallel {
		e.removeDocumentParallel(id)
		return
	}
	e.ix.remove(id)
}

// removeDocumentParallel mirrors RemoveDocument's sequential semantics but
// fans the per-word posting removal across goroutines, matching the C++
// original's std::for_each(par, ...) shape. The result is identical to the
// sequential path; id is still exclusive-access at this point, so no
// additional synchronization is required for the map deletes themselves
// beyond avoiding concurrent writes to the *same* posting list, which
// cannot happen because each goroutine handles a distinct word.
func (e *Engine) removeDocumentParallel(id int) {
	ix := e.ix
	if !ix.isLive(id) {
		return
	}
	words := make([]string, 0, len(ix.forward[id]))
	for w := range ix.forward[id] {
		words = append(words, w)
	}

	parallelForEach(words, func(w string) {
		if posting, ok := ix.inverted[w]; ok {
			delete(posting, id)
		}
	})

	delete(ix.forward, id)
	delete(ix.meta, id)
	delete(ix.liveIDs, id)
}

// GetDocumentCount returns the number of currently live documents.
func (e *Engine) GetDocumentCount() int {
	return e.ix.documentCount()
}

// GetWordFrequencies returns F[id], or an empty view if id is absent.
func (e *Engine) GetWordFrequencies(id int) map[string]float64 {
	return e.ix.wordFrequencies(id)
}

// DocumentIDs returns the live document ids in ascending order.
func (e *Engine) DocumentIDs() []int {
	return e.ix.sortedLiveIDs()
}

// FindTopDocuments runs a query with the default ACTUAL status filter,
// sequentially.
func (e *Engine) FindTopDocuments(rawQuery string) ([]Document, error) {
	return e.FindTopDocumentsPolicy(Sequential, rawQuery, byStatus(StatusActual))
}

// FindTopDocumentsStatus runs a query filtering on an explicit status,
// sequentially.
func (e *Engine) FindTopDocumentsStatus(rawQuery string, status DocumentStatus) ([]Document, error) {
	return e.FindTopDocumentsPolicy(Sequential, rawQuery, byStatus(status))
}

// FindTopDocumentsDefault runs a query with the default ACTUAL status
// filter under an explicit execution policy, letting callers (the CLI's
// config-driven default, for instance) choose Parallel without having to
// reach into the engine's unexported predicate helpers.
func (e *Engine) FindTopDocumentsDefault(policy ExecutionPolicy, rawQuery string) ([]Document, error) {
	return e.FindTopDocumentsPolicy(policy, rawQuery, byStatus(StatusActual))
}

// FindTopDocumentsPredicate runs a query filtering with a custom predicate,
// sequentially.
func (e *Engine) FindTopDocumentsPredicate(rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	return e.FindTopDocumentsPolicy(Sequential, rawQuery, predicate)
}

// FindTopDocumentsPolicy is the fully general entry point: explicit
// execution policy and predicate. All other FindTopDocuments* helpers
// delegate here, matching spec.md §6's overload set re-expressed as an
// explicit policy parameter per the REDESIGN FLAGS in §9.
func (e *Engine) FindTopDocumentsPolicy(policy ExecutionPolicy, rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	q, err := parseQuery(rawQuery, e.stop)
	if err != nil {
		return nil, err
	}
	docs := e.ix.findAllDocuments(q, predicate, policy)
	return sortAndTrimTop(docs), nil
}

// MatchDocument reports which of the query's plus-words appear in
// document id, and its status. If any minus-word of the query appears in
// the document, the matched list is empty (the document is excluded from
// FindTopDocuments but still "found" for matching purposes). Fails with
// NotFoundError if id is unknown, or with the parser's errors for a
// malformed query.
func (e *Engine) MatchDocument(rawQuery string, id int, policy ExecutionPolicy) ([]string, DocumentStatus, error) {
	if !e.ix.isLive(id) {
		return nil, 0, &NotFoundError{ID: id}
	}
	if policy == Parallel {
		return e.matchDocumentParallel(rawQuery, id)
	}
	return e.matchDocumentSequential(rawQuery, id)
}

func (e *Engine) matchDocumentSequential(rawQuery string, id int) ([]string, DocumentStatus, error) {
	q, err := parseQuery(rawQuery, e.stop)
	if err != nil {
		return nil, 0, err
	}
	status := e.ix.dataFor(id).status
	freqs := e.ix.wordFrequencies(id)

	for _, w := range q.minusWords {
		if _, ok := freqs[w]; ok {
			return []string{}, status, nil
		}
	}

	matched := make([]string, 0, len(q.plusWords))
	for _, w := range q.plusWords {
		if _, ok := freqs[w]; ok {
			matched = append(matched, w)
		}
	}
	return matched, status, nil
}

// matchDocumentParallel uses the duplicate-tolerant query parser; matched
// words may therefore appear more than once before being collapsed via
// sort+unique, matching the original's std::sort/std::unique pass.
func (e *Engine) matchDocumentParallel(rawQuery string, id int) ([]string, DocumentStatus, error) {
	q, err := parseQueryTolerant(rawQuery, e.stop)
	if err != nil {
		return nil, 0, err
	}
	status := e.ix.dataFor(id).status
	freqs := e.ix.wordFrequencies(id)

	for _, w := range q.minusWords {
		if _, ok := freqs[w]; ok {
			return []string{}, status, nil
		}
	}

	matched := make([]string, 0, len(q.plusWords))
	for _, w := range q.plusWords {
		if _, ok := freqs[w]; ok {
			matched = append(matched, w)
		}
	}
	matched = sortUnique(matched)
	if matched == nil {
		matched = []string{}
	}
	return matched, status, nil
}

func byStatus(status DocumentStatus) DocumentPredicate {
	return func(_ int, docStatus DocumentStatus, _ int) bool {
		return docStatus == status
	}
}
