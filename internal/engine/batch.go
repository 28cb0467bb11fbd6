package engine

import "sync"

// ProcessQueries runs FindTopDocuments on each query in parallel — one
// goroutine per query — preserving input order in the returned slice.
// Matches spec.md §4.8/§8: the result is identical to running
// FindTopDocuments sequentially over each query, in order.
func ProcessQueries(e *Engine, queries []string) ([][]Document, []error) {
	results := make([][]Document, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			docs, err := e.FindTopDocuments(q)
			results[i] = docs
			errs[i] = err
		}(i, q)
	}
	wg.Wait()
	return results, errs
}

// ProcessQueriesJoined concatenates ProcessQueries' per-query result lists
// in input order into one flat sequence.
func ProcessQueriesJoined(e *Engine, queries []string) ([]Document, []error) {
	perQuery, errs := ProcessQueries(e, queries)
	total := 0
	for _, docs := range perQuery {
		total += len(docs)
	}
	out := make([]Document, 0, total)
	for _, docs := range perQuery {
		out = append(out, docs...)
	}
	return out, errs
}
