// Package requestqueue wraps an engine.Engine to record whether each
// search it performs produced any results, over a fixed-length sliding
// window — the request-history throttler spec.md §1 names as an external
// collaborator ("a request-history throttler that merely records calls in
// a sliding window").
package requestqueue

import (
	"container/list"

	"github.com/google/uuid"

	"github.com/devancy/search-server/internal/engine"
)

// minInDay is the window size: one entry per minute in a day, the same
// constant the original RequestQueue::min_in_day_ used.
const minInDay = 1440

// queryResult records one AddFindRequest call for the sliding-window
// statistics. RequestID is an enrichment over the original: each entry
// gets a fresh UUID. It is stored only; nothing outside this package can
// read it and nothing logs it.
type queryResult struct {
	RequestID uuid.UUID
	Query     string
	Empty     bool
}

// RequestQueue remembers the last minInDay AddFindRequest outcomes.
type RequestQueue struct {
	server *engine.Engine
	window *list.List // of queryResult, oldest at Front
}

// New wraps server with a fresh, empty request queue.
func New(server *engine.Engine) *RequestQueue {
	return &RequestQueue{server: server, window: list.New()}
}

// AddFindRequest runs FindTopDocuments with the default ACTUAL filter and
// records the outcome.
func (q *RequestQueue) AddFindRequest(rawQuery string) ([]engine.Document, error) {
	result, err := q.server.FindTopDocuments(rawQuery)
	q.push(rawQuery, result, err)
	return result, err
}

// AddFindRequestPolicy runs the default ACTUAL-filtered query under an
// explicit execution policy and records the outcome, letting a caller (the
// CLI, honoring its engine.default_parallel config) pick Parallel without
// bypassing the request-history recording AddFindRequest gives it.
func (q *RequestQueue) AddFindRequestPolicy(rawQuery string, policy engine.ExecutionPolicy) ([]engine.Document, error) {
	result, err := q.server.FindTopDocumentsDefault(policy, rawQuery)
	q.push(rawQuery, result, err)
	return result, err
}

// AddFindRequestStatus runs FindTopDocuments filtering on status and
// records the outcome.
func (q *RequestQueue) AddFindRequestStatus(rawQuery string, status engine.DocumentStatus) ([]engine.Document, error) {
	result, err := q.server.FindTopDocumentsStatus(rawQuery, status)
	q.push(rawQuery, result, err)
	return result, err
}

// AddFindRequestPredicate runs FindTopDocuments with a custom predicate and
// records the outcome.
func (q *RequestQueue) AddFindRequestPredicate(rawQuery string, predicate engine.DocumentPredicate) ([]engine.Document, error) {
	result, err := q.server.FindTopDocumentsPredicate(rawQuery, predicate)
	q.push(rawQuery, result, err)
	return result, err
}

// GetNoResultRequests returns how many entries currently in the window
// produced zero results. A failed query (parse error) counts as empty,
// matching the "produced any results" framing of the original.
func (q *RequestQueue) GetNoResultRequests() int {
	count := 0
	for e := q.window.Front(); e != nil; e = e.Next() {
		if e.Value.(queryResult).Empty {
			count++
		}
	}
	return count
}

func (q *RequestQueue) push(rawQuery string, result []engine.Document, err error) {
	if q.window.Len() >= minInDay {
		q.window.Remove(q.window.Front())
	}
	q.window.PushBack(queryResult{
		RequestID: uuid.New(),
		Query:     rawQuery,
		Empty:     err != nil || len(result) == 0,
	})
}
