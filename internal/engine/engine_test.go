package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario1WhiteCat mirrors spec.md §8 scenario S1: a small corpus of
// four documents, three ACTUAL and one BANNED, queried with a mix of
// plus-words, minus-words, and MatchDocument.
func TestScenario1WhiteCat(t *testing.T) {
	e, err := New([]string{"и", "в", "на"})
	require.NoError(t, err)

	require.NoError(t, e.AddDocument(0, "белый кот и модный ошейник", StatusActual, []int{8, -3}))
	require.NoError(t, e.AddDocument(1, "пушистый кот пушистый хвост", StatusActual, []int{7, 2, 7}))
	require.NoError(t, e.AddDocument(2, "ухоженный пёс выразительные глаза", StatusActual, []int{5, -12, 2, 1}))
	require.NoError(t, e.AddDocument(3, "ухоженный скворец евгений", StatusBanned, []int{9}))

	// Ratings are the integer-truncated (toward zero) mean of each
	// document's rating vector (spec.md §3).
	assert.Equal(t, 2, e.ix.dataFor(0).rating)
	assert.Equal(t, 5, e.ix.dataFor(1).rating)
	assert.Equal(t, -1, e.ix.dataFor(2).rating)
	assert.Equal(t, 9, e.ix.dataFor(3).rating)

	results, err := e.FindTopDocuments("пушистый ухоженный кот")
	require.NoError(t, err)
	require.Len(t, results, 3, "BANNED document 3 is excluded by the default ACTUAL filter")

	ids := make([]int, len(results))
	for i, d := range results {
		ids[i] = d.ID
	}
	// Document 1 carries both "пушистый" (exclusively) and "кот", so it
	// dominates. Documents 0 and 2 land within the relevance epsilon of
	// one another, so the higher-rated one (0, rating 2) sorts first.
	assert.Equal(t, []int{1, 0, 2}, ids)
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i-1].Relevance >= results[i].Relevance-relevanceEpsilon)
	}

	minusResults, err := e.FindTopDocuments("пушистый -кот")
	require.NoError(t, err)
	assert.Empty(t, minusResults, "document 1 is the only carrier of 'пушистый' but is excluded by the minus word 'кот'")

	matched0, status0, err := e.MatchDocument("пушистый -ошейник", 0, Sequential)
	require.NoError(t, err)
	assert.Empty(t, matched0)
	assert.Equal(t, StatusActual, status0)

	matched1, status1, err := e.MatchDocument("пушистый -ошейник", 1, Sequential)
	require.NoError(t, err)
	assert.Equal(t, []string{"пушистый"}, matched1)
	assert.Equal(t, StatusActual, status1)
}

// TestScenario4InvalidID mirrors spec.md §8 scenario S4.
func TestScenario4InvalidID(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)

	err = e.AddDocument(-1, "negative id", StatusActual, nil)
	var idErr *InvalidIDError
	require.ErrorAs(t, err, &idErr)

	require.NoError(t, e.AddDocument(1, "first", StatusActual, nil))
	err = e.AddDocument(1, "second", StatusActual, nil)
	require.ErrorAs(t, err, &idErr)
}

// TestScenario5InvalidWord mirrors spec.md §8 scenario S5.
func TestScenario5InvalidWord(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)

	err = e.AddDocument(4, "bad\x01word", StatusActual, nil)
	var wordErr *InvalidWordError
	require.ErrorAs(t, err, &wordErr)
	assert.False(t, e.ix.isLive(4), "a rejected AddDocument must not mutate the index")

	require.NoError(t, e.AddDocument(4, "good", StatusActual, nil))
	_, err = e.FindTopDocuments("bad\x01word")
	require.ErrorAs(t, err, &wordErr)
}

func TestNewRejectsInvalidStopWords(t *testing.T) {
	_, err := New([]string{"ok", "bad\x01"})
	var swErr *InvalidStopWordsError
	require.ErrorAs(t, err, &swErr)
}

func TestNewDiscardsEmptyStopWords(t *testing.T) {
	e, err := New([]string{"", "и", ""})
	require.NoError(t, err)
	assert.True(t, e.stop.contains("и"))
}

func TestEmptyQueryReturnsNoResults(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "anything here", StatusActual, nil))

	results, err := e.FindTopDocuments("")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestOnlyMinusWordsReturnsNoResults(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat dog", StatusActual, nil))

	results, err := e.FindTopDocuments("-cat")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDocumentAllStopWordsContributesNothing(t *testing.T) {
	e, err := New([]string{"the", "a"})
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "the a", StatusActual, []int{4, 6}))

	assert.Equal(t, 5, e.ix.dataFor(0).rating)
	results, err := e.FindTopDocumentsPredicate("the", func(int, DocumentStatus, int) bool { return true })
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEmptyRatingsVectorYieldsZeroRating(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat", StatusActual, nil))
	assert.Equal(t, 0, e.ix.dataFor(0).rating)
}

func TestFindTopDocumentsCapsAtFiveAndOrdersByRelevanceThenRating(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		require.NoError(t, e.AddDocument(i, "cat dog cat", StatusActual, []int{i}))
	}

	results, err := e.FindTopDocuments("cat")
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, d := range results {
		assert.GreaterOrEqual(t, d.Relevance, 0.0)
	}
	// All 8 documents have identical relevance (same tf, same idf), so the
	// tie-break on rating must pick the five highest-rated ids: 7..3.
	gotIDs := make([]int, len(results))
	for i, d := range results {
		gotIDs[i] = d.ID
	}
	assert.Equal(t, []int{7, 6, 5, 4, 3}, gotIDs)
}

func TestMatchDocumentUnknownIDFails(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	_, _, err = e.MatchDocument("cat", 42, Sequential)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestRemoveDocumentRestoresInvariants(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat dog", StatusActual, []int{3}))
	require.NoError(t, e.AddDocument(1, "cat fish", StatusActual, []int{4}))

	e.RemoveDocument(0, Sequential)
	assert.False(t, e.ix.isLive(0))
	assert.Equal(t, 1, e.GetDocumentCount())
	freqs := e.GetWordFrequencies(0)
	assert.Empty(t, freqs)

	// The stale posting for "cat" may retain document 1 only; document 0
	// must be gone from every posting list (invariant 4).
	for _, posting := range e.ix.inverted {
		_, present := posting[0]
		assert.False(t, present)
	}

	results, err := e.FindTopDocuments("cat")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

func TestRemoveDocumentParallelMatchesSequential(t *testing.T) {
	build := func() *Engine {
		e, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, e.AddDocument(0, "alpha beta gamma", StatusActual, []int{1}))
		require.NoError(t, e.AddDocument(1, "alpha beta", StatusActual, []int{2}))
		return e
	}

	seq := build()
	seq.RemoveDocument(0, Sequential)

	par := build()
	par.RemoveDocument(0, Parallel)

	assert.Equal(t, seq.ix.forward, par.ix.forward)
	assert.Equal(t, seq.ix.inverted, par.ix.inverted)
	assert.Equal(t, seq.ix.liveIDs, par.ix.liveIDs)
}

func TestRemoveDocumentUnknownIDIsNoop(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat", StatusActual, nil))
	e.RemoveDocument(99, Sequential)
	assert.Equal(t, 1, e.GetDocumentCount())
}

func TestAddThenRemoveRestoresState(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat dog", StatusActual, []int{1}))

	snapshotLive := len(e.ix.liveIDs)
	require.NoError(t, e.AddDocument(1, "cat dog", StatusActual, []int{2}))
	e.RemoveDocument(1, Sequential)

	assert.Equal(t, snapshotLive, len(e.ix.liveIDs))
	assert.Equal(t, 1, e.GetDocumentCount())
}

func TestForwardFrequenciesSumToOne(t *testing.T) {
	e, err := New([]string{"the"})
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "the cat sat on the mat", StatusActual, nil))

	sum := 0.0
	for _, tf := range e.GetWordFrequencies(0) {
		sum += tf
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestInvertedAndForwardAgree(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat dog cat", StatusActual, nil))
	require.NoError(t, e.AddDocument(1, "dog bird", StatusActual, nil))

	for id := range e.ix.liveIDs {
		for w, tf := range e.ix.wordFrequencies(id) {
			assert.Equal(t, tf, e.ix.inverted[w][id])
		}
	}
}

func TestDocumentIDsAscending(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	for _, id := range []int{5, 1, 3} {
		require.NoError(t, e.AddDocument(id, "word", StatusActual, nil))
	}
	assert.Equal(t, []int{1, 3, 5}, e.DocumentIDs())
}

func TestParallelDuplicatePlusWordAccumulatesPerOccurrence(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat dog", StatusActual, []int{1}))
	// A second document without "cat" keeps idf("cat") = ln(2) non-zero, so
	// a doubled contribution is distinguishable from a single one.
	require.NoError(t, e.AddDocument(1, "fish", StatusActual, []int{1}))

	seqResults, err := e.FindTopDocumentsPolicy(Sequential, "cat cat", byStatus(StatusActual))
	require.NoError(t, err)
	require.Len(t, seqResults, 1)

	q, err := parseQueryTolerant("cat cat", e.stop)
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "cat"}, q.plusWords)

	parDocs := e.ix.findAllDocumentsParallel(q, byStatus(StatusActual))
	require.Len(t, parDocs, 1)
	assert.InDelta(t, 2*seqResults[0].Relevance, parDocs[0].Relevance, 1e-9,
		"a duplicate plus-word must add its tf*idf contribution once per occurrence")
}

func TestNewWithShardCountAffectsParallelMapSizeNotResults(t *testing.T) {
	build := func(shardCount int) *Engine {
		e, err := NewWithShardCount(nil, shardCount)
		require.NoError(t, err)
		require.NoError(t, e.AddDocument(0, "cat dog", StatusActual, []int{1}))
		require.NoError(t, e.AddDocument(1, "cat fish", StatusActual, []int{2}))
		return e
	}

	e1 := build(1)
	assert.Equal(t, 1, e1.ix.shardCount)
	e32 := build(32)
	assert.Equal(t, 32, e32.ix.shardCount)

	r1, err := e1.FindTopDocumentsPolicy(Parallel, "cat", byStatus(StatusActual))
	require.NoError(t, err)
	r32, err := e32.FindTopDocumentsPolicy(Parallel, "cat", byStatus(StatusActual))
	require.NoError(t, err)
	assert.Equal(t, r1, r32, "shard count is a concurrency-contention knob only; it must never change scoring results")
}

func TestNewWithShardCountNonPositiveFallsBackToDefault(t *testing.T) {
	e, err := NewWithShardCount(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultShardCount, e.ix.shardCount)
}

func TestNewUsesDefaultShardCount(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultShardCount, e.ix.shardCount)
}

func TestComputeIDFGuardedAgainstZeroDocFreq(t *testing.T) {
	assert.False(t, math.IsInf(computeIDF(10, 10), 0))

	// computeIDF has no guard of its own; its callers skip a stale empty
	// posting list, which RemoveDocument leaves behind for "cat" here.
	e, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, e.AddDocument(0, "cat", StatusActual, nil))
	require.NoError(t, e.AddDocument(1, "dog", StatusActual, nil))
	e.RemoveDocument(0, Sequential)
	require.Contains(t, e.ix.inverted, "cat")
	require.Empty(t, e.ix.inverted["cat"])

	for _, policy := range []ExecutionPolicy{Sequential, Parallel} {
		results, err := e.FindTopDocumentsPolicy(policy, "cat dog", byStatus(StatusActual))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].ID)
		assert.False(t, math.IsInf(results[0].Relevance, 0))
		assert.False(t, math.IsNaN(results[0].Relevance))
	}
}
