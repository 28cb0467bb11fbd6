package engine

import "sort"

// query holds the parsed plus/minus word sets of a search request.
type query struct {
	plusWords  []string
	minusWords []string
}

// queryWord is the result of classifying a single raw token.
type queryWord struct {
	word    string
	isMinus bool
	isStop  bool
}

// parseQueryWord classifies one whitespace-delimited token: a leading '-'
// marks it as a minus word, after which the remainder must be non-empty and
// must not itself start with '-'. The word (sans sign) must contain no
// control byte.
func parseQueryWord(token string, stop *stopWords) (queryWord, error) {
	if token == "" {
		return queryWord{}, &InvalidQueryError{Token: token}
	}
	isMinus := false
	word := token
	if token[0] == '-' {
		isMinus = true
		word = token[1:]
	}
	if word == "" || word[0] == '-' {
		return queryWord{}, &InvalidQueryError{Token: token}
	}
	if !isValidWord(word) {
		return queryWord{}, &InvalidWordError{Word: word}
	}
	return queryWord{word: word, isMinus: isMinus, isStop: stop.contains(word)}, nil
}

// parseQuery is the canonical parser: it deduplicates and sorts both word
// sets, giving a deterministic Query suitable for sequential scoring and
// for MatchDocument's sequential variant.
func parseQuery(text string, stop *stopWords) (query, error) {
	var q query
	for _, token := range splitIntoWords(text) {
		qw, err := parseQueryWord(token, stop)
		if err != nil {
			return query{}, err
		}
		if qw.isStop {
			continue
		}
		if qw.isMinus {
			q.minusWords = append(q.minusWords, qw.word)
		} else {
			q.plusWords = append(q.plusWords, qw.word)
		}
	}
	q.plusWords = sortUnique(q.plusWords)
	q.minusWords = sortUnique(q.minusWords)
	return q, nil
}

// parseQueryTolerant is the parallel-oriented variant: it preserves
// duplicate tokens instead of deduplicating. Its only caller is
// matchDocumentParallel, which collapses repeated matches via sortUnique;
// FindTopDocumentsPolicy parses with parseQuery under both policies.
func parseQueryTolerant(text string, stop *stopWords) (query, error) {
	var q query
	for _, token := range splitIntoWords(text) {
		qw, err := parseQueryWord(token, stop)
		if err != nil {
			return query{}, err
		}
		if qw.isStop {
			continue
		}
		if qw.isMinus {
			q.minusWords = append(q.minusWords, qw.word)
		} else {
			q.plusWords = append(q.plusWords, qw.word)
		}
	}
	return q, nil
}

func sortUnique(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	sort.Strings(words)
	out := words[:1]
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
