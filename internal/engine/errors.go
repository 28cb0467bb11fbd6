package engine

import "fmt"

// InvalidStopWordsError reports a stop word containing a control byte,
// discovered at construction time.
type InvalidStopWordsError struct {
	Word string
}

func (e *InvalidStopWordsError) Error() string {
	return fmt.Sprintf("invalid stop word %q: contains a control byte", e.Word)
}

// InvalidIDError reports an AddDocument call with a negative or
// already-present document id.
type InvalidIDError struct {
	ID     int
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid document id %d: %s", e.ID, e.Reason)
}

// InvalidWordError reports a document or query token containing a control
// byte.
type InvalidWordError struct {
	Word string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("word %q is invalid: contains a control byte", e.Word)
}

// InvalidQueryError reports a malformed query token (empty, bare "-", or
// leading "--").
type InvalidQueryError struct {
	Token string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("query token %q is invalid", e.Token)
}

// NotFoundError reports MatchDocument called against an unknown id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %d not found", e.ID)
}
