// Package paginator groups an already-sorted, random-access sequence into
// fixed-size contiguous pages, the last of which may be shorter. It is an
// external collaborator to the search engine (spec.md §1/§6): the core
// never paginates its own results, callers do.
package paginator

// Paginate splits items into contiguous pages of at most pageSize
// elements each; the final page holds the remainder and may be shorter.
// An empty items slice yields no pages. Panics if pageSize <= 0, mirroring
// the original IteratorRange/Paginator template's implicit precondition.
func Paginate[T any](items []T, pageSize int) [][]T {
	if pageSize <= 0 {
		panic("paginator: pageSize must be positive")
	}
	if len(items) == 0 {
		return nil
	}

	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}
