// Package pagination derives page counts and slice boundaries from a
// total row count. Every listing view shares this one implementation.
package pagination

// DefaultPageSize is the fixed feed page size.
const DefaultPageSize = 10

// State tracks the current page against a known total.
// The zero value is not usable; construct with New.
type State struct {
	page     int
	pageSize int
	total    int
}

func New(pageSize int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &State{page: 1, pageSize: pageSize}
}

// TotalPages is max(1, ceil(total/pageSize)). An empty result set still
// has one (empty) page.
func (s *State) TotalPages() int {
	pages := (s.total + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (s *State) Page() int     { return s.page }
func (s *State) PageSize() int { return s.pageSize }
func (s *State) Total() int    { return s.total }

// SetTotal records a new total count and clamps the current page into
// [1, TotalPages], so a narrowed search never leaves the state pointing
// at an out-of-range page.
func (s *State) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	s.total = total
	s.clamp()
}

// SetPage moves to the requested page, clamped to valid bounds.
func (s *State) SetPage(page int) {
	s.page = page
	s.clamp()
}

// Reset returns to page 1. Called whenever the search text or category
// filter changes.
func (s *State) Reset() {
	s.page = 1
}

// Navigation actions are no-ops at their boundary.

func (s *State) First() { s.page = 1 }

func (s *State) Prev() {
	if s.page > 1 {
		s.page--
	}
}

func (s *State) Next() {
	if s.page < s.TotalPages() {
		s.page++
	}
}

func (s *State) Last() { s.page = s.TotalPages() }

// Offset is the half-open range start for the current page:
// [(page-1)*pageSize, page*pageSize).
func (s *State) Offset() int {
	return (s.page - 1) * s.pageSize
}

func (s *State) clamp() {
	if s.page < 1 {
		s.page = 1
	}
	if max := s.TotalPages(); s.page > max {
		s.page = max
	}
}

// ClampPage clamps a 1-based page into [1, max(1, ceil(total/pageSize))]
// without carrying state. The stateless companion to State.clamp for
// callers that already know the total.
func ClampPage(page, pageSize, total int) int {
	s := New(pageSize)
	s.total = total
	s.page = page
	s.clamp()
	return s.page
}

// TotalPages is the stateless form of State.TotalPages.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
