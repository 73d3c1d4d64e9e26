// Package paginate slices in-memory lists into fixed-size pages. Paging is
// purely client side: the backend always returns full lists.
package paginate

import (
	"strconv"
	"strings"
)

// Page is one slice of a list plus the numbers needed to render a pager.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
}

func (p Page[T]) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Numbers lists 1..TotalPages for pager links.
func (p Page[T]) Numbers() []int {
	numbers := make([]int, p.TotalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

// TotalPages is ceil(total/perPage), or 0 when perPage is not positive.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Paginate returns items[(page-1)*perPage : page*perPage], bounded by the list
// length. Pages outside [1, TotalPages] are empty; they are not clamped.
// The returned Items never alias items.
func Paginate[T any](items []T, perPage, page int) Page[T] {
	result := Page[T]{
		Items:       []T{},
		CurrentPage: page,
		TotalPages:  TotalPages(len(items), perPage),
		TotalItems:  len(items),
		PerPage:     perPage,
	}
	if perPage <= 0 || page < 1 {
		return result
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return result
	}
	end := min(start+perPage, len(items))
	result.Items = append(result.Items, items[start:end]...)
	return result
}

// ParsePage reads a 1-based page number, falling back to 1 for blank or
// malformed input. Values past the last page are kept as-is.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Pager holds a list and the currently selected page.
type Pager[T any] struct {
	items       []T
	perPage     int
	currentPage int
}

func NewPager[T any](items []T, perPage int) *Pager[T] {
	return &Pager[T]{items: items, perPage: perPage, currentPage: 1}
}

func (p *Pager[T]) SetPage(page int) {
	p.currentPage = page
}

// SetItems swaps the underlying list without touching the current page.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
}

func (p *Pager[T]) CurrentPage() int {
	return p.currentPage
}

func (p *Pager[T]) TotalPages() int {
	return TotalPages(len(p.items), p.perPage)
}

func (p *Pager[T]) Page() Page[T] {
	return Paginate(p.items, p.perPage, p.currentPage)
}
