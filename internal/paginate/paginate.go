// Package paginate slices ordered result sets into fixed-size pages.
package paginate

import (
	"math"
	"strconv"
)

// DefaultSize is used when a non-positive page size is configured.
const DefaultSize = 10

// Paginator computes page windows for a fixed page size.
type Paginator struct {
	size int
}

// New creates a Paginator with the given page size.
func New(size int) Paginator {
	if size < 1 {
		size = DefaultSize
	}
	return Paginator{size: size}
}

// Window returns the limit and offset that select the given 1-based page.
// Page numbers whose offset would not fit in an int are clamped to the
// last representable window, which is always empty in practice.
func (p Paginator) Window(number int) (limit, offset int) {
	if number < 1 {
		number = 1
	}
	if number-1 > (math.MaxInt-p.size)/p.size {
		return p.size, math.MaxInt - p.size
	}
	return p.size, (number - 1) * p.size
}

// Page is one slice of an ordered sequence plus the size of the whole sequence.
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int
}

// NewPage wraps items that were already fetched for the given page number.
func NewPage[T any](p Paginator, items []T, number, total int) Page[T] {
	if number < 1 {
		number = 1
	}
	if len(items) > p.size {
		items = items[:p.size]
	}
	return Page[T]{Items: items, Number: number, Size: p.size, Total: total}
}

// Slice pages an in-memory sequence. A page past the end is empty.
func Slice[T any](p Paginator, all []T, number int) Page[T] {
	limit, offset := p.Window(number)
	if offset >= len(all) {
		return NewPage[T](p, nil, number, len(all))
	}
	end := min(offset+limit, len(all))
	return NewPage(p, all[offset:end], number, len(all))
}

// Len returns the number of items on this page.
func (pg Page[T]) Len() int {
	return len(pg.Items)
}

// NumPages returns the page count. An empty sequence still has one page.
func (pg Page[T]) NumPages() int {
	if pg.Total == 0 || pg.Size < 1 {
		return 1
	}
	return (pg.Total + pg.Size - 1) / pg.Size
}

func (pg Page[T]) HasNext() bool {
	return pg.Number < pg.NumPages()
}

func (pg Page[T]) HasPrevious() bool {
	return pg.Number > 1
}

func (pg Page[T]) NextNumber() int {
	return pg.Number + 1
}

func (pg Page[T]) PreviousNumber() int {
	return pg.Number - 1
}

// ParseNumber reads a page number from a query value. Anything that is not
// a positive integer is treated as the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
