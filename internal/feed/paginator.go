package feed

import (
	"strconv"

	"github.com/Kreyvi/hw05-final/internal/post"
)

// Page is one slice of a timeline plus the metadata navigation needs.
type Page struct {
	Items      []post.Post `json:"items"`
	Number     int         `json:"number"`
	TotalPages int         `json:"total_pages"`
	Range      []int       `json:"range"`
}

// NormalizePage maps a raw ?page= value to a positive page index.
// Missing, non-numeric and below-range values all become page 1; the
// upper bound is clamped later, once the total is known.
func NormalizePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate slices the sequence into pages of pageSize and serves the
// requested one. Page-index problems never error: out-of-range requests
// are clamped into [1, totalPages]. An empty sequence yields a single
// empty page.
func Paginate(seq post.Sequence, pageSize, requested int) (*Page, error) {
	total, err := seq.Count()
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	items, err := seq.Slice((number-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []post.Post{}
	}

	pageRange := make([]int, totalPages)
	for i := range pageRange {
		pageRange[i] = i + 1
	}

	return &Page{
		Items:      items,
		Number:     number,
		TotalPages: totalPages,
		Range:      pageRange,
	}, nil
}
