package app

import "strconv"

type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortLargest  SortKey = "largest"
	SortSmallest SortKey = "smallest"
	SortRandom   SortKey = "random"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20

	// RandomSampleCap bounds the candidate set used for random listing.
	// A fresh shuffle per page produces duplicates and gaps across pages,
	// so the random order is drawn as one capped sample and skip/limit is
	// applied inside it. For albums above the cap this is not a uniform
	// sample over the whole collection; it is a documented approximation.
	RandomSampleCap = 1000
)

type PageQuery struct {
	Sort  SortKey
	Page  int
	Limit int
}

// ParsePageQuery maps raw query parameters to a page plan. Absent or
// non-numeric page/limit fall back to the defaults; other values pass
// through untouched, including non-positive ones.
func ParsePageQuery(sort, page, limit string) PageQuery {
	q := PageQuery{Sort: SortKey(sort), Page: DefaultPage, Limit: DefaultLimit}
	switch q.Sort {
	case SortNewest, SortOldest, SortLargest, SortSmallest, SortRandom:
	default:
		q.Sort = SortRandom
	}
	if p, err := strconv.Atoi(page); err == nil && p != 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(limit); err == nil && l != 0 {
		q.Limit = l
	}
	return q
}

func (q PageQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// HasMore reports whether another page exists past the one returned.
// Total is always the full album count, never the sample size.
func (q PageQuery) HasMore(returned, total int) bool {
	return q.Skip()+returned < total
}
