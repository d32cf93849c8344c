package domain

// Page size bounds for the trip list.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams selects one page of a list. Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from optional query values.
// Missing or non-positive values fall back to page 1 and DefaultPageLimit;
// Limit never exceeds MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Bounds returns the half-open slice range of the page within a list of
// total items. A page past the end yields an empty range.
func (p PaginationParams) Bounds(total int) (start, end int) {
	start = min((p.Page-1)*p.Limit, total)
	end = min(start+p.Limit, total)
	return start, end
}
