package core

// Pagination is the paging portion of a query specification.
type Pagination struct {
	Page  int
	Limit int
}

// Clean coerces out-of-range values to their defaults: anything below 1
// (including values left at zero by a failed parse) falls back to page 1
// and defaultLimit.
func (p *Pagination) Clean(defaultLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
}

// Slice returns the half-open index range [start, end) selecting the current
// page out of total items. A page past the end yields an empty range.
func (p Pagination) Slice(total int) (start, end int) {
	start = (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

// TotalPages returns ceil(total/limit); 0 when total is 0.
func (p Pagination) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
