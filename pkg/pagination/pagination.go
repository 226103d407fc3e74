package pagination

// Offset pagination, the limit/offset scheme the receipts listing exposes.

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// OffsetParams represents input parameters for limit/offset pagination
type OffsetParams struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// DefaultOffsetParams returns default pagination values
func DefaultOffsetParams() OffsetParams {
	return OffsetParams{Limit: DefaultLimit}
}

// Valid reports whether the parameters are within the accepted ranges.
func (p OffsetParams) Valid() bool {
	return p.Limit >= 1 && p.Limit <= MaxLimit && p.Offset >= 0
}

// Pagination is the pagination metadata returned alongside a page of items
type Pagination struct {
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination creates a new Pagination response
func NewPagination(params OffsetParams, total int64) *Pagination {
	return &Pagination{
		Limit:   params.Limit,
		Offset:  params.Offset,
		Total:   total,
		HasNext: int64(params.Offset+params.Limit) < total,
		HasPrev: params.Offset > 0,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result. A nil slice is
// replaced by an empty one so that it encodes as [] rather than null.
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}
