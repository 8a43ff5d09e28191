package domain

// SortField is the allow-list of fields an item listing may be sorted on.
type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByQuantity  SortField = "quantity"
	SortByCreatedAt SortField = "createdAt"
)

// ParseSortField resolves s against the allow-list. ok is false for any
// value outside it.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByName, SortByPrice, SortByQuantity, SortByCreatedAt:
		return SortField(s), true
	}
	return "", false
}

// SortDirection is ascending or descending.
type SortDirection int

const (
	Descending SortDirection = -1
	Ascending  SortDirection = 1
)

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// TextField names a field that supports substring matching.
type TextField string

const (
	TextName     TextField = "name"
	TextCategory TextField = "category"
)

// RangeField names a numeric field that supports range filtering.
type RangeField string

const (
	RangePrice    RangeField = "price"
	RangeQuantity RangeField = "quantity"
)

// Range is an inclusive numeric interval; a nil bound is open.
type Range struct {
	Min *float64
	Max *float64
}

// ItemQuery is the validated, bounded description of a listing request.
// Absent filters impose no constraint; present ones are AND-ed together.
type ItemQuery struct {
	TextFilters  map[TextField]string
	RangeFilters map[RangeField]Range
	Sort         SortField
	Direction    SortDirection
	Page         int
	Limit        int
}

// Skip is the number of matching records preceding the requested page.
func (q ItemQuery) Skip() int64 {
	if q.Page < 1 {
		return 0
	}
	return int64(q.Page-1) * int64(q.Limit)
}
