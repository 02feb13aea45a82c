// Package query normalizes pagination input for downstream catalog
// queries. The downstream services speak a mongo-style filter/sort
// dialect; the gateway only builds the descriptors, it never evaluates
// them.
package query

// Filter is a mongo-style constraint on downstream records.
type Filter map[string]any

// Sort maps a field to a direction, 1 ascending, -1 descending.
type Sort map[string]int

// SortKey selects a predefined ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
)

// CategoryAll selects every category. An omitted category is treated the
// same as CategoryAll.
const CategoryAll = "all"

// PerPage is fixed; the page number comes from the caller untouched.
const PerPage = 5

// ByCategory maps a category selector to a filter. Total and
// deterministic: "all" and the empty string yield the unconstrained
// filter, anything else an equality constraint on the category field.
func ByCategory(category string) Filter {
	if category == "" || category == CategoryAll {
		return Filter{}
	}
	return Filter{"category": category}
}

// BySort maps a sort key to a concrete descriptor. Fails closed: an
// unrecognized key yields insertion order rather than an undefined sort.
func BySort(k SortKey) Sort {
	switch k {
	case SortNewest:
		return Sort{"createdAt": -1}
	case SortOldest:
		return Sort{"createdAt": 1}
	case SortPriceAsc:
		return Sort{"price": 1}
	case SortPriceDesc:
		return Sort{"price": -1}
	case SortName:
		return Sort{"bookName": 1}
	default:
		return Sort{"_id": 1}
	}
}

// PaginationQuery is the wire shape of a paginated downstream query.
// Filter and Sort are always derived here; caller-supplied values are
// discarded.
type PaginationQuery struct {
	Category string  `json:"category,omitempty"`
	KSort    SortKey `json:"kSort,omitempty"`
	BookName string  `json:"bookName,omitempty"`
	Filter   Filter  `json:"filter"`
	Sort     Sort    `json:"sort"`
	Page     int     `json:"page"`
	PerPage  int     `json:"perPage"`
}

// NewPagination builds a normalized query. A supplied book name is ANDed
// with the category constraint as a case-sensitive substring match.
func NewPagination(category string, kSort SortKey, bookName string, page int) PaginationQuery {
	if page < 1 {
		page = 1
	}

	filter := ByCategory(category)
	if bookName != "" {
		filter["bookName"] = map[string]string{"$regex": bookName}
	}

	return PaginationQuery{
		Category: category,
		KSort:    kSort,
		BookName: bookName,
		Filter:   filter,
		Sort:     BySort(kSort),
		Page:     page,
		PerPage:  PerPage,
	}
}
