package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

var textFields = map[domain.TextField]string{
	domain.TextName:     "name",
	domain.TextCategory: "category",
}

var rangeFields = map[domain.RangeField]string{
	domain.RangePrice:    "price",
	domain.RangeQuantity: "quantity",
}

var sortFields = map[domain.SortField]string{
	domain.SortByName:      "name",
	domain.SortByPrice:     "price",
	domain.SortByQuantity:  "quantity",
	domain.SortByCreatedAt: "created_at",
}

// itemFilter renders q's filters as a Mongo predicate. Text patterns are
// matched literally as case-insensitive substrings.
func itemFilter(q domain.ItemQuery) bson.M {
	filter := bson.M{}

	for f, pattern := range q.TextFilters {
		field, ok := textFields[f]
		if !ok || pattern == "" {
			continue
		}
		filter[field] = primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"}
	}

	for f, r := range q.RangeFilters {
		field, ok := rangeFields[f]
		if !ok {
			continue
		}
		bounds := bson.M{}
		if r.Min != nil {
			bounds["$gte"] = *r.Min
		}
		if r.Max != nil {
			bounds["$lte"] = *r.Max
		}
		if len(bounds) > 0 {
			filter[field] = bounds
		}
	}

	return filter
}

// itemSort orders by the requested field, then by _id in the same
// direction so that pages never overlap.
func itemSort(q domain.ItemQuery) bson.D {
	field, ok := sortFields[q.Sort]
	if !ok {
		field = sortFields[domain.SortByCreatedAt]
	}
	dir := int(q.Direction)
	if dir != int(domain.Ascending) {
		dir = int(domain.Descending)
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}
