package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

func ptr(v float64) *float64 { return &v }

func TestItemFilter_Empty(t *testing.T) {
	if f := itemFilter(domain.ItemQuery{}); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestItemFilter_TextIsEscaped(t *testing.T) {
	f := itemFilter(domain.ItemQuery{
		TextFilters: map[domain.TextField]string{
			domain.TextName:     "a.*b(",
			domain.TextCategory: "Tools",
		},
	})

	re, ok := f["name"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex for name, got %T", f["name"])
	}
	if re.Pattern != `a\.\*b\(` {
		t.Errorf("expected escaped pattern, got %q", re.Pattern)
	}
	if re.Options != "i" {
		t.Errorf("expected case-insensitive option, got %q", re.Options)
	}
	if cat := f["category"].(primitive.Regex); cat.Pattern != "Tools" {
		t.Errorf("category: got %q", cat.Pattern)
	}
}

func TestItemFilter_Ranges(t *testing.T) {
	f := itemFilter(domain.ItemQuery{
		RangeFilters: map[domain.RangeField]domain.Range{
			domain.RangePrice:    {Min: ptr(5), Max: ptr(20)},
			domain.RangeQuantity: {Max: ptr(3)},
		},
	})

	price, ok := f["price"].(bson.M)
	if !ok {
		t.Fatalf("expected price bounds, got %T", f["price"])
	}
	if price["$gte"] != 5.0 || price["$lte"] != 20.0 {
		t.Errorf("price bounds: got %v", price)
	}

	qty := f["quantity"].(bson.M)
	if _, ok := qty["$gte"]; ok {
		t.Errorf("open lower bound must be omitted, got %v", qty)
	}
	if qty["$lte"] != 3.0 {
		t.Errorf("quantity upper bound: got %v", qty["$lte"])
	}
}

func TestItemFilter_EmptyRangeIsSkipped(t *testing.T) {
	f := itemFilter(domain.ItemQuery{
		RangeFilters: map[domain.RangeField]domain.Range{domain.RangePrice: {}},
	})
	if _, ok := f["price"]; ok {
		t.Fatalf("expected no price constraint, got %v", f)
	}
}

func TestItemSort(t *testing.T) {
	cases := []struct {
		q    domain.ItemQuery
		want bson.D
	}{
		{
			domain.ItemQuery{Sort: domain.SortByCreatedAt, Direction: domain.Descending},
			bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			domain.ItemQuery{Sort: domain.SortByPrice, Direction: domain.Ascending},
			bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			domain.ItemQuery{Sort: "password"},
			bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		},
	}
	for _, tc := range cases {
		got := itemSort(tc.q)
		if len(got) != len(tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.q, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%+v: element %d expected %v, got %v", tc.q, i, tc.want[i], got[i])
			}
		}
	}
}
