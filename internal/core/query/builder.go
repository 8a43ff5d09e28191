// Package query turns untrusted listing parameters into a bounded
// domain.ItemQuery. Malformed values are ignored rather than rejected so
// that noisy client input never breaks a listing.
package query

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	// maxPage keeps (page-1)*limit far away from integer overflow.
	maxPage = 1_000_000
	// maxTextLen bounds the size of substring patterns sent to the store.
	maxTextLen = 100
)

// Query parameter names.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamMinQty   = "minQty"
	ParamMaxQty   = "maxQty"
	ParamSort     = "sort"
	ParamOrder    = "order"
	ParamPage     = "page"
	ParamLimit    = "limit"
)

// Builder holds the page-size policy.
type Builder struct {
	DefaultLimit int
	MaxLimit     int
}

// NewBuilder returns a Builder, substituting package defaults for
// non-positive values and keeping DefaultLimit within MaxLimit.
func NewBuilder(defaultLimit, maxLimit int) Builder {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return Builder{DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

// Build uses the package default page-size policy.
func Build(raw map[string]string) domain.ItemQuery {
	return NewBuilder(DefaultLimit, MaxLimit).Build(raw)
}

// Build translates raw into a query specification. It never fails.
func (b Builder) Build(raw map[string]string) domain.ItemQuery {
	b = NewBuilder(b.DefaultLimit, b.MaxLimit)

	q := domain.ItemQuery{
		TextFilters:  map[domain.TextField]string{},
		RangeFilters: map[domain.RangeField]domain.Range{},
		Sort:         domain.SortByCreatedAt,
		Direction:    domain.Descending,
		Page:         1,
		Limit:        b.DefaultLimit,
	}

	if s := text(raw[ParamSearch]); s != "" {
		q.TextFilters[domain.TextName] = s
	}
	if s := text(raw[ParamCategory]); s != "" {
		q.TextFilters[domain.TextCategory] = s
	}

	if r, ok := rangeOf(raw[ParamMinPrice], raw[ParamMaxPrice]); ok {
		q.RangeFilters[domain.RangePrice] = r
	}
	if r, ok := rangeOf(raw[ParamMinQty], raw[ParamMaxQty]); ok {
		q.RangeFilters[domain.RangeQuantity] = r
	}

	if f, ok := domain.ParseSortField(strings.TrimSpace(raw[ParamSort])); ok {
		q.Sort = f
	}
	if raw[ParamOrder] == "asc" {
		q.Direction = domain.Ascending
	}

	if n, ok := integer(raw[ParamPage]); ok {
		q.Page = int(max(1, min(n, maxPage)))
	}
	if n, ok := integer(raw[ParamLimit]); ok && n >= 1 {
		q.Limit = int(min(n, int64(b.MaxLimit)))
	}

	return q
}

// FromValues flattens URL query values, keeping the first value of each key.
func FromValues(v url.Values) map[string]string {
	out := make(map[string]string, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			out[k] = vals[0]
		}
	}
	return out
}

func text(s string) string {
	s = strings.TrimSpace(s)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	if utf8.RuneCountInString(s) > maxTextLen {
		s = string([]rune(s)[:maxTextLen])
	}
	return s
}

func rangeOf(minRaw, maxRaw string) (domain.Range, bool) {
	var r domain.Range
	if v, ok := nonNegative(minRaw); ok {
		r.Min = &v
	}
	if v, ok := nonNegative(maxRaw); ok {
		r.Max = &v
	}
	return r, r.Min != nil || r.Max != nil
}

func nonNegative(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// integer parses a base-10 integer, saturating values that overflow int64.
func integer(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}
