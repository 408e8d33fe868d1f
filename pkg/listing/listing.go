// Package listing turns raw query parameters into page descriptors and sort
// clauses shared by every listing endpoint. Parsing is deterministic:
// identical inputs always produce identical output, so repeated calls page
// through the same result set.
package listing

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/connectchain/admin-api/internal/apperr"
)

const (
	// MaxLimit is the hard cap on page size across every listing surface
	MaxLimit    = 100
	defaultPage = 1
)

// Page is a 1-indexed page descriptor
type Page struct {
	Number int
	Limit  int
}

// Offset returns the row offset for the page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pages returns the total page count for a given total row count
func (p Page) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return pages
}

// Sort is an allow-listed sort clause
type Sort struct {
	Field string
	Desc  bool
}

// OrderClause renders the sort as a SQL ORDER BY fragment
func (s Sort) OrderClause() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return s.Field + " " + dir
}

// Options configures parsing for one listing surface
type Options struct {
	DefaultLimit int
	// AllowedSorts maps the external sort key to the internal column name.
	AllowedSorts map[string]string
	DefaultSort  string
}

// ParsePage extracts the page descriptor from raw query parameters
func ParsePage(values url.Values, opts Options) Page {
	page := defaultPage
	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page = n
		}
	}

	limit := opts.DefaultLimit
	if limit < 1 {
		limit = 10
	}
	if raw := values.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Page{Number: page, Limit: limit}
}

// ParseSort extracts the sort clause, falling back to the surface default.
// Unknown sort fields are a validation error rather than silently ignored.
func ParseSort(values url.Values, opts Options) (Sort, error) {
	field := values.Get("sortBy")
	if field == "" {
		field = opts.DefaultSort
	}

	column, ok := opts.AllowedSorts[field]
	if !ok {
		return Sort{}, apperr.Validation("unsupported sort field %q", field)
	}

	desc := strings.EqualFold(values.Get("sortDir"), "desc")
	return Sort{Field: column, Desc: desc}, nil
}

// ParseDateRange extracts an inclusive created-at range from startDate and
// endDate parameters (YYYY-MM-DD). The end date is extended to end of day.
func ParseDateRange(values url.Values) (from, to *time.Time, err error) {
	if raw := values.Get("startDate"); raw != "" {
		t, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return nil, nil, apperr.Validation("invalid startDate %q, expected YYYY-MM-DD", raw)
		}
		from = &t
	}
	if raw := values.Get("endDate"); raw != "" {
		t, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return nil, nil, apperr.Validation("invalid endDate %q, expected YYYY-MM-DD", raw)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, apperr.Validation("startDate must not be after endDate")
	}
	return from, to, nil
}

// ParseBool extracts an optional boolean filter ("true"/"false")
func ParseBool(values url.Values, key string) *bool {
	switch strings.ToLower(values.Get(key)) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// ParseUint extracts an optional numeric foreign-key filter
func ParseUint(values url.Values, key string) (*uint, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperr.Validation("invalid %s %q", key, raw)
	}
	v := uint(n)
	return &v, nil
}
