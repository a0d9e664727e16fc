// Package query turns list request parameters into a condition descriptor that
// the repository layer renders into SQL.
//
// Every configured filter whose parameter is present contributes a predicate,
// and predicates are AND-combined in configuration order. Earlier versions of
// the admin API let the last supplied filter replace all others.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"cms-admin/internal/apperrors"
)

const (
	DefaultCurrentPage = 1
	DefaultPageSize    = 10
)

// MatchKind selects how a filter value is compared with the column
type MatchKind int

const (
	Exact MatchKind = iota
	Contains
)

// Coercion converts the raw query string before comparison
type Coercion int

const (
	Identity Coercion = iota
	Boolean
	Numeric
)

// Filter describes one filterable query parameter of a resource
type Filter struct {
	Param  string
	Column string
	Match  MatchKind
	Coerce Coercion
}

// Predicate is a single column comparison
type Predicate struct {
	Column string
	Match  MatchKind
	Value  any
}

// Order is a sort key
type Order struct {
	Column string
	Desc   bool
}

// Pagination holds the page window of a list request
type Pagination struct {
	CurrentPage int
	PageSize    int
	Offset      int
}

// Condition is the filter + sort + pagination descriptor for a list query
type Condition struct {
	Where []Predicate
	Order []Order
	Page  Pagination
}

// Build maps query parameters onto a Condition using the resource's filters.
// Results are ordered by id, newest first.
func Build(params url.Values, filters []Filter) (Condition, error) {
	cond := Condition{
		Order: []Order{{Column: "id", Desc: true}},
		Page:  ParsePagination(params.Get("currentPage"), params.Get("pageSize")),
	}

	var problems []string
	for _, f := range filters {
		raw := params.Get(f.Param)
		if raw == "" {
			continue
		}

		value, err := coerce(raw, f.Coerce)
		if err != nil {
			problems = append(problems, f.Param+" must be a number")
			continue
		}
		if f.Match == Contains {
			value = "%" + EscapeLike(raw) + "%"
		}

		cond.Where = append(cond.Where, Predicate{Column: f.Column, Match: f.Match, Value: value})
	}

	if len(problems) > 0 {
		return Condition{}, apperrors.NewValidation(problems...)
	}
	return cond, nil
}

// ParsePagination resolves the page window. Each value is read as a number and
// its absolute value truncated to an integer; anything that ends up zero or
// cannot be parsed falls back to the default.
func ParsePagination(currentPage, pageSize string) Pagination {
	page := positiveOr(currentPage, DefaultCurrentPage)
	size := positiveOr(pageSize, DefaultPageSize)
	return Pagination{
		CurrentPage: page,
		PageSize:    size,
		Offset:      (page - 1) * size,
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	n = math.Trunc(math.Abs(n))
	if n == 0 || n > math.MaxInt32 {
		return fallback
	}
	return int(n)
}

func coerce(raw string, c Coercion) (any, error) {
	switch c {
	case Boolean:
		return raw == "true", nil
	case Numeric:
		// Numeric columns are integer keys and enums
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	default:
		return raw, nil
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE wildcards so the value matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
