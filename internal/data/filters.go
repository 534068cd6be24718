// File: internal/data/filters.go

package data

import (
	"strings"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// Filter holds the paging and ordering of a list query.
type Filter struct {
	Page         int64    `json:"page"`
	PageSize     int64    `json:"page_size"`
	SortBy       string   `json:"sort_by"`
	SortSafeList []string `json:"-"`
}

// MetaData describes the page returned by a list query.
type MetaData struct {
	CurrentPage  int64 `json:"current_page,omitempty"`
	PageSize     int64 `json:"page_size,omitempty"`
	FirstPage    int64 `json:"first_page,omitempty"`
	LastPage     int64 `json:"last_page,omitempty"`
	TotalRecords int64 `json:"total_records,omitempty"`
}

// Paging limits.
const (
	MaxPage     = 500
	MaxPageSize = 100
)

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

// ValidateFilters checks paging bounds and the sort safelist.
func ValidateFilters(v *validator.Validator, f Filter) {
	v.Check(f.Page > 0, "page", "debe ser mayor que cero")
	v.Check(f.Page <= MaxPage, "page", "debe ser como máximo 500")
	v.Check(f.PageSize > 0, "page_size", "debe ser mayor que cero")
	v.Check(f.PageSize <= MaxPageSize, "page_size", "debe ser como máximo 100")
	v.Check(v.Permitted(f.SortBy, f.SortSafeList...), "sort", "valor de ordenamiento inválido")
}

func (f Filter) Limit() int64 {
	return f.PageSize
}

func (f Filter) Offset() int64 {
	return (f.Page - 1) * f.PageSize
}

// SortColumn returns the safelisted column without its direction prefix.
// Callers validate first; an unlisted value is a programming error.
func (f Filter) SortColumn() string {
	for _, safeValue := range f.SortSafeList {
		if f.SortBy == safeValue {
			return strings.TrimPrefix(f.SortBy, "-")
		}
	}
	panic("unsafe sort parameter: " + f.SortBy)
}

// SortDirection maps a leading "-" to DESC.
func (f Filter) SortDirection() string {
	if strings.HasPrefix(f.SortBy, "-") {
		return "DESC"
	}
	return "ASC"
}

// CalculateMetaData builds paging metadata. An empty result yields zero
// metadata.
func CalculateMetaData(totalRecords, page, pageSize int64) MetaData {
	if totalRecords == 0 {
		return MetaData{}
	}

	return MetaData{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}
