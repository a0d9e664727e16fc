package models

// PaginationResponse is the pagination block of a list response
type PaginationResponse struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// Page is one page of records plus its pagination metadata
type Page[T any] struct {
	Items      []*T
	Pagination PaginationResponse
}
