package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorBody is the error response structure. Details is only populated
// outside production deployments.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PaginationInfo describes a page of results
type PaginationInfo struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPaginationInfo computes the page count from the total row count.
func NewPaginationInfo(page, limit int, total int64) PaginationInfo {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return PaginationInfo{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Optional distinguishes a JSON field that is absent from one that is
// present with a null value. Absent fields leave the stored value
// untouched; explicit nulls clear it.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when the field was null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
