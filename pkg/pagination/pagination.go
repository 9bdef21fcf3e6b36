// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

// Package pagination provides page/limit parsing and response metadata
// for API list endpoints.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 25
	// MaxLimit caps the items per page. Larger requests are clamped, not rejected.
	MaxLimit = 200
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether another page exists after the current one.
func (m Meta) HasNext() bool {
	return m.Page < m.TotalPages
}

// NewMeta constructs pagination metadata for a response, deriving
// TotalPages from the total row count and the page limit.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters.
//
// # Clamping
//
// Missing or invalid values fall back to [DefaultPage] and [DefaultLimit].
// A limit above [MaxLimit] is clamped down to [MaxLimit].
func FromRequest(r *http.Request) Params {
	params := Params{Page: DefaultPage, Limit: DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			params.Page = n
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			params.Limit = n
		}
	}

	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}

	return params
}
