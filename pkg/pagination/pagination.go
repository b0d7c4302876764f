// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested and how the requested
// page is reconciled with the number of rows that actually matched.
package pagination

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds a page number and page size.
type Params struct {
	Page int
	Size int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Size].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// ClampSize bounds a requested page size to [1, MaxPageSize].
func ClampSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages returns ceil(total/size), never less than one.
func TotalPages(total, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp reconciles a requested page with the number of matching rows.
//
// # Clamping
//
// The size is bounded first, then the page is bounded to
// [1, TotalPages(total, size)]. Out-of-range requests are never an error.
func Clamp(page, size, total int) Params {
	size = ClampSize(size)

	if page < 1 {
		page = DefaultPage
	}

	if last := TotalPages(total, size); page > last {
		page = last
	}

	return Params{Page: page, Size: size}
}
