// Package pagination carries page and keyset paging through the layers.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination represents pagination parameters
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Validate clamps the page to 1.. and the page size to 1..100
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = clampLimit(p.PerPage)
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// CursorDirection represents the direction of cursor navigation
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the (created_at, id) position a keyset page starts after
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Encode renders the cursor as opaque URL-safe text
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.URLEncoding.EncodeToString(data)
}

// CursorParams is a keyset page request. Cursor is empty on the first page.
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// Validate clamps the limit and defaults the direction to next
func (c *CursorParams) Validate() {
	c.Limit = clampLimit(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor returns nil for an empty cursor
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(decoded, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}

	return &cursor, nil
}

// Keyset is the WHERE condition that starts a page past the cursor, for
// tables ordered by created_at then id. It is empty on the first page.
func (c *CursorParams) Keyset() (string, []any, error) {
	cursor, err := c.DecodeCursor()
	if err != nil || cursor == nil {
		return "", nil, err
	}
	op := ">"
	if c.Direction == CursorDirectionPrev {
		op = "<"
	}
	cond := fmt.Sprintf("(created_at %s ? OR (created_at = ? AND id %s ?))", op, op)
	return cond, []any{cursor.CreatedAt, cursor.CreatedAt, cursor.ID}, nil
}

// CursorPagination represents cursor-based pagination response metadata
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult represents a cursor-paginated result with items
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPage builds a keyset page from rows fetched with limit+1, so an
// extra row means there is a next page. position reads a row's cursor.
func NewCursorPage[T any](rows []T, params *CursorParams, position func(T) Cursor) *CursorPaginatedResult[T] {
	pag := &CursorPagination{
		Limit:   params.Limit,
		HasNext: len(rows) > params.Limit,
		HasPrev: params.Cursor != "",
	}
	if pag.HasNext {
		rows = rows[:params.Limit]
	}

	if len(rows) > 0 {
		next := position(rows[len(rows)-1]).Encode()
		prev := position(rows[0]).Encode()
		pag.NextCursor = &next
		pag.PrevCursor = &prev
	}

	return &CursorPaginatedResult[T]{Items: rows, Pagination: pag}
}

func clampLimit(n int) int {
	switch {
	case n < 1:
		return defaultPerPage
	case n > maxPerPage:
		return maxPerPage
	}
	return n
}
