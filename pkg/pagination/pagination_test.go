package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"zero values", PaginationParams{}, 1, 15, 0},
		{"capped", PaginationParams{Page: 3, PerPage: 500}, 3, 100, 200},
		{"kept", PaginationParams{Page: 2, PerPage: 20}, 2, 20, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	params := &CursorParams{Cursor: Cursor{ID: "abc", CreatedAt: at}.Encode()}

	c, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.True(t, at.Equal(c.CreatedAt))

	_, err = (&CursorParams{Cursor: "%%%"}).DecodeCursor()
	assert.Error(t, err)
}

func TestKeyset(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	token := Cursor{ID: "abc", CreatedAt: at}.Encode()

	cond, args, err := (&CursorParams{}).Keyset()
	require.NoError(t, err)
	assert.Empty(t, cond)
	assert.Nil(t, args)

	next := &CursorParams{Cursor: token, Direction: "sideways"}
	next.Validate()
	assert.Equal(t, CursorDirectionNext, next.Direction)
	assert.Equal(t, 15, next.Limit)
	cond, args, err = next.Keyset()
	require.NoError(t, err)
	assert.Equal(t, "(created_at > ? OR (created_at = ? AND id > ?))", cond)
	require.Len(t, args, 3)
	assert.True(t, at.Equal(args[0].(time.Time)))
	assert.Equal(t, "abc", args[2])

	cond, _, err = (&CursorParams{Cursor: token, Direction: CursorDirectionPrev}).Keyset()
	require.NoError(t, err)
	assert.Equal(t, "(created_at < ? OR (created_at = ? AND id < ?))", cond)

	_, _, err = (&CursorParams{Cursor: "%%%"}).Keyset()
	assert.Error(t, err)
}

func TestNewCursorPageTrimsExtraRow(t *testing.T) {
	type row struct {
		id string
		at time.Time
	}
	now := time.Now()
	rows := []row{{"a", now}, {"b", now}, {"c", now}}
	position := func(r row) Cursor { return Cursor{ID: r.id, CreatedAt: r.at} }

	page := NewCursorPage(rows, &CursorParams{Limit: 2}, position)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
	require.NotNil(t, page.Pagination.NextCursor)

	next, err := (&CursorParams{Cursor: *page.Pagination.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "b", next.ID)

	last := NewCursorPage(rows[2:], &CursorParams{Cursor: *page.Pagination.NextCursor, Limit: 2}, position)
	assert.Len(t, last.Items, 1)
	assert.False(t, last.Pagination.HasNext)
	assert.True(t, last.Pagination.HasPrev)

	empty := NewCursorPage(nil, &CursorParams{Limit: 2}, position)
	assert.Empty(t, empty.Items)
	assert.Nil(t, empty.Pagination.NextCursor)
}
