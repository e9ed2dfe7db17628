package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cursorRow struct {
	ID        string
	CreatedAt time.Time
}

func rowID(r cursorRow) string           { return r.ID }
func rowCreatedAt(r cursorRow) time.Time { return r.CreatedAt }

func makeRows(ids ...string) []cursorRow {
	base := time.Now()
	rows := make([]cursorRow, 0, len(ids))
	for i, id := range ids {
		rows = append(rows, cursorRow{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	return rows
}

func TestNewCursorPaginationTrimsTail(t *testing.T) {
	pag, items := NewCursorPagination(makeRows("a", "b", "c"), 2, rowID, rowCreatedAt)

	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].ID)
	assert.True(t, pag.HasNext)
}

func TestNewCursorPaginationPrevTrimsFront(t *testing.T) {
	// Backward walks carry the overflow row at the front
	pag, items := NewCursorPaginationPrev(makeRows("a", "b", "c"), 2, rowID, rowCreatedAt)

	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
	assert.True(t, pag.HasPrev)
	assert.True(t, pag.HasNext)
}

func TestNewCursorPaginationPrevExactPage(t *testing.T) {
	pag, items := NewCursorPaginationPrev(makeRows("a", "b"), 2, rowID, rowCreatedAt)

	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.False(t, pag.HasPrev)
}
