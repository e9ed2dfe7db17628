package service

import (
	"testing"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(name string, priceCents int64, stock int) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Name:  name,
		Unit:  "pcs",
		Price: priceCents,
		Stock: stock,
	}
}

func TestBillDraftTotals(t *testing.T) {
	draft := NewBillDraft(0.05)

	rice := testProduct("Rice 1kg", 1500, 10)
	oil := testProduct("Oil 1L", 1000, 10)

	require.NoError(t, draft.AddItem(rice, 2))
	require.NoError(t, draft.AddItem(oil, 1))

	totals := draft.ComputeTotals()
	assert.Equal(t, int64(4000), totals.SubTotal)
	assert.Equal(t, int64(200), totals.Tax)
	assert.Equal(t, int64(4200), totals.Total)
}

func TestBillDraftTaxRoundsHalfUp(t *testing.T) {
	draft := NewBillDraft(0.05)

	// 1050 * 0.05 = 52.5, rounds up to 53
	require.NoError(t, draft.AddItem(testProduct("Soap", 1050, 5), 1))

	totals := draft.ComputeTotals()
	assert.Equal(t, int64(53), totals.Tax)
	assert.Equal(t, int64(1103), totals.Total)
}

func TestBillDraftAddMergesExistingLine(t *testing.T) {
	draft := NewBillDraft(0.05)
	rice := testProduct("Rice 1kg", 1500, 10)

	require.NoError(t, draft.AddItem(rice, 2))
	require.NoError(t, draft.AddItem(rice, 3))

	lines := draft.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestBillDraftAddBeyondStockRejected(t *testing.T) {
	draft := NewBillDraft(0.05)
	rice := testProduct("Rice 1kg", 1500, 3)

	require.NoError(t, draft.AddItem(rice, 2))

	err := draft.AddItem(rice, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available in stock")

	// The failed add must not change the line
	lines := draft.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestBillDraftSetQuantityZeroRemovesLine(t *testing.T) {
	draft := NewBillDraft(0.05)
	rice := testProduct("Rice 1kg", 1500, 10)
	oil := testProduct("Oil 1L", 1000, 10)

	require.NoError(t, draft.AddItem(rice, 2))
	require.NoError(t, draft.AddItem(oil, 1))

	require.NoError(t, draft.SetQuantity(rice.ID, 0))

	lines := draft.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, oil.ID, lines[0].ProductID)

	totals := draft.ComputeTotals()
	assert.Equal(t, int64(1000), totals.SubTotal)
}

func TestBillDraftSetQuantityAboveCeilingRejected(t *testing.T) {
	draft := NewBillDraft(0.05)
	rice := testProduct("Rice 1kg", 1500, 4)

	require.NoError(t, draft.AddItem(rice, 2))

	err := draft.SetQuantity(rice.ID, 9)
	require.Error(t, err)

	lines := draft.Lines()
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestBillDraftSetQuantityUnknownProduct(t *testing.T) {
	draft := NewBillDraft(0.05)
	err := draft.SetQuantity(uuid.New(), 1)
	assert.Error(t, err)
}

func TestBillDraftRemoveReindexes(t *testing.T) {
	draft := NewBillDraft(0.05)
	a := testProduct("A", 100, 10)
	b := testProduct("B", 200, 10)
	c := testProduct("C", 300, 10)

	require.NoError(t, draft.AddItem(a, 1))
	require.NoError(t, draft.AddItem(b, 1))
	require.NoError(t, draft.AddItem(c, 1))

	draft.RemoveItem(b.ID)

	// Lines after the removed one must still be addressable
	require.NoError(t, draft.SetQuantity(c.ID, 2))

	lines := draft.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, a.ID, lines[0].ProductID)
	assert.Equal(t, c.ID, lines[1].ProductID)
	assert.Equal(t, 2, lines[1].Quantity)

	// Removing again is a no-op
	draft.RemoveItem(b.ID)
	assert.Len(t, draft.Lines(), 2)
}

func TestBillDraftClear(t *testing.T) {
	draft := NewBillDraft(0.05)
	require.NoError(t, draft.AddItem(testProduct("A", 100, 10), 1))

	draft.Clear()

	assert.True(t, draft.IsEmpty())
	assert.Equal(t, int64(0), draft.ComputeTotals().Total)
}
