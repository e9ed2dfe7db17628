package service

import (
	"math"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
)

// BillLine is one line of an in-progress bill. StockCeiling is the stock
// level observed when the product was added; it is an advisory limit only,
// the authoritative check happens at settlement via the conditional
// decrement.
type BillLine struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	UnitPrice    int64     `json:"unit_price"` // cents
	Quantity     int       `json:"quantity"`
	StockCeiling int       `json:"-"`
}

// BillTotals holds the derived amounts for a bill, in cents
type BillTotals struct {
	SubTotal int64 `json:"sub_total"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// BillDraft is the working bill for a single checkout session. It is owned
// by one request chain, never shared and never persisted: settlement or
// cancellation discards it. Lines keep insertion order.
type BillDraft struct {
	lines   []BillLine
	index   map[uuid.UUID]int
	taxRate float64
}

// NewBillDraft creates an empty bill with the configured tax rate
func NewBillDraft(taxRate float64) *BillDraft {
	return &BillDraft{
		index:   make(map[uuid.UUID]int),
		taxRate: taxRate,
	}
}

// AddItem inserts the product or increments its existing line. The requested
// quantity plus anything already queued must not exceed the product's
// last-known stock.
func (d *BillDraft) AddItem(product *entity.Product, requestedQty int) error {
	if requestedQty < 1 {
		return apperror.NewBadRequestError("Quantity must be at least 1")
	}

	queued := 0
	if i, ok := d.index[product.ID]; ok {
		queued = d.lines[i].Quantity
	}
	if queued+requestedQty > product.Stock {
		return apperror.NewInsufficientStockError(product.Name, product.Stock, product.Unit)
	}

	if i, ok := d.index[product.ID]; ok {
		d.lines[i].Quantity += requestedQty
		d.lines[i].StockCeiling = product.Stock
		return nil
	}

	d.index[product.ID] = len(d.lines)
	d.lines = append(d.lines, BillLine{
		ProductID:    product.ID,
		Name:         product.Name,
		Unit:         product.Unit,
		UnitPrice:    product.Price,
		Quantity:     requestedQty,
		StockCeiling: product.Stock,
	})
	return nil
}

// SetQuantity replaces a line's quantity. Zero or negative removes the line.
// A quantity above the last-known stock is rejected rather than clamped so
// the caller can inform the user.
func (d *BillDraft) SetQuantity(productID uuid.UUID, newQty int) error {
	i, ok := d.index[productID]
	if !ok {
		return apperror.NewNotFoundError("Bill item")
	}

	if newQty <= 0 {
		d.RemoveItem(productID)
		return nil
	}

	line := &d.lines[i]
	if newQty > line.StockCeiling {
		return apperror.NewInsufficientStockError(line.Name, line.StockCeiling, line.Unit)
	}

	line.Quantity = newQty
	return nil
}

// RemoveItem drops a line. No-op if the product is not on the bill.
func (d *BillDraft) RemoveItem(productID uuid.UUID) {
	i, ok := d.index[productID]
	if !ok {
		return
	}

	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	delete(d.index, productID)
	for j := i; j < len(d.lines); j++ {
		d.index[d.lines[j].ProductID] = j
	}
}

// Lines returns a copy of the current line items in insertion order
func (d *BillDraft) Lines() []BillLine {
	out := make([]BillLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// IsEmpty reports whether the bill has no line items
func (d *BillDraft) IsEmpty() bool {
	return len(d.lines) == 0
}

// Clear discards all line items
func (d *BillDraft) Clear() {
	d.lines = nil
	d.index = make(map[uuid.UUID]int)
}

// ComputeTotals derives subtotal, tax and total from the current lines.
// Amounts stay in cents; tax rounds half-up so the stored total matches what
// a receipt will display.
func (d *BillDraft) ComputeTotals() BillTotals {
	var subTotal int64
	for _, line := range d.lines {
		subTotal += line.UnitPrice * int64(line.Quantity)
	}

	tax := int64(math.Floor(float64(subTotal)*d.taxRate + 0.5))

	return BillTotals{
		SubTotal: subTotal,
		Tax:      tax,
		Total:    subTotal + tax,
	}
}
