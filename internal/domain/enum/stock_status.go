package enum

// StockStatus is the derived health of a product's stock level.
type StockStatus string

const (
	StockStatusLow    StockStatus = "low"
	StockStatusMedium StockStatus = "medium"
	StockStatusGood   StockStatus = "good"
)

// StockStatusFor classifies a stock level against its minimum threshold.
func StockStatusFor(stock, minimum int) StockStatus {
	switch {
	case stock <= minimum:
		return StockStatusLow
	case float64(stock) <= float64(minimum)*1.5:
		return StockStatusMedium
	default:
		return StockStatusGood
	}
}
