package request

// UpdateSettingsRequest represents a shop settings update
type UpdateSettingsRequest struct {
	ShopName string `json:"shop_name" binding:"required,min=1,max=255"`
	Location string `json:"location" binding:"max=255"`
	UpiID    string `json:"upi_id" binding:"max=255"`
}
