package request

// AnalyticsInsightsRequest asks for a narrated summary of recent sales
type AnalyticsInsightsRequest struct {
	Period string `json:"period" binding:"omitempty,max=20"`
	Days   int    `json:"days" binding:"omitempty,min=1,max=365"`
}

// ExtractProductsRequest carries pasted stock-list text for extraction
type ExtractProductsRequest struct {
	FileName string `json:"file_name" binding:"omitempty,max=255"`
	Content  string `json:"content" binding:"required"`
}
