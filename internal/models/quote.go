package models

// QuoteItem 询价商品行
type QuoteItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// QuoteRequest 客户询价
type QuoteRequest struct {
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Company      string      `json:"company,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Products     []QuoteItem `json:"products"`
	Message      string      `json:"message,omitempty"`
	CustomImages []string    `json:"customImages,omitempty"`
}
