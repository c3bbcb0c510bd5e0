package model

// CartLineItem is one product line in a user's cart. Prices are whole
// rupees (currency minor units, no fractional paise).
type CartLineItem struct {
	ProductID string `db:"productid" json:"productId"`
	UnitPrice int64  `db:"unitprice" json:"unitPrice"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// CartTotals is derived from line items, never stored.
type CartTotals struct {
	Subtotal   int64 `json:"subtotal"`
	TaxAmount  int64 `json:"taxAmount"`
	GrandTotal int64 `json:"grandTotal"`
}

// CartResponse is returned when calling GET /api/cart
type CartResponse struct {
	Items  []CartLineItem `json:"items"`
	Totals CartTotals     `json:"totals"`
}
