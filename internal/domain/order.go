package domain

import "time"

// CustomerInfo is the shipping detail block submitted at checkout.
// All fields are required.
type CustomerInfo struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
}

// Order is a finalized, priced order. Items is a value copy of the
// cart snapshot at creation time; an order never changes after it is
// appended to the log.
type Order struct {
	ID              string     `json:"id"`
	CartID          string     `json:"cart_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerPhone   string     `json:"customer_phone"`
	ShippingAddress string     `json:"shipping_address"`
	Items           []CartItem `json:"items"`
	TotalAmount     float64    `json:"total_amount"`
	Currency        string     `json:"currency"`
	CreatedAt       time.Time  `json:"created_at"`
}
