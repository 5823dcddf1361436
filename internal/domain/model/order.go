package model

import "time"

// Order records stock committed to a buyer. Orders are immutable once
// created; ProductName is a snapshot taken at order time and does not track
// later renames.
type Order struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	OrderDate   time.Time `json:"order_date"`
}
