package models

import "time"

// Order is a row from the orders table.
type Order struct {
	ID              int       `json:"id" db:"id"`
	CustomerName    *string   `json:"customer_name" db:"customer_name"`
	CustomerPhone   *string   `json:"customer_phone" db:"customer_phone"`
	CustomerEmail   *string   `json:"customer_email" db:"customer_email"`
	DeliveryAddress *string   `json:"delivery_address" db:"delivery_address"`
	TotalPrice      *float64  `json:"total_price" db:"total_price"`
	OrderType       *string   `json:"order_type" db:"order_type"`
	Status          *string   `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// OrderWithItems is the listing shape: an order plus its aggregated items.
type OrderWithItems struct {
	Order
	Items []OrderItemView `json:"items"`
}

// OrderItemView is the reduced item shape produced by the listing
// aggregation (json_build_object over order_items).
type OrderItemView struct {
	ID        int     `json:"id"`
	DishTitle string  `json:"dish_title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderItemInput is one submitted line item on order creation. dish_title
// and price are snapshots taken at order time, not live dish references.
type OrderItemInput struct {
	DishID    int     `json:"dish_id"`
	DishTitle string  `json:"dish_title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
