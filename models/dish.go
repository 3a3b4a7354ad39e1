package models

import "time"

// Dish is a menu item row from the dishes table. Business fields are
// pointers so a NULL column serializes as JSON null instead of failing
// the scan; the schema owns which columns may actually be NULL.
type Dish struct {
	ID          int       `json:"id" db:"id"`
	Title       *string   `json:"title" db:"title"`
	Ingredients *string   `json:"ingredients" db:"ingredients"`
	Price       *float64  `json:"price" db:"price"`
	Image       *string   `json:"image" db:"image"`
	Category    *string   `json:"category" db:"category"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
