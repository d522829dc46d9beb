package catalog

import "time"

// Product is the price catalog entry used to pre-fill sales and to store
// results from the pricing calculator.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Cost        float64   `json:"cost"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductInput carries the fields accepted on creation.
type CreateProductInput struct {
	Name        string
	Description string
	Cost        float64
	Price       float64
}
