package domain

import "time"

// Product is a plain catalog entry with no ownership semantics.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
