package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. Wire field names are part of the public API
// contract and stay in Spanish.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
	Photo string  `json:"foto"`
}
