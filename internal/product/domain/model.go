package domain

import "errors"

var ErrUnknownProduct = errors.New("unknown product")

// Product is one of the three purchasable readings. Price is in cents, USD.
type Product struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Tier        string `json:"tier"`
}

type Catalog interface {
	// Resolve matches a display name case- and whitespace-insensitively.
	Resolve(name string) (Product, error)
	List() []Product
}
