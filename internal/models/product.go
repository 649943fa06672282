package models

// Product represents one catalog entry. The catalog is static and
// process-wide, so products are never persisted.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"` // minor currency units
}
