package domain

import "context"

// Store owns tags and items.
// swagger:model Store
type Store struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StoreRepository defines read access to stores.
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*Store, error)
}
