package domain

import "context"

// Item is an inventory item owned by a store. Tags is only populated by
// operations that return an item together with its links.
// swagger:model Item
type Item struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	StoreID int64   `json:"store_id"`
	Tags    []*Tag  `json:"tags,omitempty"`
}

// ItemRepository defines read access to items. Item lifecycle is owned elsewhere.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*Item, error)
	// ListByTagID returns the items linked to the tag ordered by ID.
	ListByTagID(ctx context.Context, tagID int64) ([]*Item, error)
}
