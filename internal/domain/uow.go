package domain

import "context"

// Repositories groups the repositories bound to one unit of work.
type Repositories struct {
	Tags   TagRepository
	Items  ItemRepository
	Stores StoreRepository
}

// UnitOfWork runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error or panics.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
