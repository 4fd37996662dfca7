package postgres

import (
	"context"
	"database/sql"
	"errors"

	"storetags/internal/domain"
)

type itemRepository struct {
	DB DBTX
}

func NewItemRepository(db DBTX) domain.ItemRepository {
	return &itemRepository{DB: db}
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item := &domain.Item{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, price, store_id FROM items WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Price, &item.StoreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) ListByTagID(ctx context.Context, tagID int64) ([]*domain.Item, error) {
	query := `
		SELECT i.id, i.name, i.price, i.store_id
		FROM items i
		JOIN items_tags it ON it.item_id = i.id
		WHERE it.tag_id = $1
		ORDER BY i.id
	`
	rows, err := r.DB.QueryContext(ctx, query, tagID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		item := &domain.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.StoreID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
