package postgres

import (
	"context"
	"database/sql"
	"errors"

	"storetags/internal/domain"
)

type storeRepository struct {
	DB DBTX
}

func NewStoreRepository(db DBTX) domain.StoreRepository {
	return &storeRepository{DB: db}
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	s := &domain.Store{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, name FROM stores WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
