package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storetags/internal/domain"
)

type unitOfWork struct {
	DB *sql.DB
}

// NewUnitOfWork returns a domain.UnitOfWork that opens one Postgres transaction per Do call.
func NewUnitOfWork(db *sql.DB) domain.UnitOfWork {
	return &unitOfWork{DB: db}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := domain.Repositories{
		Tags:   NewTagRepository(tx),
		Items:  NewItemRepository(tx),
		Stores: NewStoreRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
