package postgres

import (
	"context"
	"database/sql"
	"errors"

	"storetags/internal/domain"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type tagRepository struct {
	DB DBTX
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
// db may be a *sql.DB or a *sql.Tx.
func NewTagRepository(db DBTX) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `INSERT INTO tags (name, store_id) VALUES ($1, $2) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query, tag.Name, tag.StoreID).Scan(&tag.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) {
			switch perr.Code {
			case pqUniqueViolation:
				return domain.ErrConflict
			case pqForeignKeyViolation:
				return domain.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, store_id FROM tags WHERE id = $1`, id).
		Scan(&tag.ID, &tag.Name, &tag.StoreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) ListByStoreID(ctx context.Context, storeID int64) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, store_id FROM tags WHERE store_id = $1 ORDER BY name`, storeID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

func (r *tagRepository) ListByItemID(ctx context.Context, itemID int64) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name, t.store_id FROM tags t
		 JOIN items_tags it ON it.tag_id = t.id
		 WHERE it.item_id = $1
		 ORDER BY t.name`, itemID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		// A link committed after the caller counted items.
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == pqForeignKeyViolation {
			return domain.ErrTagInUse
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tagRepository) CountItems(ctx context.Context, tagID int64) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM items_tags WHERE tag_id = $1`, tagID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *tagRepository) Link(ctx context.Context, tagID, itemID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO items_tags (item_id, tag_id) VALUES ($1, $2) ON CONFLICT (item_id, tag_id) DO NOTHING`,
		itemID, tagID)
	return err
}

func (r *tagRepository) Unlink(ctx context.Context, tagID, itemID int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM items_tags WHERE item_id = $1 AND tag_id = $2`, itemID, tagID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotLinked
	}
	return nil
}

func scanTags(rows *sql.Rows) ([]*domain.Tag, error) {
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.StoreID); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
