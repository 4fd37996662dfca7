package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"storetags/internal/domain"
)

func TestTagRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		tag     *domain.Tag
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
		errIs   error
	}{
		{
			name: "success sets id",
			tag:  domain.NewTag("sale", 1),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tags \(name, store_id\) VALUES \(\$1, \$2\) RETURNING id`).
					WithArgs("sale", int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
			},
			wantID: 10,
		},
		{
			name: "unique violation returns ErrConflict",
			tag:  domain.NewTag("sale", 1),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tags`).
					WithArgs("sale", int64(1)).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrConflict,
		},
		{
			name: "missing store returns ErrNotFound",
			tag:  domain.NewTag("sale", 99),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tags`).
					WithArgs("sale", int64(99)).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			tag:  domain.NewTag("sale", 1),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO tags`).
					WithArgs("sale", int64(1)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewTagRepository(db)
			err = repo.Create(ctx, tt.tag)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.tag.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		tagID   int64
		mock    func(mock sqlmock.Sqlmock)
		wantTag *domain.Tag
		wantErr bool
		errIs   error
	}{
		{
			name:  "success",
			tagID: 10,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, store_id FROM tags WHERE id = \$1`).
					WithArgs(int64(10)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "store_id"}).AddRow(10, "sale", 1))
			},
			wantTag: &domain.Tag{ID: 10, Name: "sale", StoreID: 1},
		},
		{
			name:  "not found",
			tagID: 404,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, store_id FROM tags WHERE id = \$1`).
					WithArgs(int64(404)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name:  "db error",
			tagID: 10,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, store_id FROM tags WHERE id = \$1`).
					WithArgs(int64(10)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewTagRepository(db)
			got, err := repo.GetByID(ctx, tt.tagID)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTag, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_ListByStoreID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tags ordered by name", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, name, store_id FROM tags WHERE store_id = \$1 ORDER BY name`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "store_id"}).
				AddRow(11, "new", 1).
				AddRow(10, "sale", 1))

		got, err := NewTagRepository(db).ListByStoreID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, []*domain.Tag{
			{ID: 11, Name: "new", StoreID: 1},
			{ID: 10, Name: "sale", StoreID: 1},
		}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, name, store_id FROM tags WHERE store_id`).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "store_id"}))

		got, err := NewTagRepository(db).ListByStoreID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, name, store_id FROM tags WHERE store_id`).
			WithArgs(int64(1)).
			WillReturnError(sql.ErrConnDone)

		_, err = NewTagRepository(db).ListByStoreID(ctx, 1)
		require.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestTagRepository_ListByItemID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT t.id, t.name, t.store_id FROM tags t\s+JOIN items_tags it ON it.tag_id = t.id\s+WHERE it.item_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "store_id"}).AddRow(10, "sale", 1))

	got, err := NewTagRepository(db).ListByItemID(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []*domain.Tag{{ID: 10, Name: "sale", StoreID: 1}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		mock  func(mock sqlmock.Sqlmock)
		errIs error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags WHERE id = \$1`).
					WithArgs(int64(10)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no rows returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags WHERE id = \$1`).
					WithArgs(int64(10)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			errIs: domain.ErrNotFound,
		},
		{
			name: "still referenced returns ErrTagInUse",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags WHERE id = \$1`).
					WithArgs(int64(10)).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			errIs: domain.ErrTagInUse,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM tags`).
					WithArgs(int64(10)).
					WillReturnError(sql.ErrConnDone)
			},
			errIs: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			err = NewTagRepository(db).Delete(ctx, 10)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_CountItems(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items_tags WHERE tag_id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := NewTagRepository(db).CountItems(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_Link(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO items_tags \(item_id, tag_id\) VALUES \(\$1, \$2\) ON CONFLICT \(item_id, tag_id\) DO NOTHING`).
					WithArgs(int64(5), int64(10)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already linked is a no op",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO items_tags`).
					WithArgs(int64(5), int64(10)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO items_tags`).
					WithArgs(int64(5), int64(10)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			err = NewTagRepository(db).Link(ctx, 10, 5)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_Unlink(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		mock  func(mock sqlmock.Sqlmock)
		errIs error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM items_tags WHERE item_id = \$1 AND tag_id = \$2`).
					WithArgs(int64(5), int64(10)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not linked returns ErrNotLinked",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM items_tags WHERE item_id = \$1 AND tag_id = \$2`).
					WithArgs(int64(5), int64(10)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			errIs: domain.ErrNotLinked,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM items_tags`).
					WithArgs(int64(5), int64(10)).
					WillReturnError(sql.ErrConnDone)
			},
			errIs: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			err = NewTagRepository(db).Unlink(ctx, 10, 5)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
