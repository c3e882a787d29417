package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
)

type InventoryRepository interface {
	GetByBookID(ctx context.Context, bookID uuid.UUID) ([]model.Inventory, error)
	GetByBookAndBookstore(ctx context.Context, bookID uuid.UUID, bookstoreID int64) (model.Inventory, error)
	Create(ctx context.Context, inv model.Inventory) error
	UpdateCopies(ctx context.Context, bookID uuid.UUID, bookstoreID int64, copies int) error
	IncrementByBookID(ctx context.Context, bookID uuid.UUID) (int64, error)
	TotalCopies(ctx context.Context) (int64, error)
	BookstoreExists(ctx context.Context, bookstoreID int64) (bool, error)
}

type inventoryRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewInventoryRepository(db *sqlx.DB, log *zap.Logger) *inventoryRepository {
	return &inventoryRepository{
		db:  db,
		log: log.Named("inventory-repo"),
	}
}

func (r *inventoryRepository) GetByBookID(ctx context.Context, bookID uuid.UUID) ([]model.Inventory, error) {
	query, args, err := qb.Select("id", "copies", "bookstore_id").
		From(inventoryTableName).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.Inventory
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) GetByBookAndBookstore(ctx context.Context, bookID uuid.UUID, bookstoreID int64) (model.Inventory, error) {
	query, args, err := qb.Select("id", "copies", "bookstore_id").
		From(inventoryTableName).
		Where(sq.Eq{"id": bookID}).
		Where(sq.Eq{"bookstore_id": bookstoreID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Inventory{}, err
	}

	var inv model.Inventory
	if err := r.db.GetContext(ctx, &inv, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Inventory{}, errs.ErrInventoryNotFound
		}
		return model.Inventory{}, err
	}
	return inv, nil
}

func (r *inventoryRepository) Create(ctx context.Context, inv model.Inventory) error {
	query, args, err := qb.Insert(inventoryTableName).
		Columns("id", "copies", "bookstore_id").
		Values(inv.ID, inv.Copies, inv.BookstoreID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.Error("Create", zap.String("q", query), zap.Any("args", args))
		return errors.Wrap(err, "insert inventory")
	}
	return nil
}

func (r *inventoryRepository) UpdateCopies(ctx context.Context, bookID uuid.UUID, bookstoreID int64, copies int) error {
	query, args, err := qb.Update(inventoryTableName).
		Set("copies", copies).
		Set("bookstore_id", bookstoreID).
		Where(sq.Eq{"id": bookID}).
		Where(sq.Eq{"bookstore_id": bookstoreID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update inventory")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrInventoryNotFound
	}
	return nil
}

// IncrementByBookID bumps the copy count of every inventory row for the
// book by one and reports how many rows it touched.
func (r *inventoryRepository) IncrementByBookID(ctx context.Context, bookID uuid.UUID) (int64, error) {
	q := `
update inventory
    set copies = copies + 1
where id = $1`
	res, err := r.db.ExecContext(ctx, q, bookID)
	if err != nil {
		return 0, errors.Wrap(err, "increment inventory")
	}
	return res.RowsAffected()
}

func (r *inventoryRepository) TotalCopies(ctx context.Context) (int64, error) {
	q := `select coalesce(sum(copies), 0) from inventory`
	var total int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *inventoryRepository) BookstoreExists(ctx context.Context, bookstoreID int64) (bool, error) {
	q := `select exists(select 1 from bookstores where id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, bookstoreID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
