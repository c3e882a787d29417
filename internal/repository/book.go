package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
)

type BookRepository interface {
	Create(ctx context.Context, book model.Book) error
	Update(ctx context.Context, book model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter model.BookFilter, page, size int) ([]model.Book, error)
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) *bookRepository {
	return &bookRepository{
		db:  db,
		log: log.Named("book-repo"),
	}
}

func (r *bookRepository) Create(ctx context.Context, book model.Book) error {
	query, args, err := qb.Insert(booksTableName).
		Columns("id", "title", "author", "price", "bookstore_id").
		Values(book.ID, book.Title, book.Author, book.Price, book.BookstoreID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.Error("Create", zap.String("q", query), zap.Any("args", args))
		return errors.Wrap(err, "insert book")
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, book model.Book) error {
	query, args, err := qb.Update(booksTableName).
		Set("title", book.Title).
		Set("author", book.Author).
		Set("price", book.Price).
		Set("bookstore_id", book.BookstoreID).
		Where(sq.Eq{"id": book.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update book")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "price", "bookstore_id").
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "delete book")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, filter model.BookFilter, page, size int) ([]model.Book, error) {
	q := qb.Select("id", "title", "author", "price", "bookstore_id").
		From(booksTableName)

	if filter.Author != "" {
		q = q.Where(sq.ILike{"author": fmt.Sprintf("%%%s%%", filter.Author)})
	}
	if filter.Title != "" {
		q = q.Where(sq.ILike{"title": fmt.Sprintf("%%%s%%", filter.Title)})
	}
	if filter.BookstoreID != nil {
		q = q.Where(sq.Eq{"bookstore_id": *filter.BookstoreID})
	}
	if size > 0 {
		q = q.Limit(uint64(size)).Offset(uint64(page * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("List", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}
