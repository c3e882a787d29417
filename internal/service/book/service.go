package book

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
	"github.com/bookorg/bookstore-service/internal/repository"
)

const defaultPageSize = 20

// InventoryHook is invoked after a book is persisted.
type InventoryHook interface {
	CreateOrIncrement(ctx context.Context, book model.Book) error
}

type Service struct {
	log       *zap.Logger
	repo      repository.BookRepository
	inventory InventoryHook
}

func NewService(repo repository.BookRepository, inventory InventoryHook, log *zap.Logger) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		inventory: inventory,
	}
}

func (s *Service) Create(ctx context.Context, book model.Book) (uuid.UUID, error) {
	if err := s.repo.Create(ctx, book); err != nil {
		s.log.Error("create book", zap.String("isbn", book.ID.String()), zap.Error(err))
		return uuid.Nil, errors.Wrapf(errs.ErrBookCreate, "isbn %s", book.ID)
	}
	if err := s.inventory.CreateOrIncrement(ctx, book); err != nil {
		s.log.Error("inventory hook", zap.String("isbn", book.ID.String()), zap.Error(err))
		return uuid.Nil, errors.Wrapf(errs.ErrBookCreate, "isbn %s", book.ID)
	}
	return book.ID, nil
}

func (s *Service) Update(ctx context.Context, book model.Book) (uuid.UUID, error) {
	if _, err := s.repo.GetByID(ctx, book.ID); err != nil {
		return uuid.Nil, err
	}
	if err := s.repo.Update(ctx, book); err != nil {
		return uuid.Nil, err
	}
	return book.ID, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List applies the filter precedence author+title, author, title, bookstore,
// unfiltered. Totals are derived from the returned page, not a COUNT query,
// so they are an approximation of the full result set.
func (s *Service) List(ctx context.Context, author, title string, bookstoreID *int64, page, size int) (model.BooksPage, error) {
	var filter model.BookFilter
	switch {
	case author != "" && title != "":
		filter.Author, filter.Title = author, title
	case author != "":
		filter.Author = author
	case title != "":
		filter.Title = title
	case bookstoreID != nil:
		filter.BookstoreID = bookstoreID
	}
	if size <= 0 {
		size = defaultPageSize
	}

	items, err := s.repo.List(ctx, filter, page, size)
	if err != nil {
		return model.BooksPage{}, err
	}

	total := int64(len(items))
	return model.BooksPage{
		Items:         items,
		TotalElements: total,
		TotalPages:    int(math.Ceil(float64(total) / float64(size))),
		Page:          page,
		Size:          size,
	}, nil
}
