package inventory

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
	"github.com/bookorg/bookstore-service/internal/repository"
	"github.com/bookorg/bookstore-service/pkg/cache"
)

const (
	// aggregatePageSize bounds the book scan feeding the aggregate queries.
	aggregatePageSize = 20

	EventsTopic = "inventory-events"
)

// Publisher emits inventory change events. A nil Publisher disables publishing.
type Publisher interface {
	Publish(topic string, v any) error
}

type Service struct {
	log   *zap.Logger
	books repository.BookRepository
	inv   repository.InventoryRepository
	cache *cache.Cache
	pub   Publisher
}

func NewService(books repository.BookRepository, inv repository.InventoryRepository, c *cache.Cache, pub Publisher, log *zap.Logger) *Service {
	return &Service{
		log:   log,
		books: books,
		inv:   inv,
		cache: c,
		pub:   pub,
	}
}

// GetByBookID returns every inventory row of the book. Unlike the aggregate
// queries, an empty result is a hard ErrInventoryNotFound here.
func (s *Service) GetByBookID(ctx context.Context, bookID uuid.UUID) ([]model.Inventory, error) {
	key := cache.Key("copiesByIsbn", bookID.String())
	if v, ok := s.cache.Get(key); ok {
		return v.([]model.Inventory), nil
	}

	items, err := s.inv.GetByBookID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.Wrapf(errs.ErrInventoryNotFound, "isbn %s", bookID)
	}

	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) CopiesByAuthor(ctx context.Context, author string) (map[string]int, error) {
	key := cache.Key("copiesByAuthor", author)
	if v, ok := s.cache.Get(key); ok {
		return v.(map[string]int), nil
	}

	books, err := s.books.List(ctx, model.BookFilter{Author: author}, 0, aggregatePageSize)
	if err != nil {
		return nil, err
	}
	totals, err := s.copiesByBookstore(ctx, books)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, totals)
	return totals, nil
}

func (s *Service) CopiesByTitle(ctx context.Context, title string) (map[string]int, error) {
	key := cache.Key("copiesByTitle", title)
	if v, ok := s.cache.Get(key); ok {
		return v.(map[string]int), nil
	}

	books, err := s.books.List(ctx, model.BookFilter{Title: title}, 0, aggregatePageSize)
	if err != nil {
		return nil, err
	}
	totals, err := s.copiesByBookstore(ctx, books)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, totals)
	return totals, nil
}

// copiesByBookstore sums copy counts grouped by bookstore id. Books without
// inventory rows contribute nothing.
func (s *Service) copiesByBookstore(ctx context.Context, books []model.Book) (map[string]int, error) {
	var mu sync.Mutex
	totals := make(map[string]int)

	gg, ctx := errgroup.WithContext(ctx)
	for _, book := range books {
		book := book
		gg.Go(func() error {
			items, err := s.inv.GetByBookID(ctx, book.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, item := range items {
				totals[strconv.FormatInt(item.BookstoreID, 10)] += item.Copies
			}
			mu.Unlock()
			return nil
		})
	}
	if err := gg.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}

// UpdateInventory overwrites the copy count of the (book, bookstore) row,
// creating the row when it does not exist yet. The overwrite is idempotent:
// repeating the call leaves the same count, it never accumulates.
func (s *Service) UpdateInventory(ctx context.Context, bookID uuid.UUID, copies int, bookstoreID int64) (uuid.UUID, error) {
	_, err := s.inv.GetByBookAndBookstore(ctx, bookID, bookstoreID)
	switch {
	case err == nil:
		if err := s.inv.UpdateCopies(ctx, bookID, bookstoreID, copies); err != nil {
			return uuid.Nil, err
		}
	case errors.Is(err, errs.ErrInventoryNotFound):
		exists, err := s.inv.BookstoreExists(ctx, bookstoreID)
		if err != nil {
			return uuid.Nil, err
		}
		if !exists {
			return uuid.Nil, errors.Wrapf(errs.ErrBookstoreNotFound, "bookstore %d", bookstoreID)
		}
		if err := s.inv.Create(ctx, model.Inventory{ID: bookID, Copies: copies, BookstoreID: bookstoreID}); err != nil {
			return uuid.Nil, err
		}
	default:
		return uuid.Nil, err
	}

	s.cache.Purge()
	s.publish(model.InventoryEvent{
		Type:        model.EventInventoryUpdated,
		BookID:      bookID,
		BookstoreID: bookstoreID,
		Copies:      copies,
	})
	return bookID, nil
}

// CreateOrIncrement is the hook invoked when a book is saved: existing rows
// for the book gain one copy, otherwise a fresh row starts at one.
func (s *Service) CreateOrIncrement(ctx context.Context, book model.Book) error {
	n, err := s.inv.IncrementByBookID(ctx, book.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		if err := s.inv.Create(ctx, model.Inventory{ID: book.ID, Copies: 1, BookstoreID: book.BookstoreID}); err != nil {
			return err
		}
	}

	s.cache.Purge()
	s.publish(model.InventoryEvent{
		Type:        model.EventInventoryCreated,
		BookID:      book.ID,
		BookstoreID: book.BookstoreID,
		Copies:      1,
	})
	return nil
}

func (s *Service) TotalCopies(ctx context.Context) (int64, error) {
	return s.inv.TotalCopies(ctx)
}

func (s *Service) publish(ev model.InventoryEvent) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(EventsTopic, ev); err != nil {
		s.log.Warn("publish inventory event", zap.Error(err))
	}
}
