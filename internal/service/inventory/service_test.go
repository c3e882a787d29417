package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
	repo_mocks "github.com/bookorg/bookstore-service/internal/repository/mocks"
	"github.com/bookorg/bookstore-service/internal/service/inventory"
	"github.com/bookorg/bookstore-service/pkg/cache"
)

func newService(t *testing.T) (*inventory.Service, *repo_mocks.MockBookRepository, *repo_mocks.MockInventoryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	books := repo_mocks.NewMockBookRepository(ctrl)
	inv := repo_mocks.NewMockInventoryRepository(ctrl)
	svc := inventory.NewService(books, inv, cache.New(16, time.Minute), nil, zap.NewExample().Named("test"))
	return svc, books, inv
}

func TestService_UpdateInventory_CreatesThenOverwrites(t *testing.T) {
	t.Parallel()
	svc, _, inv := newService(t)

	bookID := uuid.New()
	const bookstoreID = int64(100)

	// No row yet: the bookstore is checked, then the row is created with
	// the requested count.
	inv.EXPECT().
		GetByBookAndBookstore(gomock.Any(), bookID, bookstoreID).
		Return(model.Inventory{}, errs.ErrInventoryNotFound)
	inv.EXPECT().
		BookstoreExists(gomock.Any(), bookstoreID).
		Return(true, nil)
	inv.EXPECT().
		Create(gomock.Any(), model.Inventory{ID: bookID, Copies: 20, BookstoreID: bookstoreID}).
		Return(nil)

	id, err := svc.UpdateInventory(context.Background(), bookID, 20, bookstoreID)
	require.NoError(t, err)
	require.Equal(t, bookID, id)

	// Repeating the call overwrites to 20 again, it does not accumulate.
	inv.EXPECT().
		GetByBookAndBookstore(gomock.Any(), bookID, bookstoreID).
		Return(model.Inventory{ID: bookID, Copies: 20, BookstoreID: bookstoreID}, nil)
	inv.EXPECT().
		UpdateCopies(gomock.Any(), bookID, bookstoreID, 20).
		Return(nil)

	id, err = svc.UpdateInventory(context.Background(), bookID, 20, bookstoreID)
	require.NoError(t, err)
	require.Equal(t, bookID, id)
}

func TestService_UpdateInventory_BookstoreNotFound(t *testing.T) {
	t.Parallel()
	svc, _, inv := newService(t)

	bookID := uuid.New()
	const bookstoreID = int64(777)

	inv.EXPECT().
		GetByBookAndBookstore(gomock.Any(), bookID, bookstoreID).
		Return(model.Inventory{}, errs.ErrInventoryNotFound)
	inv.EXPECT().
		BookstoreExists(gomock.Any(), bookstoreID).
		Return(false, nil)

	_, err := svc.UpdateInventory(context.Background(), bookID, 20, bookstoreID)
	require.ErrorIs(t, err, errs.ErrBookstoreNotFound)
}

func TestService_CreateOrIncrement(t *testing.T) {
	t.Parallel()

	book := model.Book{
		ID:          uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6"),
		Title:       "The Hobbit",
		Author:      "J.R.R Tolkien",
		Price:       10.00,
		BookstoreID: 100,
	}

	t.Run("creates first row with one copy", func(t *testing.T) {
		t.Parallel()
		svc, _, inv := newService(t)

		inv.EXPECT().IncrementByBookID(gomock.Any(), book.ID).Return(int64(0), nil)
		inv.EXPECT().
			Create(gomock.Any(), model.Inventory{ID: book.ID, Copies: 1, BookstoreID: 100}).
			Return(nil)

		require.NoError(t, svc.CreateOrIncrement(context.Background(), book))
	})

	t.Run("increments existing row", func(t *testing.T) {
		t.Parallel()
		svc, _, inv := newService(t)

		inv.EXPECT().IncrementByBookID(gomock.Any(), book.ID).Return(int64(1), nil)

		require.NoError(t, svc.CreateOrIncrement(context.Background(), book))
	})
}

func TestService_GetByBookID(t *testing.T) {
	t.Parallel()

	t.Run("not found when no rows", func(t *testing.T) {
		t.Parallel()
		svc, _, inv := newService(t)

		bookID := uuid.New()
		inv.EXPECT().GetByBookID(gomock.Any(), bookID).Return(nil, nil)

		_, err := svc.GetByBookID(context.Background(), bookID)
		require.ErrorIs(t, err, errs.ErrInventoryNotFound)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		t.Parallel()
		svc, _, inv := newService(t)

		bookID := uuid.New()
		rows := []model.Inventory{{ID: bookID, Copies: 3, BookstoreID: 100}}
		inv.EXPECT().GetByBookID(gomock.Any(), bookID).Return(rows, nil).Times(1)

		got, err := svc.GetByBookID(context.Background(), bookID)
		require.NoError(t, err)
		require.Equal(t, rows, got)

		got, err = svc.GetByBookID(context.Background(), bookID)
		require.NoError(t, err)
		require.Equal(t, rows, got)
	})
}

func TestService_CopiesByAuthor(t *testing.T) {
	t.Parallel()
	svc, books, inv := newService(t)

	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	books.EXPECT().
		List(gomock.Any(), model.BookFilter{Author: "tolkien"}, 0, 20).
		Return([]model.Book{{ID: first}, {ID: second}, {ID: third}}, nil)

	inv.EXPECT().GetByBookID(gomock.Any(), first).
		Return([]model.Inventory{{ID: first, Copies: 2, BookstoreID: 100}, {ID: first, Copies: 1, BookstoreID: 200}}, nil)
	inv.EXPECT().GetByBookID(gomock.Any(), second).
		Return([]model.Inventory{{ID: second, Copies: 4, BookstoreID: 100}}, nil)
	// A book without inventory contributes nothing to the aggregate.
	inv.EXPECT().GetByBookID(gomock.Any(), third).Return(nil, nil)

	totals, err := svc.CopiesByAuthor(context.Background(), "tolkien")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"100": 6, "200": 1}, totals)
}

func TestService_CopiesByTitle_Cached(t *testing.T) {
	t.Parallel()
	svc, books, inv := newService(t)

	bookID := uuid.New()
	books.EXPECT().
		List(gomock.Any(), model.BookFilter{Title: "hobbit"}, 0, 20).
		Return([]model.Book{{ID: bookID}}, nil).
		Times(1)
	inv.EXPECT().GetByBookID(gomock.Any(), bookID).
		Return([]model.Inventory{{ID: bookID, Copies: 5, BookstoreID: 100}}, nil).
		Times(1)

	for i := 0; i < 2; i++ {
		totals, err := svc.CopiesByTitle(context.Background(), "hobbit")
		require.NoError(t, err)
		require.Equal(t, map[string]int{"100": 5}, totals)
	}
}

func TestService_UpdateInventory_EvictsAggregates(t *testing.T) {
	t.Parallel()
	svc, books, inv := newService(t)

	bookID := uuid.New()
	const bookstoreID = int64(100)

	books.EXPECT().
		List(gomock.Any(), model.BookFilter{Title: "hobbit"}, 0, 20).
		Return([]model.Book{{ID: bookID}}, nil).
		Times(2)
	inv.EXPECT().GetByBookID(gomock.Any(), bookID).
		Return([]model.Inventory{{ID: bookID, Copies: 5, BookstoreID: bookstoreID}}, nil).
		Times(2)

	_, err := svc.CopiesByTitle(context.Background(), "hobbit")
	require.NoError(t, err)

	inv.EXPECT().
		GetByBookAndBookstore(gomock.Any(), bookID, bookstoreID).
		Return(model.Inventory{ID: bookID, Copies: 5, BookstoreID: bookstoreID}, nil)
	inv.EXPECT().UpdateCopies(gomock.Any(), bookID, bookstoreID, 9).Return(nil)

	_, err = svc.UpdateInventory(context.Background(), bookID, 9, bookstoreID)
	require.NoError(t, err)

	// The mutation purged the cache, so the aggregate hits the store again.
	_, err = svc.CopiesByTitle(context.Background(), "hobbit")
	require.NoError(t, err)
}

func TestService_TotalCopies(t *testing.T) {
	t.Parallel()
	svc, _, inv := newService(t)

	inv.EXPECT().TotalCopies(gomock.Any()).Return(int64(42), nil)

	total, err := svc.TotalCopies(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), total)
}
