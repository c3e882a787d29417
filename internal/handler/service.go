package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookorg/bookstore-service/internal/model"
	authSvc "github.com/bookorg/bookstore-service/internal/service/auth"
	bookSvc "github.com/bookorg/bookstore-service/internal/service/book"
	inventorySvc "github.com/bookorg/bookstore-service/internal/service/inventory"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	Create(ctx context.Context, book model.Book) (uuid.UUID, error)
	Update(ctx context.Context, book model.Book) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, author, title string, bookstoreID *int64, page, size int) (model.BooksPage, error)
}

type InventoryService interface {
	GetByBookID(ctx context.Context, bookID uuid.UUID) ([]model.Inventory, error)
	CopiesByAuthor(ctx context.Context, author string) (map[string]int, error)
	CopiesByTitle(ctx context.Context, title string) (map[string]int, error)
	UpdateInventory(ctx context.Context, bookID uuid.UUID, copies int, bookstoreID int64) (uuid.UUID, error)
	TotalCopies(ctx context.Context) (int64, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password, role string) (model.Principal, error)
}

var (
	_ BookService      = (*bookSvc.Service)(nil)
	_ InventoryService = (*inventorySvc.Service)(nil)
	_ AuthService      = (*authSvc.Service)(nil)
)
