package model

import (
	"github.com/google/uuid"
)

type Book struct {
	ID          uuid.UUID `json:"id" db:"id" validate:"required"`
	Title       string    `json:"title" db:"title" validate:"required"`
	Author      string    `json:"author" db:"author" validate:"required"`
	Price       float64   `json:"price" db:"price" validate:"gte=0"`
	BookstoreID int64     `json:"bookstoreId" db:"bookstore_id" validate:"required"`
}

// BookFilter narrows the book scan. The service layer resolves the filter
// precedence before handing it to the repository.
type BookFilter struct {
	Author      string
	Title       string
	BookstoreID *int64
}

type BooksPage struct {
	Items         []Book
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
}

type Bookstore struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Address string `json:"address" db:"address"`
}

// Inventory is a (book, bookstore, copy count) row. The id mirrors the
// book id; one row per (book, bookstore) pair.
type Inventory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Copies      int       `json:"copies" db:"copies"`
	BookstoreID int64     `json:"bookstoreId" db:"bookstore_id"`
}

type InventoryGlobal struct {
	TotalCopies int64 `json:"total_copies"`
}

type InventoryEvent struct {
	Type        string    `json:"type"`
	BookID      uuid.UUID `json:"bookId"`
	BookstoreID int64     `json:"bookstoreId"`
	Copies      int       `json:"copies"`
}

const (
	EventInventoryUpdated = "inventory.updated"
	EventInventoryCreated = "inventory.created"
)

type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	Password string    `json:"-" db:"password"`
}

// Principal is the authenticated identity used for authorization decisions.
type Principal struct {
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Authorities  []string `json:"authorities"`
}

const RoleUser = "ROLE_USER"

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Response      any    `json:"response,omitempty"`
}

type PageResponse struct {
	Response
	PageSize      int   `json:"pageSize"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	TotalElements int64 `json:"totalElements"`
}
