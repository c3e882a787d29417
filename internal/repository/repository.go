package repository

import (
	sq "github.com/Masterminds/squirrel"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock.go -package=mock_repository github.com/bookorg/bookstore-service/internal/repository BookRepository,InventoryRepository,UserRepository

const (
	booksTableName      = `books`
	bookstoresTableName = `bookstores`
	inventoryTableName  = `inventory`
	usersTableName      = `users`
	userRolesTableName  = `user_roles`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
