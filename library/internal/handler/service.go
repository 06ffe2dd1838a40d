package handler

import (
	"context"

	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	SearchBooks(ctx context.Context, q model.SearchBooksQuery) ([]model.Book, error)
	ListBooks(ctx context.Context, p model.Pagination) (model.ListBooks, error)

	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, id int) error
	ListUsers(ctx context.Context, p model.Pagination) (model.ListUsers, error)
	UserBorrows(ctx context.Context, userID int) ([]model.Borrow, error)

	BorrowBook(ctx context.Context, userID, bookID int) (model.Borrow, error)
	ReturnBook(ctx context.Context, borrowID int) (model.Borrow, error)
	OverdueReport(ctx context.Context) (model.OverdueReport, error)
}

var _ LibraryService = (*service.Service)(nil)
