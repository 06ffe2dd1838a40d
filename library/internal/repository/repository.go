package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	SearchBooks(ctx context.Context, q model.SearchBooksQuery) ([]model.Book, error)
	ListBooks(ctx context.Context, p model.Pagination) ([]model.Book, error)
	CountBooks(ctx context.Context) (int, error)

	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error)
	ListUsers(ctx context.Context, p model.Pagination) ([]model.User, error)
	CountUsers(ctx context.Context) (int, error)
	ListUserBorrows(ctx context.Context, userID int) ([]model.Borrow, error)

	ListOverdue(ctx context.Context, now time.Time) ([]model.OverdueBorrow, error)

	// RunInTx runs fn in one transaction. Serialization failures and deadlocks are retried.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Ledger) error) error
}

// Ledger is the transactional view used by borrow, return and the guarded deletes.
type Ledger interface {
	GetBookForUpdate(ctx context.Context, id int) (model.Book, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	GetUserForUpdate(ctx context.Context, id int) (model.User, error)
	GetBorrowForUpdate(ctx context.Context, id int) (model.Borrow, error)
	CreateBorrow(ctx context.Context, borrow model.Borrow) (model.Borrow, error)
	CloseBorrow(ctx context.Context, id int, returnDate time.Time, lateDays int) (model.Borrow, error)
	AddCopies(ctx context.Context, bookID, delta int) (int, error)
	CountOpenBorrows(ctx context.Context, bookID int) (int, error)
	DeleteBook(ctx context.Context, id int) error
	RestockOpenBorrows(ctx context.Context, userID int) (int64, error)
	DeleteUser(ctx context.Context, id int) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type store struct {
	q   querier
	log *zap.Logger
}

type repository struct {
	store
	db *pgxpool.Pool
}

var _ Repository = (*repository)(nil)

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	log = log.Named("repo")
	return &repository{
		store: store{q: db, log: log},
		db:    db,
	}, nil
}

const (
	booksTableName   = `books`
	usersTableName   = `users`
	borrowsTableName = `borrows`
)

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	bookColumns   = []string{"id", "title", "isbn", "publication_year", "rating", "copies", "authors", "image", "created_at", "updated_at"}
	userColumns   = []string{"id", "name", "email", "created_at", "updated_at"}
	borrowColumns = []string{"id", "user_id", "book_id", "borrow_date", "due_date", "return_date", "late_days"}
)

func collectOne[T any](ctx context.Context, q querier, query string, args []any) (T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
}

func collectAll[T any](ctx context.Context, q querier, query string, args []any) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s store) count(ctx context.Context, table string) (int, error) {
	query, args, err := qb.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return pgx.CollectOneRow(rows, pgx.RowTo[int])
}
