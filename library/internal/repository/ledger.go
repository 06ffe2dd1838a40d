package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
)

const (
	maxTxAttempts = 3
	txBackoff     = 25 * time.Millisecond
)

type ledger struct {
	store
}

var _ Ledger = (*ledger)(nil)

func (r *repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Ledger) error) error {
	return withRetry(ctx, maxTxAttempts, func() error {
		return pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
			return fn(ctx, &ledger{store{q: tx, log: r.log}})
		})
	}, r.log)
}

// withRetry reruns fn with exponential backoff while it fails with a retryable error.
func withRetry(ctx context.Context, attempts int, fn func() error, log *zap.Logger) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := txBackoff << (attempt - 1)
			log.Warn("retry tx", zap.Int("attempt", attempt+1), zap.Duration("delay", delay), zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err = fn(); err == nil || !isRetryable(err) {
			return err
		}
	}
	return err
}

func (l *ledger) GetBookForUpdate(ctx context.Context, id int) (model.Book, error) {
	return l.getBook(ctx, id, true)
}

// GetUserForUpdate locks the user row. Borrow inserts referencing the user
// wait on it through the foreign key until the transaction ends.
func (l *ledger) GetUserForUpdate(ctx context.Context, id int) (model.User, error) {
	return l.getUser(ctx, id, true)
}

func (l *ledger) GetBorrowForUpdate(ctx context.Context, id int) (model.Borrow, error) {
	query, args, err := qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Borrow{}, err
	}
	borrow, err := collectOne[model.Borrow](ctx, l.q, query, args)
	return borrow, mapErr(err, errs.ErrBorrowNotFound, "GetBorrowForUpdate")
}

func (l *ledger) CreateBorrow(ctx context.Context, borrow model.Borrow) (model.Borrow, error) {
	query, args, err := qb.Insert(borrowsTableName).
		Columns("user_id", "book_id", "borrow_date", "due_date").
		Values(borrow.UserID, borrow.BookID, borrow.BorrowDate, borrow.DueDate).
		Suffix("returning " + strings.Join(borrowColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Borrow{}, err
	}
	created, err := collectOne[model.Borrow](ctx, l.q, query, args)
	return created, mapErr(err, nil, "CreateBorrow")
}

// CloseBorrow only touches a still-open borrow, so a return date is never overwritten.
func (l *ledger) CloseBorrow(ctx context.Context, id int, returnDate time.Time, lateDays int) (model.Borrow, error) {
	query, args, err := qb.Update(borrowsTableName).
		Set("return_date", returnDate).
		Set("late_days", lateDays).
		Where(sq.Eq{"id": id, "return_date": nil}).
		Suffix("returning " + strings.Join(borrowColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Borrow{}, err
	}
	borrow, err := collectOne[model.Borrow](ctx, l.q, query, args)
	return borrow, mapErr(err, errs.ErrAlreadyReturned, "CloseBorrow")
}

// AddCopies applies delta in SQL and returns the new count.
func (l *ledger) AddCopies(ctx context.Context, bookID, delta int) (int, error) {
	query, args, err := qb.Update(booksTableName).
		Set("copies", sq.Expr("copies + ?", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": bookID}).
		Suffix("returning copies").
		ToSql()
	if err != nil {
		return 0, err
	}
	rows, err := l.q.Query(ctx, query, args...)
	if err != nil {
		return 0, mapErr(err, nil, "AddCopies")
	}
	copies, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	return copies, mapErr(err, errs.ErrBookNotFound, "AddCopies")
}

func (l *ledger) CountOpenBorrows(ctx context.Context, bookID int) (int, error) {
	query, args, err := qb.Select("count(*)").
		From(borrowsTableName).
		Where(sq.Eq{"book_id": bookID, "return_date": nil}).
		ToSql()
	if err != nil {
		return 0, err
	}
	rows, err := l.q.Query(ctx, query, args...)
	if err != nil {
		return 0, mapErr(err, nil, "CountOpenBorrows")
	}
	n, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	return n, mapErr(err, nil, "CountOpenBorrows")
}

func (l *ledger) DeleteBook(ctx context.Context, id int) error {
	query, args, err := qb.Delete(booksTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := l.q.Exec(ctx, query, args...)
	if err != nil {
		return mapErr(err, nil, "DeleteBook")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

const restockQuery = `
update books b
set copies = b.copies + o.cnt, updated_at = now()
from (select book_id, count(*) as cnt
      from borrows
      where user_id = $1 and return_date is null
      group by book_id) o
where b.id = o.book_id`

// RestockOpenBorrows gives back the copies held by the user's open borrows.
// The borrows are locked first so a concurrent return either lands before the
// count or finds the borrow gone.
func (l *ledger) RestockOpenBorrows(ctx context.Context, userID int) (int64, error) {
	lock, args, err := qb.Select("id").
		From(borrowsTableName).
		Where(sq.Eq{"user_id": userID, "return_date": nil}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return 0, err
	}
	if _, err = l.q.Exec(ctx, lock, args...); err != nil {
		return 0, mapErr(err, nil, "RestockOpenBorrows")
	}
	tag, err := l.q.Exec(ctx, restockQuery, userID)
	if err != nil {
		return 0, mapErr(err, nil, "RestockOpenBorrows")
	}
	return tag.RowsAffected(), nil
}

func (l *ledger) DeleteUser(ctx context.Context, id int) error {
	query, args, err := qb.Delete(usersTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := l.q.Exec(ctx, query, args...)
	if err != nil {
		return mapErr(err, nil, "DeleteUser")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
