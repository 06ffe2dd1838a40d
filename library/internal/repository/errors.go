package repository

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-lending/library/internal/errs"
)

const (
	constraintISBN       = "books_isbn_key"
	constraintEmail      = "users_email_key"
	constraintCopies     = "books_copies_check"
	constraintRating     = "books_rating_check"
	constraintBorrowUser = "borrows_user_id_fkey"
	constraintBorrowBook = "borrows_book_id_fkey"
)

// mapErr turns no-rows and constraint violations into domain errors and wraps
// everything else with op for context.
func mapErr(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			switch pgErr.ConstraintName {
			case constraintISBN:
				return errs.ErrDuplicateISBN
			case constraintEmail:
				return errs.ErrDuplicateEmail
			}
		case pgerrcode.ForeignKeyViolation:
			switch pgErr.ConstraintName {
			case constraintBorrowUser:
				return errs.ErrUserNotFound
			case constraintBorrowBook:
				return errs.ErrBookNotFound
			}
		case pgerrcode.StringDataRightTruncationDataException:
			return errs.Validation("value too long")
		case pgerrcode.CheckViolation:
			switch pgErr.ConstraintName {
			case constraintCopies:
				return errs.ErrBookNotAvailable
			case constraintRating:
				return errs.Validation("rating must be between 0 and 5")
			}
		}
	}
	return errors.Wrap(err, op)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
