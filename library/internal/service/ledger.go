package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	libraryRepo "github.com/Astemirdum/library-lending/library/internal/repository"
	"github.com/Astemirdum/library-lending/pkg/kafka"
)

// BorrowBook lends one copy of the book. Existence of the book and the user is
// checked before availability, and nothing is written unless all checks pass.
func (s *Service) BorrowBook(ctx context.Context, userID, bookID int) (model.Borrow, error) {
	now := s.clock.Now()
	var borrow model.Borrow
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx libraryRepo.Ledger) error {
		book, err := tx.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if _, err = tx.GetUser(ctx, userID); err != nil {
			return err
		}
		if book.Copies <= 0 {
			return errs.ErrBookNotAvailable
		}
		borrow, err = tx.CreateBorrow(ctx, model.Borrow{
			UserID:     userID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    now.Add(model.LoanPeriod),
		})
		if err != nil {
			return err
		}
		_, err = tx.AddCopies(ctx, bookID, -1)
		return err
	})
	if err != nil {
		return model.Borrow{}, err
	}

	s.publish(ctx, kafka.EventBookBorrowed, borrow)
	return borrow, nil
}

// ReturnBook closes an open borrow, records how many whole days it came back
// late and puts the copy back.
func (s *Service) ReturnBook(ctx context.Context, borrowID int) (model.Borrow, error) {
	now := s.clock.Now()
	var returned model.Borrow
	err := s.repo.RunInTx(ctx, func(ctx context.Context, tx libraryRepo.Ledger) error {
		borrow, err := tx.GetBorrowForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		if !borrow.IsOpen() {
			return errs.ErrAlreadyReturned
		}
		returned, err = tx.CloseBorrow(ctx, borrowID, now, model.DaysOverdue(borrow.DueDate, now))
		if err != nil {
			return err
		}
		_, err = tx.AddCopies(ctx, borrow.BookID, 1)
		return err
	})
	if err != nil {
		return model.Borrow{}, err
	}

	s.publish(ctx, kafka.EventBookReturned, returned)
	return returned, nil
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.RunInTx(ctx, func(ctx context.Context, tx libraryRepo.Ledger) error {
		if _, err := tx.GetBookForUpdate(ctx, id); err != nil {
			return err
		}
		open, err := tx.CountOpenBorrows(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return errs.ErrBookBorrowed
		}
		return tx.DeleteBook(ctx, id)
	})
}

// DeleteUser returns the copies of the user's open borrows before the user and
// their borrows are removed. The user row stays locked until commit, so no
// borrow for the user can be created in between.
func (s *Service) DeleteUser(ctx context.Context, id int) error {
	return s.repo.RunInTx(ctx, func(ctx context.Context, tx libraryRepo.Ledger) error {
		if _, err := tx.GetUserForUpdate(ctx, id); err != nil {
			return err
		}
		restocked, err := tx.RestockOpenBorrows(ctx, id)
		if err != nil {
			return err
		}
		if restocked > 0 {
			s.log.Info("restocked open borrows of deleted user",
				zap.Int("userID", id), zap.Int64("books", restocked))
		}
		return tx.DeleteUser(ctx, id)
	})
}

func (s *Service) publish(ctx context.Context, eventType kafka.EventType, borrow model.Borrow) {
	event := kafka.NewLendingEvent(eventType, s.clock.Now())
	event.BorrowID = borrow.ID
	event.UserID = borrow.UserID
	event.BookID = borrow.BookID
	event.DueDate = borrow.DueDate
	event.LateDays = borrow.LateDays
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish lending event",
			zap.String("type", string(eventType)), zap.Int("borrowID", borrow.ID), zap.Error(err))
	}
}
