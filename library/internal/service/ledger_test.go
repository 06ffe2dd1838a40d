package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
	repo_mocks "github.com/Astemirdum/library-lending/library/internal/repository/mocks"
	"github.com/Astemirdum/library-lending/library/internal/service"
	service_mocks "github.com/Astemirdum/library-lending/library/internal/service/mocks"
	"github.com/Astemirdum/library-lending/pkg/kafka"
)

var now = time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type deps struct {
	repo      *repo_mocks.MockRepository
	ledger    *repo_mocks.MockLedger
	publisher *service_mocks.MockEventPublisher
}

func newService(t *testing.T) (*service.Service, deps) {
	t.Helper()
	c := gomock.NewController(t)
	d := deps{
		repo:      repo_mocks.NewMockRepository(c),
		ledger:    repo_mocks.NewMockLedger(c),
		publisher: service_mocks.NewMockEventPublisher(c),
	}
	svc := service.NewService(d.repo, zap.NewNop(),
		service.WithClock(fixedClock(now)),
		service.WithPublisher(d.publisher),
	)
	return svc, d
}

// inTx makes RunInTx hand the mocked ledger to the transaction body.
func (d deps) inTx() {
	d.repo.EXPECT().RunInTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, repository.Ledger) error) error {
			return fn(ctx, d.ledger)
		})
}

func TestService_BorrowBook(t *testing.T) {
	t.Parallel()
	const userID, bookID = 7, 3
	created := model.Borrow{ID: 11, UserID: userID, BookID: bookID, BorrowDate: now, DueDate: now.Add(model.LoanPeriod)}

	tests := []struct {
		name    string
		mock    func(d deps)
		want    model.Borrow
		wantErr error
	}{
		{
			name: "ok",
			mock: func(d deps) {
				d.inTx()
				gomock.InOrder(
					d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{ID: bookID, Copies: 2}, nil),
					d.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(model.User{ID: userID}, nil),
					d.ledger.EXPECT().CreateBorrow(gomock.Any(), model.Borrow{
						UserID:     userID,
						BookID:     bookID,
						BorrowDate: now,
						DueDate:    now.AddDate(0, 0, 14),
					}).Return(created, nil),
					d.ledger.EXPECT().AddCopies(gomock.Any(), bookID, -1).Return(1, nil),
				)
				d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e kafka.LendingEvent) error {
						require.Equal(t, kafka.EventBookBorrowed, e.EventType)
						require.Equal(t, created.ID, e.BorrowID)
						require.Equal(t, bookID, e.BookID)
						require.Equal(t, created.DueDate, e.DueDate)
						return nil
					})
			},
			want: created,
		},
		{
			name: "book not found before user check",
			mock: func(d deps) {
				d.inTx()
				d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{}, errs.ErrBookNotFound)
			},
			wantErr: errs.ErrBookNotFound,
		},
		{
			name: "user not found",
			mock: func(d deps) {
				d.inTx()
				d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{ID: bookID, Copies: 0}, nil)
				d.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(model.User{}, errs.ErrUserNotFound)
			},
			wantErr: errs.ErrUserNotFound,
		},
		{
			name: "no copies left",
			mock: func(d deps) {
				d.inTx()
				d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{ID: bookID, Copies: 0}, nil)
				d.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(model.User{ID: userID}, nil)
			},
			wantErr: errs.ErrBookNotAvailable,
		},
		{
			name: "storage failure is not published",
			mock: func(d deps) {
				d.inTx()
				d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{ID: bookID, Copies: 1}, nil)
				d.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(model.User{ID: userID}, nil)
				d.ledger.EXPECT().CreateBorrow(gomock.Any(), gomock.Any()).Return(created, nil)
				d.ledger.EXPECT().AddCopies(gomock.Any(), bookID, -1).Return(0, errors.New("conn reset"))
			},
			wantErr: errors.New("conn reset"),
		},
		{
			name: "publish failure does not fail the borrow",
			mock: func(d deps) {
				d.inTx()
				d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{ID: bookID, Copies: 1}, nil)
				d.ledger.EXPECT().GetUser(gomock.Any(), userID).Return(model.User{ID: userID}, nil)
				d.ledger.EXPECT().CreateBorrow(gomock.Any(), gomock.Any()).Return(created, nil)
				d.ledger.EXPECT().AddCopies(gomock.Any(), bookID, -1).Return(0, nil)
				d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
			want: created,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			tt.mock(d)

			got, err := svc.BorrowBook(context.Background(), userID, bookID)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.Equal(t, tt.wantErr.Error(), err.Error())
				require.Empty(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestService_ReturnBook(t *testing.T) {
	t.Parallel()
	const borrowID, bookID = 5, 9
	returnedAt := now

	tests := []struct {
		name         string
		dueDate      time.Time
		returnDate   *time.Time
		wantLateDays int
		wantErr      error
	}{
		{name: "before due", dueDate: now.AddDate(0, 0, 3), wantLateDays: 0},
		{name: "exactly due", dueDate: now, wantLateDays: 0},
		{name: "twenty days late", dueDate: now.AddDate(0, 0, -20), wantLateDays: 20},
		{name: "partial day is floored", dueDate: now.Add(-47 * time.Hour), wantLateDays: 1},
		{name: "already returned", dueDate: now, returnDate: &returnedAt, wantErr: errs.ErrAlreadyReturned},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			open := model.Borrow{ID: borrowID, BookID: bookID, UserID: 1, DueDate: tt.dueDate, ReturnDate: tt.returnDate}
			d.inTx()
			d.ledger.EXPECT().GetBorrowForUpdate(gomock.Any(), borrowID).Return(open, nil)

			if tt.wantErr == nil {
				closed := open
				closed.ReturnDate = &returnedAt
				closed.LateDays = tt.wantLateDays
				gomock.InOrder(
					d.ledger.EXPECT().CloseBorrow(gomock.Any(), borrowID, now, tt.wantLateDays).Return(closed, nil),
					d.ledger.EXPECT().AddCopies(gomock.Any(), bookID, 1).Return(1, nil),
				)
				d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e kafka.LendingEvent) error {
						require.Equal(t, kafka.EventBookReturned, e.EventType)
						require.Equal(t, tt.wantLateDays, e.LateDays)
						return nil
					})
			}

			got, err := svc.ReturnBook(context.Background(), borrowID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, errs.ErrInvalidState)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantLateDays, got.LateDays)
			require.False(t, got.IsOpen())
		})
	}
}

func TestService_ReturnBookNotFound(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	d.inTx()
	d.ledger.EXPECT().GetBorrowForUpdate(gomock.Any(), 404).Return(model.Borrow{}, errs.ErrBorrowNotFound)

	_, err := svc.ReturnBook(context.Background(), 404)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.Equal(t, "Borrow record not found", err.Error())
}

func TestService_DeleteBook(t *testing.T) {
	t.Parallel()
	t.Run("currently borrowed", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.inTx()
		d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), 1).Return(model.Book{ID: 1}, nil)
		d.ledger.EXPECT().CountOpenBorrows(gomock.Any(), 1).Return(1, nil)

		err := svc.DeleteBook(context.Background(), 1)
		require.ErrorIs(t, err, errs.ErrBookBorrowed)
	})
	t.Run("only closed borrows", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.inTx()
		gomock.InOrder(
			d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), 1).Return(model.Book{ID: 1}, nil),
			d.ledger.EXPECT().CountOpenBorrows(gomock.Any(), 1).Return(0, nil),
			d.ledger.EXPECT().DeleteBook(gomock.Any(), 1).Return(nil),
		)
		require.NoError(t, svc.DeleteBook(context.Background(), 1))
	})
	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.inTx()
		d.ledger.EXPECT().GetBookForUpdate(gomock.Any(), 1).Return(model.Book{}, errs.ErrBookNotFound)
		require.ErrorIs(t, svc.DeleteBook(context.Background(), 1), errs.ErrBookNotFound)
	})
}

func TestService_DeleteUser(t *testing.T) {
	t.Parallel()
	t.Run("restocks before delete", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.inTx()
		gomock.InOrder(
			d.ledger.EXPECT().GetUserForUpdate(gomock.Any(), 2).Return(model.User{ID: 2}, nil),
			d.ledger.EXPECT().RestockOpenBorrows(gomock.Any(), 2).Return(int64(2), nil),
			d.ledger.EXPECT().DeleteUser(gomock.Any(), 2).Return(nil),
		)
		require.NoError(t, svc.DeleteUser(context.Background(), 2))
	})
	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.inTx()
		d.ledger.EXPECT().GetUserForUpdate(gomock.Any(), 2).Return(model.User{}, errs.ErrUserNotFound)
		require.ErrorIs(t, svc.DeleteUser(context.Background(), 2), errs.ErrUserNotFound)
	})
}
