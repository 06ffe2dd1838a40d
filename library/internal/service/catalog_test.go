package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
)

func TestService_SearchBooks(t *testing.T) {
	t.Parallel()
	q := model.SearchBooksQuery{Title: "potter"}

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().SearchBooks(gomock.Any(), q).Return([]model.Book{{ID: 1}}, nil)

		books, err := svc.SearchBooks(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, books, 1)
	})
	t.Run("empty result", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().SearchBooks(gomock.Any(), q).Return([]model.Book{}, nil)

		_, err := svc.SearchBooks(context.Background(), q)
		require.ErrorIs(t, err, errs.ErrNoBooksFound)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_ListBooks(t *testing.T) {
	t.Parallel()
	svc, d := newService(t)
	p := model.Pagination{Page: 1, Size: 10}
	d.repo.EXPECT().CountBooks(gomock.Any()).Return(12, nil)
	d.repo.EXPECT().ListBooks(gomock.Any(), p).Return([]model.Book{{ID: 1}, {ID: 2}}, nil)

	got, err := svc.ListBooks(context.Background(), model.Pagination{})
	require.NoError(t, err)
	require.Equal(t, model.Paging{Page: 1, PageSize: 10, TotalElements: 12}, got.Paging)
	require.Len(t, got.Books, 2)
}

func TestService_ListUsers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		in        model.Pagination
		total     int
		wantPages int
		wantErr   bool
	}{
		{name: "defaults", in: model.Pagination{}, total: 0, wantPages: 0},
		{name: "partial last page", in: model.Pagination{Page: 2, Size: 3}, total: 7, wantPages: 3},
		{name: "exact pages", in: model.Pagination{Page: 1, Size: 5}, total: 10, wantPages: 2},
		{name: "count fails", in: model.Pagination{Page: 1, Size: 5}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, d := newService(t)
			p := tt.in.Normalize()
			if tt.wantErr {
				d.repo.EXPECT().CountUsers(gomock.Any()).Return(0, errors.New("db down"))
			} else {
				d.repo.EXPECT().CountUsers(gomock.Any()).Return(tt.total, nil)
			}
			d.repo.EXPECT().ListUsers(gomock.Any(), p).Return([]model.User{}, nil).MaxTimes(1)

			got, err := svc.ListUsers(context.Background(), tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, p.Page, got.Page)
			require.Equal(t, p.Size, got.Limit)
			require.Equal(t, tt.total, got.TotalUsers)
			require.Equal(t, tt.wantPages, got.TotalPages)
		})
	}
}

func TestService_UserBorrows(t *testing.T) {
	t.Parallel()
	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().GetUser(gomock.Any(), 3).Return(model.User{}, errs.ErrUserNotFound)

		_, err := svc.UserBorrows(context.Background(), 3)
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})
	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().GetUser(gomock.Any(), 3).Return(model.User{ID: 3}, nil)
		d.repo.EXPECT().ListUserBorrows(gomock.Any(), 3).Return([]model.Borrow{{ID: 2}, {ID: 1}}, nil)

		borrows, err := svc.UserBorrows(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, borrows, 2)
	})
}

func TestService_OverdueReport(t *testing.T) {
	t.Parallel()
	isbn := "439023"
	t.Run("details", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().ListOverdue(gomock.Any(), now).Return([]model.OverdueBorrow{
			{BorrowID: 1, UserName: "John Doe", Email: "john.doe@example.com", BookTitle: "The Hunger Games", ISBN: &isbn, DueDate: now.AddDate(0, 0, -20)},
			{BorrowID: 4, UserName: "Jane Smith", Email: "jane.smith@example.com", BookTitle: "Twilight", DueDate: now.Add(-36 * time.Hour)},
		}, nil)

		report, err := svc.OverdueReport(context.Background())
		require.NoError(t, err)
		require.Equal(t, []model.OverdueDetail{
			{BorrowID: 1, User: "John Doe", Email: "john.doe@example.com", BookTitle: "The Hunger Games", ISBN: &isbn, DueDate: now.AddDate(0, 0, -20), OverdueDays: 20},
			{BorrowID: 4, User: "Jane Smith", Email: "jane.smith@example.com", BookTitle: "Twilight", DueDate: now.Add(-36 * time.Hour), OverdueDays: 1},
		}, report.OverdueDetails)
	})
	t.Run("empty is not nil", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().ListOverdue(gomock.Any(), now).Return(nil, nil)

		report, err := svc.OverdueReport(context.Background())
		require.NoError(t, err)
		require.NotNil(t, report.OverdueDetails)
		require.Empty(t, report.OverdueDetails)
	})
	t.Run("storage error", func(t *testing.T) {
		t.Parallel()
		svc, d := newService(t)
		d.repo.EXPECT().ListOverdue(gomock.Any(), now).Return(nil, errors.New("db down"))

		_, err := svc.OverdueReport(context.Background())
		require.EqualError(t, err, "db down")
	})
}
