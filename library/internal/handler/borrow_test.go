package handler_test

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	service_mocks "github.com/Astemirdum/library-lending/library/internal/handler/mocks"
	"github.com/Astemirdum/library-lending/library/internal/model"
)

func TestHandler_BorrowBook(t *testing.T) {
	t.Parallel()
	borrow := model.Borrow{ID: 10, UserID: 1, BookID: 2, BorrowDate: ts, DueDate: ts.Add(model.LoanPeriod)}
	run(t, []testCase{
		{
			name:   "ok",
			method: http.MethodPost,
			target: "/api/borrow",
			body:   `{"userId":1,"bookId":2}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().BorrowBook(gomock.Any(), 1, 2).Return(borrow, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Book borrowed successfully","borrow":{"id":10,"userId":1,"bookId":2,` +
				`"borrowDate":"2025-03-17T10:00:00Z","dueDate":"2025-03-31T10:00:00Z","returnDate":null,"lateDays":0}}`,
		},
		{
			name:         "missing ids",
			method:       http.MethodPost,
			target:       "/api/borrow",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"userId is required; bookId is required"}`,
		},
		{
			name:   "book not found",
			method: http.MethodPost,
			target: "/api/borrow",
			body:   `{"userId":1,"bookId":99}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().BorrowBook(gomock.Any(), 1, 99).Return(model.Borrow{}, errs.ErrBookNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Book not found"}`,
		},
		{
			name:   "user not found",
			method: http.MethodPost,
			target: "/api/borrow",
			body:   `{"userId":99,"bookId":2}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().BorrowBook(gomock.Any(), 99, 2).Return(model.Borrow{}, errs.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"User not found"}`,
		},
		{
			name:   "not available",
			method: http.MethodPost,
			target: "/api/borrow",
			body:   `{"userId":1,"bookId":2}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().BorrowBook(gomock.Any(), 1, 2).Return(model.Borrow{}, errs.ErrBookNotAvailable)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Book is not available"}`,
		},
		{
			name:   "storage error",
			method: http.MethodPost,
			target: "/api/borrow",
			body:   `{"userId":1,"bookId":2}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().BorrowBook(gomock.Any(), 1, 2).Return(model.Borrow{}, errors.New("connection refused"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"connection refused"}`,
		},
	})
}

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()
	returned := ts.AddDate(0, 0, 34)
	borrow := model.Borrow{ID: 10, UserID: 1, BookID: 2, BorrowDate: ts, DueDate: ts.Add(model.LoanPeriod), ReturnDate: &returned, LateDays: 20}
	run(t, []testCase{
		{
			name:   "ok late",
			method: http.MethodPost,
			target: "/api/borrow/return",
			body:   `{"borrowId":10}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().ReturnBook(gomock.Any(), 10).Return(borrow, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Book returned successfully","borrow":{"id":10,"userId":1,"bookId":2,` +
				`"borrowDate":"2025-03-17T10:00:00Z","dueDate":"2025-03-31T10:00:00Z","returnDate":"2025-04-20T10:00:00Z","lateDays":20}}`,
		},
		{
			name:   "not found",
			method: http.MethodPost,
			target: "/api/borrow/return",
			body:   `{"borrowId":11}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().ReturnBook(gomock.Any(), 11).Return(model.Borrow{}, errs.ErrBorrowNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Borrow record not found"}`,
		},
		{
			name:   "already returned",
			method: http.MethodPost,
			target: "/api/borrow/return",
			body:   `{"borrowId":10}`,
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().ReturnBook(gomock.Any(), 10).Return(model.Borrow{}, errs.ErrAlreadyReturned)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Book already returned"}`,
		},
	})
}

func TestHandler_OverdueReport(t *testing.T) {
	t.Parallel()
	isbn := "439023"
	run(t, []testCase{
		{
			name:   "ok",
			method: http.MethodGet,
			target: "/api/report",
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().OverdueReport(gomock.Any()).Return(model.OverdueReport{OverdueDetails: []model.OverdueDetail{
					{BorrowID: 3, User: "John Doe", Email: "john.doe@example.com", BookTitle: "The Hunger Games", ISBN: &isbn, DueDate: ts, OverdueDays: 20},
				}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"overdueDetails":[{"borrowId":3,"user":"John Doe","email":"john.doe@example.com",` +
				`"bookTitle":"The Hunger Games","isbn":"439023","dueDate":"2025-03-17T10:00:00Z","overdueDays":20}]}`,
		},
		{
			name:   "empty",
			method: http.MethodGet,
			target: "/api/report",
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().OverdueReport(gomock.Any()).Return(model.OverdueReport{OverdueDetails: []model.OverdueDetail{}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"overdueDetails":[]}`,
		},
		{
			name:   "storage error",
			method: http.MethodGet,
			target: "/api/report",
			mockBehavior: func(s *service_mocks.MockLibraryService) {
				s.EXPECT().OverdueReport(gomock.Any()).Return(model.OverdueReport{}, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"db down"}`,
		},
	})
}
