package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, id, req)
}

func (s *Service) SearchBooks(ctx context.Context, q model.SearchBooksQuery) ([]model.Book, error) {
	books, err := s.repo.SearchBooks(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, errs.ErrNoBooksFound
	}
	return books, nil
}

func (s *Service) ListBooks(ctx context.Context, p model.Pagination) (model.ListBooks, error) {
	p = p.Normalize()
	var (
		total int
		books []model.Book
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.repo.CountBooks(gCtx)
		return err
	})
	g.Go(func() (err error) {
		books, err = s.repo.ListBooks(gCtx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ListBooks{}, err
	}
	return model.ListBooks{
		Paging: model.Paging{
			Page:          p.Page,
			PageSize:      p.Size,
			TotalElements: total,
		},
		Books: books,
	}, nil
}
