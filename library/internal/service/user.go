package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

func (s *Service) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	return s.repo.CreateUser(ctx, req)
}

func (s *Service) GetUser(ctx context.Context, id int) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error) {
	return s.repo.UpdateUser(ctx, id, req)
}

func (s *Service) ListUsers(ctx context.Context, p model.Pagination) (model.ListUsers, error) {
	p = p.Normalize()
	var (
		total int
		users []model.User
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.repo.CountUsers(gCtx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.repo.ListUsers(gCtx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ListUsers{}, err
	}
	return model.ListUsers{
		Page:       p.Page,
		Limit:      p.Size,
		TotalUsers: total,
		TotalPages: (total + p.Size - 1) / p.Size,
		Users:      users,
	}, nil
}

// UserBorrows lists every borrow of the user, newest first.
func (s *Service) UserBorrows(ctx context.Context, userID int) ([]model.Borrow, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUserBorrows(ctx, userID)
}
