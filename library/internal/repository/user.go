package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
)

func (r *repository) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("name", "email").
		Values(req.Name, req.Email).
		Suffix("returning " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	user, err := collectOne[model.User](ctx, r.q, query, args)
	return user, mapErr(err, nil, "CreateUser")
}

func (s store) GetUser(ctx context.Context, id int) (model.User, error) {
	return s.getUser(ctx, id, false)
}

func (s store) getUser(ctx context.Context, id int, forUpdate bool) (model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("for update")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.User{}, err
	}
	user, err := collectOne[model.User](ctx, s.q, query, args)
	return user, mapErr(err, errs.ErrUserNotFound, "GetUser")
}

func (r *repository) UpdateUser(ctx context.Context, id int, req model.UpdateUserRequest) (model.User, error) {
	if req.Empty() {
		return r.GetUser(ctx, id)
	}
	q := qb.Update(usersTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + strings.Join(userColumns, ", "))
	if req.Name != nil {
		q = q.Set("name", *req.Name)
	}
	if req.Email != nil {
		q = q.Set("email", *req.Email)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.User{}, err
	}
	r.log.Debug("UpdateUser", zap.String("query", query), zap.Any("args", args))

	user, err := collectOne[model.User](ctx, r.q, query, args)
	return user, mapErr(err, errs.ErrUserNotFound, "UpdateUser")
}

func (r *repository) ListUsers(ctx context.Context, p model.Pagination) ([]model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("id").
		Limit(uint64(p.Size)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, err
	}
	users, err := collectAll[model.User](ctx, r.q, query, args)
	return users, mapErr(err, nil, "ListUsers")
}

func (r *repository) CountUsers(ctx context.Context) (int, error) {
	n, err := r.count(ctx, usersTableName)
	return n, mapErr(err, nil, "CountUsers")
}

func (r *repository) ListUserBorrows(ctx context.Context, userID int) ([]model.Borrow, error) {
	query, args, err := qb.Select(borrowColumns...).
		From(borrowsTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("borrow_date desc", "id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	borrows, err := collectAll[model.Borrow](ctx, r.q, query, args)
	return borrows, mapErr(err, nil, "ListUserBorrows")
}
