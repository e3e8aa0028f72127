package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"

	"usersvc/internal/domain"
	"usersvc/internal/repos"
)

// UserService exposes user operations in DTO terms. Entities never cross this
// boundary and neither do raw store errors.
type UserService interface {
	Create(ctx context.Context, in domain.CreateUserInput) (domain.UserView, error)
	Get(ctx context.Context, id int64) (domain.UserView, error)
	GetAll(ctx context.Context) ([]domain.UserView, error)
	Update(ctx context.Context, id int64, in domain.UpdateUserInput) (domain.UserView, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type userService struct {
	users repos.UserStore
}

func NewUserService(users repos.UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, in domain.CreateUserInput) (domain.UserView, error) {
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return domain.UserView{}, mapStoreErr(err)
	}
	return u.View(), nil
}

func (s *userService) Get(ctx context.Context, id int64) (domain.UserView, error) {
	u, err := s.users.ByID(ctx, id)
	if err != nil {
		return domain.UserView{}, notFoundWithID(err, id)
	}
	return u.View(), nil
}

func (s *userService) GetAll(ctx context.Context) ([]domain.UserView, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return domain.Views(users), nil
}

func (s *userService) Update(ctx context.Context, id int64, in domain.UpdateUserInput) (domain.UserView, error) {
	u, err := s.users.Update(ctx, id, in)
	if err != nil {
		return domain.UserView{}, notFoundWithID(err, id)
	}
	return u.View(), nil
}

func (s *userService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, notFoundWithID(err, id)
	}
	return ok, nil
}

// mapStoreErr is the single, total translation from store errors to the domain
// taxonomy. Row absence keeps its own kind; anything the database reported
// (constraints, connectivity, timeouts) is KindDatabase; the rest is unknown.
func mapStoreErr(err error) *Error {
	var pqErr *pq.Error
	var sqErr *sqlite.Error
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: err.Error()}
	case errors.As(err, &pqErr):
		return &Error{Kind: KindDatabase, Message: pqErr.Message}
	case errors.As(err, &sqErr):
		return &Error{Kind: KindDatabase, Message: sqErr.Error()}
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return &Error{Kind: KindDatabase, Message: err.Error()}
	default:
		return &Error{Kind: KindUnknown, Message: err.Error()}
	}
}

// notFoundWithID decorates the not-found case with the id the caller asked
// for; other kinds pass through mapStoreErr untouched.
func notFoundWithID(err error, id int64) *Error {
	mapped := mapStoreErr(err)
	if mapped.Kind == KindNotFound {
		mapped.Message = fmt.Sprintf("user not found with id: %d", id)
	}
	return mapped
}
