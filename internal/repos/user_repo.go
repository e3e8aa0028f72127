package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"usersvc/internal/domain"
)

// ErrNotFound is returned when a query matches no user row.
var ErrNotFound = errors.New("user not found")

// bcryptCost is deliberately low; tuning the work factor is a deployment
// concern, not something callers get to vary per request.
const bcryptCost = 4

const userColumns = `id, name, age, email, password`

// UserStore is the persistence contract for users. UserRepo implements it
// against SQL; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	ByID(ctx context.Context, id int64) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	All(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the plaintext password and inserts the row, returning it with
// the store-generated id.
func (r *UserRepo) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	var u domain.User
	q := r.DB.Rebind(`INSERT INTO users(name, age, email, password) VALUES(?, ?, ?, ?) RETURNING ` + userColumns)
	if err := r.DB.GetContext(ctx, &u, q, in.Name, in.Age, in.Email, string(hash)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	q := r.DB.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	if err := r.DB.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	q := r.DB.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	if err := r.DB.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// All returns every user in store order. No pagination; ordering is whatever
// the store gives back.
func (r *UserRepo) All(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.DB.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users`); err != nil {
		return nil, err
	}
	return users, nil
}

// Update builds the SET clause from the fields present in the input, in fixed
// name, age, password order so the generated SQL is deterministic. Every value
// is bound positionally. An input with no fields set never reaches the builder:
// it short-circuits to the current row so we never render an empty SET clause.
func (r *UserRepo) Update(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
	if in.Empty() {
		return r.ByID(ctx, id)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *in.Age)
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "password = ?")
		args = append(args, string(hash))
	}
	args = append(args, id)

	q := r.DB.Rebind(`UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + userColumns)

	var u domain.User
	if err := r.DB.GetContext(ctx, &u, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Delete confirms the row exists, then deletes by id. A concurrent delete
// between the two steps shows up as zero rows affected and is reported as
// ErrNotFound, the same outcome the caller would have seen moments later.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	u, err := r.ByID(ctx, id)
	if err != nil {
		return false, err
	}

	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM users WHERE id = ?`), u.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotFound
	}
	return true, nil
}
