package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"usersvc/internal/domain"
	"usersvc/internal/repos"
	"usersvc/internal/services"
)

// fakeStore satisfies repos.UserStore with a single canned user (id 1).
// failWith, when set, is returned by every method.
type fakeStore struct {
	failWith error
}

func (f *fakeStore) canned() *domain.User {
	return &domain.User{ID: 1, Name: "Test User", Age: 25, Email: "test@example.com", Hash: "hashed_password"}
}

func (f *fakeStore) Create(_ context.Context, in domain.CreateUserInput) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &domain.User{ID: 1, Name: in.Name, Age: in.Age, Email: in.Email, Hash: "hashed_password"}, nil
}

func (f *fakeStore) ByID(_ context.Context, id int64) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if id != 1 {
		return nil, repos.ErrNotFound
	}
	return f.canned(), nil
}

func (f *fakeStore) ByEmail(_ context.Context, _ string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.canned(), nil
}

func (f *fakeStore) All(_ context.Context) ([]domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []domain.User{*f.canned()}, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if id != 1 {
		return nil, repos.ErrNotFound
	}
	u := f.canned()
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Age != nil {
		u.Age = *in.Age
	}
	return u, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if id != 1 {
		return false, repos.ErrNotFound
	}
	return true, nil
}

func kindOf(t *testing.T, err error) services.ErrorKind {
	t.Helper()
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("want *services.Error, got %T: %v", err, err)
	}
	return svcErr.Kind
}

func TestUserService_Create(t *testing.T) {
	svc := services.NewUserService(&fakeStore{})

	view, err := svc.Create(context.Background(), domain.CreateUserInput{
		Name: "Test User", Age: 25, Email: "test@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatal(err)
	}
	if view.ID != 1 || view.Name != "Test User" || view.Age != 25 || view.Email != "test@example.com" {
		t.Fatalf("unexpected view: %+v", view)
	}

	// the serialized view must not carry the hash in any shape
	b, err := json.Marshal(view)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "password") || strings.Contains(string(b), "hashed") {
		t.Fatalf("view leaks password material: %s", b)
	}
}

func TestUserService_GetNotFound(t *testing.T) {
	svc := services.NewUserService(&fakeStore{})

	_, err := svc.Get(context.Background(), 999)
	if kindOf(t, err) != services.KindNotFound {
		t.Fatalf("want KindNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "999") {
		t.Fatalf("not-found message should name the id: %q", err.Error())
	}
}

func TestUserService_GetAll(t *testing.T) {
	svc := services.NewUserService(&fakeStore{})

	views, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || views[0].Name != "Test User" {
		t.Fatalf("unexpected views: %+v", views)
	}
}

func TestUserService_UpdateAgeOnly(t *testing.T) {
	svc := services.NewUserService(&fakeStore{})

	age := 30
	view, err := svc.Update(context.Background(), 1, domain.UpdateUserInput{Age: &age})
	if err != nil {
		t.Fatal(err)
	}
	if view.Age != 30 || view.Name != "Test User" {
		t.Fatalf("want age 30 with name untouched, got %+v", view)
	}
}

func TestUserService_UpdateNotFound(t *testing.T) {
	svc := services.NewUserService(&fakeStore{})

	age := 30
	_, err := svc.Update(context.Background(), 999, domain.UpdateUserInput{Age: &age})
	if kindOf(t, err) != services.KindNotFound {
		t.Fatalf("want KindNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc := services.NewUserService(&fakeStore{})

	ok, err := svc.Delete(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, err := svc.Delete(context.Background(), 1); err != nil {
		// fake keeps the row; just ensure repeated calls stay mapped
		if kindOf(t, err) != services.KindNotFound {
			t.Fatalf("unexpected kind: %v", err)
		}
	}
}

// sqliteService wires the service to a real repo over an in-memory store, for
// errors only the driver can produce.
func sqliteService(t *testing.T) services.UserService {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema := `
	CREATE TABLE users(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  name TEXT NOT NULL,
	  age INTEGER NOT NULL,
	  email TEXT NOT NULL UNIQUE,
	  password TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return services.NewUserService(repos.NewUserRepo(db))
}

func TestUserService_DuplicateEmailIsDatabase(t *testing.T) {
	svc := sqliteService(t)
	ctx := context.Background()

	in := domain.CreateUserInput{Name: "Test User", Age: 25, Email: "test@example.com", Password: "password123"}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Create(ctx, in)
	if err == nil {
		t.Fatal("want unique constraint violation")
	}
	if got := kindOf(t, err); got != services.KindDatabase {
		t.Fatalf("want KindDatabase, got %v (%v)", got, err)
	}
	if !strings.Contains(err.Error(), "users.email") {
		t.Fatalf("diagnostic message dropped: %q", err.Error())
	}
}

func TestUserService_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want services.ErrorKind
	}{
		{"not found", repos.ErrNotFound, services.KindNotFound},
		{"constraint", &pq.Error{Message: "duplicate key value violates unique constraint"}, services.KindDatabase},
		{"deadline", context.DeadlineExceeded, services.KindDatabase},
		{"anything else", errors.New("scan: type mismatch"), services.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewUserService(&fakeStore{failWith: tt.err})
			_, err := svc.GetAll(context.Background())
			if err == nil {
				t.Fatal("want error")
			}
			if got := kindOf(t, err); got != tt.want {
				t.Fatalf("want kind %v, got %v (%v)", tt.want, got, err)
			}
		})
	}
}
