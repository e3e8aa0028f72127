package api_test

import (
	"encoding/json"
	"errors"
	"testing"

	"usersvc/internal/api"
	"usersvc/internal/domain"
	"usersvc/internal/services"
)

func TestSuccessWrapsPayloadVerbatim(t *testing.T) {
	view := domain.UserView{ID: 1, Name: "Test User", Age: 25, Email: "test@example.com"}

	b, err := json.Marshal(api.OK(view))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"status":200,"data":{"id":1,"name":"Test User","age":25,"email":"test@example.com"}}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}

	// generic over other payload shapes
	if _, err := json.Marshal(api.OK([]domain.UserView{view})); err != nil {
		t.Fatal(err)
	}
	b, _ = json.Marshal(api.OK(true))
	if string(b) != `{"status":200,"data":true}` {
		t.Fatalf("boolean payload: %s", b)
	}
}

func TestFromDomainStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &services.Error{Kind: services.KindNotFound, Message: "user not found"}, 404},
		{"database", &services.Error{Kind: services.KindDatabase, Message: "connection refused"}, 500},
		{"unknown", &services.Error{Kind: services.KindUnknown, Message: "boom"}, 500},
		{"plain error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := api.FromDomain(tt.err)
			if e.Status != tt.want {
				t.Fatalf("want %d, got %d", tt.want, e.Status)
			}
			if e.Message == "" {
				t.Fatal("message dropped")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	e := api.ValidationError(map[string]string{"name": "is required"})
	if e.Status != 400 {
		t.Fatalf("want 400, got %d", e.Status)
	}
	b, _ := json.Marshal(e)
	if want := `{"status":400,"message":"validation failed","fields":{"name":"is required"}}`; string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}
