package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUser_PasswordHashNotSerialized(t *testing.T) {
	user := User{
		ID:           "65f1c0ffee0000000000abcd",
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Now(),
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("failed to marshal user: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("password hash leaked into JSON: %s", data)
	}
	if !strings.Contains(string(data), `"username":"alice"`) {
		t.Fatalf("expected username in JSON, got %s", data)
	}
}

func TestAuthResult_TokenOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(AuthResult{ID: "1", Username: "bob"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"id":"1","username":"bob"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}
