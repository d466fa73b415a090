package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestListUsers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"users": [
				{"id": 1, "username": "a", "email": "a@b.com", "role": "ADMIN", "invitation": "SENT"},
				{"id": 2, "username": "b", "email": "b@b.com", "mobile": "555", "role": "USER"}
			],
			"message": "Success"
		}`))
	}))

	users, message := client.ListUsers(context.Background())
	if message != "" {
		t.Fatalf("expected no degradation message, got %q", message)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Invitation != InvitationSent || users[0].Mobile != nil {
		t.Fatalf("unexpected first user: %+v", users[0])
	}
	if users[1].Mobile == nil || *users[1].Mobile != "555" {
		t.Fatalf("expected mobile 555, got %+v", users[1].Mobile)
	}
}

func TestListUsersDegradesOnFailure(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	users, message := client.ListUsers(context.Background())
	if len(users) != 0 {
		t.Fatalf("expected empty users, got %d", len(users))
	}
	if message == "" {
		t.Fatalf("expected a degradation message")
	}
}

func TestUpsertUserOmitsEmptyPassword(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/upsert" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id": 4, "message": "ok"}`))
	}))
	client.SetTokenSource(staticToken("tok"))

	result, err := client.UpsertUser(context.Background(), UpsertUserInput{Username: "carol", Email: "c@b.com", Role: "USER"})
	if err != nil {
		t.Fatalf("UpsertUser() error: %v", err)
	}
	if result.ID != 4 {
		t.Fatalf("expected id 4, got %d", result.ID)
	}
	if _, present := body["password"]; present {
		t.Fatalf("empty password must not be sent, got body %v", body)
	}
	if _, present := body["id"]; present {
		t.Fatalf("zero id must not be sent, got body %v", body)
	}
}

func TestDeleteUserSuccessIs200(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/admin/users/9/delete" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"User deleted successfully"}`))
	}))

	if err := client.DeleteUser(context.Background(), 9); err != nil {
		t.Fatalf("DeleteUser() error: %v", err)
	}
}

func TestUserDetails(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/2/details" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"user": {"id": 2, "username": "b", "email": "b@b.com", "role": "USER"}, "message": "ok"}`))
	}))

	user, err := client.UserDetails(context.Background(), 2)
	if err != nil {
		t.Fatalf("UserDetails() error: %v", err)
	}
	if user.ID != 2 || user.Username != "b" {
		t.Fatalf("unexpected user: %+v", user)
	}
}
