package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (t staticToken) AccessToken() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client, server
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"events":[],"total":0}`))
	}))
	client.SetTokenSource(staticToken("tok-abc"))

	client.ListEvents(context.Background(), ListEventsParams{})
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	client.SetTokenSource(staticToken(""))

	client.ListEvents(context.Background(), ListEventsParams{})
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClientExtractsBackendErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"event name already taken"}`))
	}))

	_, err := client.UpsertEvent(context.Background(), UpsertEventInput{Name: "x"})
	if err == nil {
		t.Fatalf("expected error for 409 response")
	}
	if got := ErrorMessage(err, "fallback"); got != "event name already taken" {
		t.Fatalf("expected backend message, got %q", got)
	}
}

func TestErrorMessageFallsBack(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	}))

	_, err := client.UpsertUser(context.Background(), UpsertUserInput{Username: "a"})
	if err == nil {
		t.Fatalf("expected error for 500 response")
	}
	if got := ErrorMessage(err, "something went wrong"); got != "something went wrong" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatalf("expected error for empty BaseURL")
	}
}
