package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eventmgmt/admin-console/internal/api"
)

func newFormClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("api.NewClient() error: %v", err)
	}
	return client
}

func TestEventFormValidation(t *testing.T) {
	model := NewEventFormModel(newFormClient(t, http.NotFoundHandler()), DefaultTheme, nil)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty form must not submit")
	}
	if !strings.Contains(model.errMsg, "required") {
		t.Fatalf("expected required-fields message, got %q", model.errMsg)
	}

	model.inputs[evFieldName].SetValue("Launch party")
	model.inputs[evFieldDate].SetValue("2026-09-12")
	model.inputs[evFieldStatus].SetValue("SOMEDAY")
	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("invalid status must not submit")
	}
	if !strings.Contains(model.errMsg, "Status") {
		t.Fatalf("expected status message, got %q", model.errMsg)
	}
}

func TestEventFormEditSubmitsUpdate(t *testing.T) {
	var method, path string
	client := newFormClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	}))
	existing := &api.Event{ID: 7, Name: "Launch party", EventDate: "2026-09-12", EventStatus: api.EventStatusActive}
	model := NewEventFormModel(client, DefaultTheme, existing)

	if model.inputs[evFieldName].Value() != "Launch party" {
		t.Fatal("edit form should prefill from the existing event")
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("valid edit should submit")
	}
	result := cmd()
	saved, ok := result.(eventSavedMsg)
	if !ok {
		t.Fatalf("expected eventSavedMsg, got %T", result)
	}
	if saved.err != nil || !saved.update || saved.id != 7 {
		t.Fatalf("unexpected save result: %+v", saved)
	}
	if method != http.MethodPut || path != "/event/7/update" {
		t.Fatalf("expected PUT /event/7/update, got %s %s", method, path)
	}
}

func TestUserFormValidation(t *testing.T) {
	model := NewUserFormModel(newFormClient(t, http.NotFoundHandler()), DefaultTheme, nil)

	model.inputs[usrFieldUsername].SetValue("carol")
	model.inputs[usrFieldEmail].SetValue("carol@b.com")
	model.inputs[usrFieldRole].SetValue("boss")
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("invalid role must not submit")
	}
	if !strings.Contains(model.errMsg, "Role") {
		t.Fatalf("expected role message, got %q", model.errMsg)
	}

	model.inputs[usrFieldRole].SetValue("USER")
	model, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("new user without password must not submit")
	}
	if !strings.Contains(model.errMsg, "Password") {
		t.Fatalf("expected password message, got %q", model.errMsg)
	}
}

func TestUserFormEditOmitsEmptyPassword(t *testing.T) {
	var payload map[string]any
	client := newFormClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		w.Write([]byte(`{"id":3}`))
	}))
	mobile := "555-0100"
	existing := &api.User{ID: 3, Username: "carol", Email: "carol@b.com", Mobile: &mobile, Role: "USER"}
	model := NewUserFormModel(client, DefaultTheme, existing)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("valid edit should submit")
	}
	result := cmd()
	saved, ok := result.(userSavedMsg)
	if !ok {
		t.Fatalf("expected userSavedMsg, got %T", result)
	}
	if saved.err != nil || !saved.update {
		t.Fatalf("unexpected save result: %+v", saved)
	}
	if _, present := payload["password"]; present {
		t.Fatal("editing without typing a password must not send one")
	}
	if payload["mobile"] != "555-0100" {
		t.Fatalf("expected mobile on the wire, got %v", payload["mobile"])
	}
}
