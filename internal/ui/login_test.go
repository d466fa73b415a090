package ui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eventmgmt/admin-console/internal/api"
	"eventmgmt/admin-console/internal/auth"
	"eventmgmt/admin-console/internal/session"
)

func newLoginModel(t *testing.T, handler http.Handler) LoginModel {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("api.NewClient() error: %v", err)
	}
	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("session.NewFileStore() error: %v", err)
	}
	manager, err := auth.NewManager(client, store, auth.ManagerConfig{})
	if err != nil {
		t.Fatalf("auth.NewManager() error: %v", err)
	}
	return NewLoginModel(manager, DefaultTheme)
}

func fillCredentials(model LoginModel) LoginModel {
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a@b.com")})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	return model
}

func TestLoginRequiresCredentials(t *testing.T) {
	model := newLoginModel(t, http.NotFoundHandler())

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty form must not submit")
	}
	if !strings.Contains(model.View(), "required") {
		t.Fatal("view should show the validation message")
	}
}

func TestLoginPendingBlocksResubmit(t *testing.T) {
	model := fillCredentials(newLoginModel(t, http.NotFoundHandler()))

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("first enter should submit")
	}
	if !model.pending {
		t.Fatal("submission should mark the form pending")
	}

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("enter while pending must not submit again")
	}
}

func TestLoginFailureShowsMessageAndClearsPassword(t *testing.T) {
	model := fillCredentials(newLoginModel(t, http.NotFoundHandler()))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model, _ = model.Update(loginResultMsg{err: errors.New("boom")})
	if model.pending {
		t.Fatal("failure should clear the pending flag")
	}
	if model.password.Value() != "" {
		t.Fatal("failure should clear the password field")
	}
	if model.errMsg == "" {
		t.Fatal("failure should set an error message")
	}
}
