package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
	"eventmgmt/admin-console/internal/auth"
)

// loginResultMsg is sent when an asynchronous login attempt completes.
type loginResultMsg struct {
	err error
}

// LoginModel is the credential form shown while the session is
// anonymous. While an attempt is in flight, further submissions are
// ignored so concurrent logins cannot overlap.
type LoginModel struct {
	manager *auth.Manager
	theme   Theme

	email      textinput.Model
	password   textinput.Model
	focusIndex int
	pending    bool
	errMsg     string
}

func NewLoginModel(manager *auth.Manager, theme Theme) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return LoginModel{
		manager:  manager,
		theme:    theme,
		email:    email,
		password: password,
	}
}

func (model LoginModel) Update(message tea.Msg) (LoginModel, tea.Cmd) {
	switch message := message.(type) {
	case loginResultMsg:
		model.pending = false
		if message.err != nil {
			model.errMsg = api.ErrorMessage(message.err, "Login failed")
			model.password.SetValue("")
		}
		return model, nil

	case tea.KeyMsg:
		switch message.String() {
		case "tab", "shift+tab", "down", "up":
			model.focusIndex = (model.focusIndex + 1) % 2
			if model.focusIndex == 0 {
				model.password.Blur()
				return model, model.email.Focus()
			}
			model.email.Blur()
			return model, model.password.Focus()

		case "enter":
			if model.pending {
				return model, nil
			}
			email := strings.TrimSpace(model.email.Value())
			password := model.password.Value()
			if email == "" || password == "" {
				model.errMsg = "Email and password are required"
				return model, nil
			}
			model.pending = true
			model.errMsg = ""
			return model, model.submit(email, password)
		}
	}

	var cmd tea.Cmd
	if model.focusIndex == 0 {
		model.email, cmd = model.email.Update(message)
	} else {
		model.password, cmd = model.password.Update(message)
	}
	return model, cmd
}

// submit runs the login attempt off the message loop and delivers the
// outcome as a loginResultMsg.
func (model LoginModel) submit(email, password string) tea.Cmd {
	manager := model.manager
	return func() tea.Msg {
		return loginResultMsg{err: manager.Login(context.Background(), email, password)}
	}
}

func (model LoginModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render("Event Management Admin Console")

	var status string
	switch {
	case model.pending:
		status = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Signing in...")
	case model.errMsg != "":
		status = lipgloss.NewStyle().Foreground(model.theme.ToastError).Render(model.errMsg)
	}

	help := lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("tab switch field · enter sign in · ctrl+c quit")

	form := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		"Email    "+model.email.View(),
		"Password "+model.password.View(),
		"",
		status,
		"",
		help,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(1, 2).
		Render(form)
}
