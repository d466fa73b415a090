package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
)

// usersLoadedMsg carries the full user listing. Failures degrade into
// an empty list plus a message, mirroring the events listing.
type usersLoadedMsg struct {
	users   []api.User
	message string
}

// userDetailsMsg is sent when a details fetch completes.
type userDetailsMsg struct {
	user api.User
	err  error
}

// userDeletedMsg is sent when an asynchronous delete completes.
type userDeletedMsg struct {
	id  int
	err error
}

// UsersModel is the managed-accounts table with delete confirmation
// and a details pane.
type UsersModel struct {
	client *api.Client
	theme  Theme
	keys   KeyMap

	users   []api.User
	message string
	cursor  int
	loading bool

	confirmDeleteID int
	details         *api.User
}

func NewUsersModel(client *api.Client, theme Theme, keys KeyMap) UsersModel {
	return UsersModel{client: client, theme: theme, keys: keys}
}

// Load returns the command that fetches the user listing.
func (model UsersModel) Load() tea.Cmd {
	client := model.client
	return func() tea.Msg {
		users, message := client.ListUsers(context.Background())
		return usersLoadedMsg{users: users, message: message}
	}
}

func (model UsersModel) Update(message tea.Msg) (UsersModel, tea.Cmd) {
	switch message := message.(type) {
	case usersLoadedMsg:
		model.loading = false
		model.users = message.users
		model.message = message.message
		if model.cursor >= len(model.users) {
			model.cursor = max(0, len(model.users)-1)
		}
		return model, nil

	case userDetailsMsg:
		model.loading = false
		if message.err != nil {
			return model, toastCmd("Load failed", api.ErrorMessage(message.err, "Could not load user"), true)
		}
		model.details = &message.user
		return model, nil

	case userDeletedMsg:
		if message.err != nil {
			return model, toastCmd("Delete failed", api.ErrorMessage(message.err, "Could not delete user"), true)
		}
		model.loading = true
		return model, tea.Batch(
			toastCmd("User deleted", fmt.Sprintf("User %d removed", message.id), false),
			model.Load(),
		)

	case tea.KeyMsg:
		return model.handleKeys(message)
	}
	return model, nil
}

func (model UsersModel) handleKeys(message tea.KeyMsg) (UsersModel, tea.Cmd) {
	if model.details != nil {
		if key.Matches(message, model.keys.Back) {
			model.details = nil
		}
		return model, nil
	}

	if model.confirmDeleteID != 0 {
		id := model.confirmDeleteID
		model.confirmDeleteID = 0
		if message.String() == "y" {
			client := model.client
			return model, func() tea.Msg {
				return userDeletedMsg{id: id, err: client.DeleteUser(context.Background(), id)}
			}
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.users)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.Reload):
		model.loading = true
		return model, model.Load()
	case key.Matches(message, model.keys.Delete):
		if user, ok := model.selected(); ok {
			model.confirmDeleteID = user.ID
		}
	case key.Matches(message, model.keys.Open):
		if user, ok := model.selected(); ok {
			client := model.client
			id := user.ID
			model.loading = true
			return model, func() tea.Msg {
				details, err := client.UserDetails(context.Background(), id)
				return userDetailsMsg{user: details, err: err}
			}
		}
	}
	return model, nil
}

func (model UsersModel) selected() (api.User, bool) {
	if model.cursor < 0 || model.cursor >= len(model.users) {
		return api.User{}, false
	}
	return model.users[model.cursor], true
}

func (model UsersModel) View() string {
	if model.details != nil {
		return model.detailsView()
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("Users · %d total", len(model.users))))
	b.WriteString("\n")

	switch {
	case model.loading:
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading users..."))
	case len(model.users) == 0:
		message := model.message
		if message == "" {
			message = "No users found"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(message))
	default:
		for i, user := range model.users {
			b.WriteString(model.renderRow(user, i == model.cursor))
			b.WriteString("\n")
		}
	}

	if id := model.confirmDeleteID; id != 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.ToastError).
			Render(fmt.Sprintf("Delete user %d? (y/N)", id)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("enter details · n new · e edit · d delete · r reload"))
	return b.String()
}

func (model UsersModel) renderRow(user api.User, selected bool) string {
	mobile := ""
	if user.Mobile != nil {
		mobile = *user.Mobile
	}
	role := lipgloss.NewStyle().Foreground(model.roleColor(user.Role)).Render(fmt.Sprintf("%-6s", user.Role))
	row := fmt.Sprintf("%4d  %-20s %-28s %-14s %s",
		user.ID, truncate(user.Username, 20), truncate(user.Email, 28), mobile, role)
	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(row)
	}
	return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(row)
}

func (model UsersModel) roleColor(role string) lipgloss.Color {
	if role == "ADMIN" {
		return model.theme.RoleAdmin
	}
	return model.theme.RoleUser
}

func (model UsersModel) detailsView() string {
	user := model.details
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("User %d · %s", user.ID, user.Username)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Email       %s\n", user.Email)
	if user.Mobile != nil {
		fmt.Fprintf(&b, "Mobile      %s\n", *user.Mobile)
	}
	fmt.Fprintf(&b, "Role        %s\n", user.Role)
	if user.Invitation != "" {
		fmt.Fprintf(&b, "Invitation  %s\n", user.Invitation)
	}
	if user.CreatedAt != "" {
		fmt.Fprintf(&b, "Created     %s by %s\n", user.CreatedAt, user.CreatedBy)
	}
	if user.UpdatedAt != "" {
		fmt.Fprintf(&b, "Updated     %s by %s\n", user.UpdatedAt, user.UpdatedBy)
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("esc back"))
	return b.String()
}
