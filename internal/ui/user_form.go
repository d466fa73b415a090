package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
)

// userSavedMsg is sent when an asynchronous user upsert completes.
type userSavedMsg struct {
	id     int
	update bool
	err    error
}

// User form field indices, in display order.
const (
	usrFieldUsername = iota
	usrFieldEmail
	usrFieldMobile
	usrFieldPassword
	usrFieldRole
	usrFieldCount
)

var userFieldLabels = [usrFieldCount]string{
	"Username", "Email", "Mobile", "Password", "Role",
}

// UserFormModel is the create/edit form for a managed account. A zero
// id means create. The password field is only sent when filled, so
// editing without typing a password leaves it unchanged.
type UserFormModel struct {
	client *api.Client
	theme  Theme

	id      int
	inputs  [usrFieldCount]textinput.Model
	focus   int
	pending bool
	errMsg  string
}

func NewUserFormModel(client *api.Client, theme Theme, existing *api.User) UserFormModel {
	model := UserFormModel{client: client, theme: theme}
	for i := range model.inputs {
		input := textinput.New()
		input.Placeholder = userFieldLabels[i]
		input.CharLimit = 120
		model.inputs[i] = input
	}
	model.inputs[usrFieldPassword].EchoMode = textinput.EchoPassword
	model.inputs[usrFieldRole].Placeholder = "ADMIN / USER"
	model.inputs[usrFieldUsername].Focus()

	if existing != nil {
		model.id = existing.ID
		model.inputs[usrFieldUsername].SetValue(existing.Username)
		model.inputs[usrFieldEmail].SetValue(existing.Email)
		if existing.Mobile != nil {
			model.inputs[usrFieldMobile].SetValue(*existing.Mobile)
		}
		model.inputs[usrFieldRole].SetValue(existing.Role)
	} else {
		model.inputs[usrFieldRole].SetValue("USER")
	}
	return model
}

func (model UserFormModel) Update(message tea.Msg) (UserFormModel, tea.Cmd) {
	switch message := message.(type) {
	case userSavedMsg:
		model.pending = false
		if message.err != nil {
			model.errMsg = api.ErrorMessage(message.err, "Could not save user")
		}
		return model, nil

	case tea.KeyMsg:
		switch message.String() {
		case "tab", "down":
			return model.moveFocus(1)
		case "shift+tab", "up":
			return model.moveFocus(-1)
		case "enter", "ctrl+d":
			if model.pending {
				return model, nil
			}
			return model.submit()
		}
	}

	var cmd tea.Cmd
	model.inputs[model.focus], cmd = model.inputs[model.focus].Update(message)
	return model, cmd
}

func (model UserFormModel) moveFocus(delta int) (UserFormModel, tea.Cmd) {
	model.inputs[model.focus].Blur()
	model.focus = (model.focus + delta + usrFieldCount) % usrFieldCount
	return model, model.inputs[model.focus].Focus()
}

func (model UserFormModel) submit() (UserFormModel, tea.Cmd) {
	input := api.UpsertUserInput{
		ID:       model.id,
		Username: strings.TrimSpace(model.inputs[usrFieldUsername].Value()),
		Email:    strings.TrimSpace(model.inputs[usrFieldEmail].Value()),
		Mobile:   strings.TrimSpace(model.inputs[usrFieldMobile].Value()),
		Password: model.inputs[usrFieldPassword].Value(),
		Role:     strings.ToUpper(strings.TrimSpace(model.inputs[usrFieldRole].Value())),
	}

	if input.Username == "" || input.Email == "" {
		model.errMsg = "Username and email are required"
		return model, nil
	}
	if input.Role != "ADMIN" && input.Role != "USER" {
		model.errMsg = "Role must be ADMIN or USER"
		return model, nil
	}
	if model.id == 0 && input.Password == "" {
		model.errMsg = "Password is required for new users"
		return model, nil
	}

	model.pending = true
	model.errMsg = ""
	client := model.client
	update := model.id != 0
	return model, func() tea.Msg {
		result, err := client.UpsertUser(context.Background(), input)
		id := result.ID
		if id == 0 {
			id = input.ID
		}
		return userSavedMsg{id: id, update: update, err: err}
	}
}

func (model UserFormModel) View() string {
	title := "New user"
	if model.id != 0 {
		title = fmt.Sprintf("Edit user %d", model.id)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(title))
	b.WriteString("\n\n")
	for i := range model.inputs {
		fmt.Fprintf(&b, "%-10s %s\n", userFieldLabels[i], model.inputs[i].View())
	}

	if model.pending {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Saving..."))
	} else if model.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(model.theme.ToastError).Render(model.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("tab next field · enter save · esc cancel"))
	return b.String()
}
