// Package ui implements the terminal console: a single-threaded
// bubbletea message loop. Network calls run as commands off the loop
// and deliver their results back as messages, so the interface never
// blocks on the backend.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
	"eventmgmt/admin-console/internal/audit"
	"eventmgmt/admin-console/internal/auth"
)

// Route identifies the active content view once authenticated.
type Route int

const (
	RouteDashboard Route = iota
	RouteEvents
	RouteUsers
	RouteAnalytics
	RouteSettings
	RouteNotFound
)

func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteEvents:
		return "events"
	case RouteUsers:
		return "users"
	case RouteAnalytics:
		return "analytics"
	case RouteSettings:
		return "settings"
	default:
		return "not found"
	}
}

// RouteFor maps a route name to a Route. Unknown names land on the
// not-found view rather than an error.
func RouteFor(name string) Route {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dashboard", "home":
		return RouteDashboard
	case "events":
		return RouteEvents
	case "users":
		return RouteUsers
	case "analytics":
		return RouteAnalytics
	case "settings":
		return RouteSettings
	default:
		return RouteNotFound
	}
}

// ToastMsg displays a transient notification in the status line. It
// is exported so the program notifier can inject auth notifications
// into the loop from outside.
type ToastMsg struct {
	Title   string
	Detail  string
	IsError bool
}

// toastFadeMsg clears the toast after toastFadeDelay.
type toastFadeMsg struct{}

// sessionEndedMsg is sent after an asynchronous logout completes so
// the login form renders promptly.
type sessionEndedMsg struct{}

const toastFadeDelay = 3 * time.Second

func toastCmd(title, detail string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Title: title, Detail: detail, IsError: isError}
	}
}

// ModelConfig carries the root model's optional collaborators.
type ModelConfig struct {
	Audit      *audit.Logger
	StartRoute Route
}

// Model is the top-level bubbletea model. It gates all content on the
// session state: Unknown renders a restore indicator, Anonymous the
// login form, Authenticated the routed views.
type Model struct {
	manager *auth.Manager
	client  *api.Client
	audit   *audit.Logger
	theme   Theme
	keys    KeyMap

	width  int
	height int

	route     Route
	login     LoginModel
	dashboard DashboardModel
	events    EventsModel
	users     UsersModel
	eventForm *EventFormModel
	userForm  *UserFormModel

	toast *ToastMsg
}

// NewModel builds the root model. Call manager.Restore() before
// handing the model to a bubbletea program so the first frame already
// reflects the stored session.
func NewModel(manager *auth.Manager, client *api.Client, cfg ModelConfig) Model {
	theme := DefaultTheme
	keys := DefaultKeyMap
	return Model{
		manager:   manager,
		client:    client,
		audit:     cfg.Audit,
		theme:     theme,
		keys:      keys,
		route:     cfg.StartRoute,
		login:     NewLoginModel(manager, theme),
		dashboard: NewDashboardModel(client, theme),
		events:    NewEventsModel(client, theme, keys),
		users:     NewUsersModel(client, theme, keys),
	}
}

// Init implements tea.Model. When a session was restored, the initial
// route's data loads immediately.
func (model Model) Init() tea.Cmd {
	if model.manager.State() != auth.StateAuthenticated {
		return nil
	}
	return model.loadRoute(model.route)
}

// loadRoute returns the fetch command for a route, nil for the static
// views.
func (model Model) loadRoute(route Route) tea.Cmd {
	switch route {
	case RouteDashboard:
		return model.dashboard.Load()
	case RouteEvents:
		return model.events.Load(1)
	case RouteUsers:
		return model.users.Load()
	default:
		return nil
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case ToastMsg:
		model.toast = &message
		return model, tea.Tick(toastFadeDelay, func(time.Time) tea.Msg {
			return toastFadeMsg{}
		})

	case toastFadeMsg:
		model.toast = nil
		return model, nil

	case loginResultMsg:
		var cmd tea.Cmd
		model.login, cmd = model.login.Update(message)
		if message.err == nil {
			model.route = RouteDashboard
			return model, tea.Batch(cmd, model.loadRoute(model.route))
		}
		return model, cmd

	case eventSavedMsg:
		return model.handleEventSaved(message)

	case userSavedMsg:
		return model.handleUserSaved(message)

	case eventDeletedMsg:
		if message.err == nil {
			model.auditLog("event.delete", strconv.Itoa(message.id), "success", "")
		}
		var cmd tea.Cmd
		model.events, cmd = model.events.Update(message)
		return model, cmd

	case userDeletedMsg:
		if message.err == nil {
			model.auditLog("user.delete", strconv.Itoa(message.id), "success", "")
		}
		var cmd tea.Cmd
		model.users, cmd = model.users.Update(message)
		return model, cmd

	case tea.KeyMsg:
		return model.handleKeys(message)
	}

	// Data messages go to their owning child.
	return model.delegate(message)
}

// delegate routes non-key messages to the child that owns the message
// type.
func (model Model) delegate(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch message.(type) {
	case dashboardStatsMsg:
		model.dashboard, cmd = model.dashboard.Update(message)
	case eventsLoadedMsg, eventDetailsMsg:
		model.events, cmd = model.events.Update(message)
	case usersLoadedMsg, userDetailsMsg:
		model.users, cmd = model.users.Update(message)
	}
	return model, cmd
}

func (model Model) handleEventSaved(message eventSavedMsg) (tea.Model, tea.Cmd) {
	if model.eventForm != nil {
		form, cmd := model.eventForm.Update(message)
		model.eventForm = &form
		if message.err != nil {
			return model, cmd
		}
	}
	if message.err != nil {
		return model, nil
	}

	action := "event.create"
	title := "Event created"
	if message.update {
		action = "event.update"
		title = "Event updated"
	}
	model.auditLog(action, strconv.Itoa(message.id), "success", "")
	model.eventForm = nil
	model.events.loading = true
	return model, tea.Batch(
		toastCmd(title, fmt.Sprintf("Event %d saved", message.id), false),
		model.events.Load(model.events.page.Page),
	)
}

func (model Model) handleUserSaved(message userSavedMsg) (tea.Model, tea.Cmd) {
	if model.userForm != nil {
		form, cmd := model.userForm.Update(message)
		model.userForm = &form
		if message.err != nil {
			return model, cmd
		}
	}
	if message.err != nil {
		return model, nil
	}

	action := "user.create"
	title := "User created"
	if message.update {
		action = "user.update"
		title = "User updated"
	}
	model.auditLog(action, strconv.Itoa(message.id), "success", "")
	model.userForm = nil
	model.users.loading = true
	return model, tea.Batch(
		toastCmd(title, fmt.Sprintf("User %d saved", message.id), false),
		model.users.Load(),
	)
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even mid-typing.
	if message.String() == "ctrl+c" {
		return model, tea.Quit
	}

	// Anonymous (or still unknown) sessions only see the login form.
	if model.manager.State() != auth.StateAuthenticated {
		var cmd tea.Cmd
		model.login, cmd = model.login.Update(message)
		return model, cmd
	}

	// An open form captures everything except escape.
	if model.eventForm != nil {
		if key.Matches(message, model.keys.Back) {
			model.eventForm = nil
			return model, nil
		}
		form, cmd := model.eventForm.Update(message)
		model.eventForm = &form
		return model, cmd
	}
	if model.userForm != nil {
		if key.Matches(message, model.keys.Back) {
			model.userForm = nil
			return model, nil
		}
		form, cmd := model.userForm.Update(message)
		model.userForm = &form
		return model, cmd
	}

	if key.Matches(message, model.keys.Logout) {
		return model.logout()
	}

	// Route switches and quit stay inactive while a text input is
	// capturing keystrokes.
	if !model.typing() {
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.GoDashboard):
			return model.switchRoute(RouteDashboard)
		case key.Matches(message, model.keys.GoEvents):
			return model.switchRoute(RouteEvents)
		case key.Matches(message, model.keys.GoUsers):
			return model.switchRoute(RouteUsers)
		case key.Matches(message, model.keys.GoAnalytics):
			return model.switchRoute(RouteAnalytics)
		case key.Matches(message, model.keys.GoSettings):
			return model.switchRoute(RouteSettings)
		}

		// Form openers for the list routes.
		if key.Matches(message, model.keys.New) {
			switch model.route {
			case RouteEvents:
				form := NewEventFormModel(model.client, model.theme, nil)
				model.eventForm = &form
				return model, nil
			case RouteUsers:
				form := NewUserFormModel(model.client, model.theme, nil)
				model.userForm = &form
				return model, nil
			}
		}
		if key.Matches(message, model.keys.Edit) {
			switch model.route {
			case RouteEvents:
				if event, ok := model.events.selected(); ok {
					form := NewEventFormModel(model.client, model.theme, &event)
					model.eventForm = &form
					return model, nil
				}
			case RouteUsers:
				if user, ok := model.users.selected(); ok {
					form := NewUserFormModel(model.client, model.theme, &user)
					model.userForm = &form
					return model, nil
				}
			}
		}
	}

	// Remaining keys go to the active route.
	var cmd tea.Cmd
	switch model.route {
	case RouteEvents:
		model.events, cmd = model.events.Update(message)
	case RouteUsers:
		model.users, cmd = model.users.Update(message)
	}
	return model, cmd
}

// typing reports whether a text input currently owns keystrokes, in
// which case single-letter bindings must stay inactive.
func (model Model) typing() bool {
	return model.route == RouteEvents && model.events.searching
}

func (model Model) switchRoute(route Route) (tea.Model, tea.Cmd) {
	model.route = route
	return model, model.loadRoute(route)
}

// logout resets the chrome and hands teardown to the manager, which
// audits and notifies on its own.
func (model Model) logout() (tea.Model, tea.Cmd) {
	manager := model.manager
	model.route = RouteDashboard
	model.login = NewLoginModel(model.manager, model.theme)
	return model, func() tea.Msg {
		manager.Logout(context.Background())
		return sessionEndedMsg{}
	}
}

func (model Model) auditLog(action, target, outcome, detail string) {
	actor := ""
	if user, ok := model.manager.CurrentUser(); ok {
		actor = user.Email
	}
	// Auditing must never break the UI.
	_ = model.audit.Log(actor, action, target, outcome, detail)
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 {
		return "Loading..."
	}

	switch model.manager.State() {
	case auth.StateUnknown:
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center,
			"Restoring session...")
	case auth.StateAnonymous:
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center,
			model.login.View())
	}

	content := model.contentView()
	chrome := lipgloss.JoinVertical(lipgloss.Left,
		model.headerView(),
		"",
		content,
	)
	if model.toast != nil {
		style := lipgloss.NewStyle().Foreground(model.theme.ToastSuccess)
		if model.toast.IsError {
			style = lipgloss.NewStyle().Foreground(model.theme.ToastError)
		}
		line := model.toast.Title
		if model.toast.Detail != "" {
			line += ": " + model.toast.Detail
		}
		chrome = lipgloss.JoinVertical(lipgloss.Left, chrome, "", style.Render(line))
	}
	return chrome
}

func (model Model) headerView() string {
	user, _ := model.manager.CurrentUser()
	identity := fmt.Sprintf("%s <%s> %s", user.Username, user.Email, user.Role)

	var tabs []string
	for route := RouteDashboard; route <= RouteSettings; route++ {
		label := fmt.Sprintf("%d:%s", int(route)+1, route)
		if route == model.route {
			label = lipgloss.NewStyle().Bold(true).
				Foreground(model.theme.SelectedForeground).
				Background(model.theme.SelectedBackground).
				Render(label)
		} else {
			label = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(label)
		}
		tabs = append(tabs, label)
	}

	left := strings.Join(tabs, " ")
	right := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(identity)
	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (model Model) contentView() string {
	if model.eventForm != nil {
		return model.eventForm.View()
	}
	if model.userForm != nil {
		return model.userForm.View()
	}

	switch model.route {
	case RouteDashboard:
		return model.dashboard.View()
	case RouteEvents:
		return model.events.View()
	case RouteUsers:
		return model.users.View()
	case RouteAnalytics:
		return placeholderView(model.theme, "Analytics", "Charts are not wired up yet.")
	case RouteSettings:
		return placeholderView(model.theme, "Settings", "Nothing to configure from here yet.")
	default:
		return placeholderView(model.theme, "Not found", "Unknown view. Press 1 for the dashboard.")
	}
}

func placeholderView(theme Theme, title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(title),
		"",
		lipgloss.NewStyle().Foreground(theme.FaintText).Render(body),
	)
}
