package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
)

// eventsLoadedMsg carries one page of the events listing. The client
// degrades failures into an empty page, so there is no error branch.
type eventsLoadedMsg struct {
	page api.EventPage
}

// eventDetailsMsg is sent when a details fetch completes.
type eventDetailsMsg struct {
	details api.EventDetails
	err     error
}

// eventDeletedMsg is sent when an asynchronous delete completes.
type eventDeletedMsg struct {
	id  int
	err error
}

// sortColumns are the server-side sort keys cycled by the sort key
// binding. The empty string means the backend's default order.
var sortColumns = []string{"", "eventDate", "name", "eventStatus"}

// EventsModel is the paginated events table with search, sort, delete
// confirmation, and a details pane.
type EventsModel struct {
	client *api.Client
	theme  Theme
	keys   KeyMap

	page    api.EventPage
	cursor  int
	loading bool

	search    textinput.Model
	searching bool

	sortIndex int
	sortDesc  bool

	// Non-zero while a delete awaits confirmation.
	confirmDeleteID int

	// Non-nil while the details pane is open.
	details *api.EventDetails
}

func NewEventsModel(client *api.Client, theme Theme, keys KeyMap) EventsModel {
	search := textinput.New()
	search.Placeholder = "search events"
	search.CharLimit = 120
	return EventsModel{
		client: client,
		theme:  theme,
		keys:   keys,
		search: search,
	}
}

// Load returns the command that fetches the given page with the
// current search and sort settings.
func (model EventsModel) Load(page int) tea.Cmd {
	client := model.client
	params := api.ListEventsParams{
		Page:   page,
		Limit:  api.DefaultPageSize,
		Search: strings.TrimSpace(model.search.Value()),
		SortBy: sortColumns[model.sortIndex],
	}
	if params.SortBy != "" {
		params.SortOrder = "asc"
		if model.sortDesc {
			params.SortOrder = "desc"
		}
	}
	return func() tea.Msg {
		return eventsLoadedMsg{page: client.ListEvents(context.Background(), params)}
	}
}

func (model EventsModel) Update(message tea.Msg) (EventsModel, tea.Cmd) {
	switch message := message.(type) {
	case eventsLoadedMsg:
		model.loading = false
		model.page = message.page
		if model.cursor >= len(model.page.Events) {
			model.cursor = max(0, len(model.page.Events)-1)
		}
		return model, nil

	case eventDetailsMsg:
		model.loading = false
		if message.err != nil {
			return model, toastCmd("Load failed", api.ErrorMessage(message.err, "Could not load event"), true)
		}
		model.details = &message.details
		return model, nil

	case eventDeletedMsg:
		if message.err != nil {
			return model, toastCmd("Delete failed", api.ErrorMessage(message.err, "Could not delete event"), true)
		}
		model.loading = true
		return model, tea.Batch(
			toastCmd("Event deleted", fmt.Sprintf("Event %d removed", message.id), false),
			model.Load(model.page.Page),
		)

	case tea.KeyMsg:
		return model.handleKeys(message)
	}
	return model, nil
}

func (model EventsModel) handleKeys(message tea.KeyMsg) (EventsModel, tea.Cmd) {
	// The details pane swallows everything except back.
	if model.details != nil {
		if key.Matches(message, model.keys.Back) {
			model.details = nil
		}
		return model, nil
	}

	// Pending delete confirmation: y commits, anything else cancels.
	if model.confirmDeleteID != 0 {
		id := model.confirmDeleteID
		model.confirmDeleteID = 0
		if message.String() == "y" {
			client := model.client
			return model, func() tea.Msg {
				return eventDeletedMsg{id: id, err: client.DeleteEvent(context.Background(), id)}
			}
		}
		return model, nil
	}

	// Search input mode: enter applies, esc clears.
	if model.searching {
		switch message.String() {
		case "enter":
			model.searching = false
			model.search.Blur()
			model.loading = true
			return model, model.Load(1)
		case "esc":
			model.searching = false
			model.search.Blur()
			model.search.SetValue("")
			model.loading = true
			return model, model.Load(1)
		}
		var cmd tea.Cmd
		model.search, cmd = model.search.Update(message)
		return model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.page.Events)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.PagePrev):
		if model.page.Page > 1 {
			model.loading = true
			return model, model.Load(model.page.Page - 1)
		}
	case key.Matches(message, model.keys.PageNext):
		if model.page.Page < model.page.TotalPages {
			model.loading = true
			return model, model.Load(model.page.Page + 1)
		}
	case key.Matches(message, model.keys.Search):
		model.searching = true
		return model, model.search.Focus()
	case key.Matches(message, model.keys.Sort):
		model.sortIndex = (model.sortIndex + 1) % len(sortColumns)
		model.loading = true
		return model, model.Load(1)
	case key.Matches(message, model.keys.Reverse):
		model.sortDesc = !model.sortDesc
		model.loading = true
		return model, model.Load(1)
	case key.Matches(message, model.keys.Reload):
		model.loading = true
		return model, model.Load(model.page.Page)
	case key.Matches(message, model.keys.Delete):
		if event, ok := model.selected(); ok {
			model.confirmDeleteID = event.ID
		}
	case key.Matches(message, model.keys.Open):
		if event, ok := model.selected(); ok {
			client := model.client
			id := event.ID
			model.loading = true
			return model, func() tea.Msg {
				details, err := client.EventDetails(context.Background(), id)
				return eventDetailsMsg{details: details, err: err}
			}
		}
	}
	return model, nil
}

func (model EventsModel) selected() (api.Event, bool) {
	if model.cursor < 0 || model.cursor >= len(model.page.Events) {
		return api.Event{}, false
	}
	return model.page.Events[model.cursor], true
}

func (model EventsModel) View() string {
	if model.details != nil {
		return model.detailsView()
	}

	var b strings.Builder
	header := fmt.Sprintf("Events · page %d/%d · %d total",
		max(1, model.page.Page), max(1, model.page.TotalPages), model.page.Total)
	if sortBy := sortColumns[model.sortIndex]; sortBy != "" {
		order := "asc"
		if model.sortDesc {
			order = "desc"
		}
		header += fmt.Sprintf(" · sort %s %s", sortBy, order)
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(header))
	b.WriteString("\n")

	if model.searching || model.search.Value() != "" {
		b.WriteString("Search: " + model.search.View() + "\n")
	}

	switch {
	case model.loading:
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading events..."))
	case len(model.page.Events) == 0:
		message := model.page.Message
		if message == "" {
			message = "No events found"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(message))
	default:
		for i, event := range model.page.Events {
			b.WriteString(model.renderRow(event, i == model.cursor))
			b.WriteString("\n")
		}
	}

	if id := model.confirmDeleteID; id != 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.ToastError).
			Render(fmt.Sprintf("Delete event %d? (y/N)", id)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("enter details · n new · e edit · d delete · / search · s sort · o order · h/l page · r reload"))
	return b.String()
}

func (model EventsModel) renderRow(event api.Event, selected bool) string {
	status := lipgloss.NewStyle().
		Foreground(model.theme.EventStatusColor(event.EventStatus)).
		Render(string(event.EventStatus))
	row := fmt.Sprintf("%4d  %-30s %-12s %-10s %s",
		event.ID, truncate(event.Name, 30), event.EventDate, status, truncate(event.Address, 24))
	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(row)
	}
	return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(row)
}

func (model EventsModel) detailsView() string {
	details := model.details
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("Event %d · %s", details.ID, details.Name)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Status     %s\n", details.EventStatus)
	fmt.Fprintf(&b, "Date       %s  %s - %s\n", details.EventDate, details.StartTime, details.EndTime)
	fmt.Fprintf(&b, "Address    %s\n", details.Address)
	fmt.Fprintf(&b, "Type       %s\n", details.EventType)
	fmt.Fprintf(&b, "Organizer  %s (%s)\n", details.OrganizerName, details.OrganizerContact)
	if details.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", details.Description)
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Registered users (%d)", len(details.RegisteredUsers))))
	b.WriteString("\n")
	if len(details.RegisteredUsers) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No registrations"))
		b.WriteString("\n")
	}
	for _, user := range details.RegisteredUsers {
		fmt.Fprintf(&b, "%4d  %-20s %-28s %-10s %s\n",
			user.ID, truncate(user.Username, 20), truncate(user.Email, 28),
			user.RegistrationStatus, user.RegistrationDate)
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).Render("esc back"))
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
