package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
)

// dashboardStatsMsg carries the counts summary. Both listings degrade
// on failure, so the dashboard renders zeros plus their messages
// rather than an error screen.
type dashboardStatsMsg struct {
	events       api.EventPage
	users        []api.User
	usersMessage string
}

// DashboardModel is the landing view: a counts summary built from the
// two list endpoints.
type DashboardModel struct {
	client *api.Client
	theme  Theme

	loaded bool
	stats  dashboardStatsMsg
}

func NewDashboardModel(client *api.Client, theme Theme) DashboardModel {
	return DashboardModel{client: client, theme: theme}
}

// Load returns the command that fetches both summaries.
func (model DashboardModel) Load() tea.Cmd {
	client := model.client
	return func() tea.Msg {
		ctx := context.Background()
		events := client.ListEvents(ctx, api.ListEventsParams{Page: 1, Limit: 1})
		users, usersMessage := client.ListUsers(ctx)
		return dashboardStatsMsg{events: events, users: users, usersMessage: usersMessage}
	}
}

func (model DashboardModel) Update(message tea.Msg) (DashboardModel, tea.Cmd) {
	if stats, ok := message.(dashboardStatsMsg); ok {
		model.loaded = true
		model.stats = stats
	}
	return model, nil
}

func (model DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("Dashboard"))
	b.WriteString("\n\n")

	if !model.loaded {
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading summary..."))
		return b.String()
	}

	admins := 0
	for _, user := range model.stats.users {
		if user.Role == "ADMIN" {
			admins++
		}
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 2)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(fmt.Sprintf("Events\n%d", model.stats.events.Total)),
		" ",
		card.Render(fmt.Sprintf("Users\n%d", len(model.stats.users))),
		" ",
		card.Render(fmt.Sprintf("Admins\n%d", admins)),
	)
	b.WriteString(cards)

	if model.stats.events.Total == 0 && model.stats.events.Message != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.stats.events.Message))
	}
	if len(model.stats.users) == 0 && model.stats.usersMessage != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.stats.usersMessage))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("1 dashboard · 2 events · 3 users · 4 analytics · 5 settings · C-l logout · q quit"))
	return b.String()
}
