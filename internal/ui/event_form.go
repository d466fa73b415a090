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

// eventSavedMsg is sent when an asynchronous create or update completes.
type eventSavedMsg struct {
	id     int
	update bool
	err    error
}

// Event form field indices, in display order.
const (
	evFieldName = iota
	evFieldDescription
	evFieldDate
	evFieldStartTime
	evFieldEndTime
	evFieldAddress
	evFieldType
	evFieldStatus
	evFieldOrganizerName
	evFieldOrganizerContact
	evFieldImageURL
	evFieldCount
)

var eventFieldLabels = [evFieldCount]string{
	"Name", "Description", "Date (YYYY-MM-DD)", "Start time", "End time",
	"Address", "Type", "Status", "Organizer", "Organizer contact", "Image URL",
}

// EventFormModel is the create/edit form for a single event. A zero
// id means create; otherwise the submit issues an update.
type EventFormModel struct {
	client *api.Client
	theme  Theme

	id      int
	inputs  [evFieldCount]textinput.Model
	focus   int
	pending bool
	errMsg  string
}

// NewEventFormModel builds the form, prefilled from existing when
// editing.
func NewEventFormModel(client *api.Client, theme Theme, existing *api.Event) EventFormModel {
	model := EventFormModel{client: client, theme: theme}
	for i := range model.inputs {
		input := textinput.New()
		input.Placeholder = eventFieldLabels[i]
		input.CharLimit = 200
		model.inputs[i] = input
	}
	model.inputs[evFieldStatus].Placeholder = "ACTIVE / COMPLETED / CANCELLED"
	model.inputs[evFieldName].Focus()

	if existing != nil {
		model.id = existing.ID
		model.inputs[evFieldName].SetValue(existing.Name)
		model.inputs[evFieldDescription].SetValue(existing.Description)
		model.inputs[evFieldDate].SetValue(existing.EventDate)
		model.inputs[evFieldStartTime].SetValue(existing.StartTime)
		model.inputs[evFieldEndTime].SetValue(existing.EndTime)
		model.inputs[evFieldAddress].SetValue(existing.Address)
		model.inputs[evFieldType].SetValue(existing.EventType)
		model.inputs[evFieldStatus].SetValue(string(existing.EventStatus))
		model.inputs[evFieldOrganizerName].SetValue(existing.OrganizerName)
		model.inputs[evFieldOrganizerContact].SetValue(existing.OrganizerContact)
		model.inputs[evFieldImageURL].SetValue(existing.ImageURL)
	}
	return model
}

func (model EventFormModel) Update(message tea.Msg) (EventFormModel, tea.Cmd) {
	switch message := message.(type) {
	case eventSavedMsg:
		model.pending = false
		if message.err != nil {
			model.errMsg = api.ErrorMessage(message.err, "Could not save event")
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

func (model EventFormModel) moveFocus(delta int) (EventFormModel, tea.Cmd) {
	model.inputs[model.focus].Blur()
	model.focus = (model.focus + delta + evFieldCount) % evFieldCount
	return model, model.inputs[model.focus].Focus()
}

func (model EventFormModel) submit() (EventFormModel, tea.Cmd) {
	input := api.UpsertEventInput{
		ID:               model.id,
		Name:             strings.TrimSpace(model.inputs[evFieldName].Value()),
		Description:      strings.TrimSpace(model.inputs[evFieldDescription].Value()),
		EventDate:        strings.TrimSpace(model.inputs[evFieldDate].Value()),
		StartTime:        strings.TrimSpace(model.inputs[evFieldStartTime].Value()),
		EndTime:          strings.TrimSpace(model.inputs[evFieldEndTime].Value()),
		Address:          strings.TrimSpace(model.inputs[evFieldAddress].Value()),
		EventType:        strings.TrimSpace(model.inputs[evFieldType].Value()),
		EventStatus:      api.EventStatus(strings.ToUpper(strings.TrimSpace(model.inputs[evFieldStatus].Value()))),
		OrganizerName:    strings.TrimSpace(model.inputs[evFieldOrganizerName].Value()),
		OrganizerContact: strings.TrimSpace(model.inputs[evFieldOrganizerContact].Value()),
		ImageURL:         strings.TrimSpace(model.inputs[evFieldImageURL].Value()),
	}

	if input.Name == "" || input.EventDate == "" {
		model.errMsg = "Name and date are required"
		return model, nil
	}
	switch input.EventStatus {
	case "", api.EventStatusActive, api.EventStatusCompleted, api.EventStatusCancelled:
	default:
		model.errMsg = "Status must be ACTIVE, COMPLETED, or CANCELLED"
		return model, nil
	}

	model.pending = true
	model.errMsg = ""
	client := model.client
	id := model.id
	return model, func() tea.Msg {
		if id != 0 {
			return eventSavedMsg{id: id, update: true, err: client.UpdateEvent(context.Background(), id, input)}
		}
		result, err := client.UpsertEvent(context.Background(), input)
		return eventSavedMsg{id: result.ID, err: err}
	}
}

func (model EventFormModel) View() string {
	title := "New event"
	if model.id != 0 {
		title = fmt.Sprintf("Edit event %d", model.id)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(title))
	b.WriteString("\n\n")
	for i := range model.inputs {
		fmt.Fprintf(&b, "%-18s %s\n", eventFieldLabels[i], model.inputs[i].View())
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
