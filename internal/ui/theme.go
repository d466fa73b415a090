package ui

import (
	"github.com/charmbracelet/lipgloss"

	"eventmgmt/admin-console/internal/api"
)

// Theme defines the console's color palette. All colors use lipgloss
// ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Event lifecycle colors.
	StatusActive    lipgloss.Color
	StatusCompleted lipgloss.Color
	StatusCancelled lipgloss.Color

	// Role badges.
	RoleAdmin lipgloss.Color
	RoleUser  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Toast notifications.
	ToastSuccess lipgloss.Color
	ToastError   lipgloss.Color
}

// EventStatusColor returns the color for an event status, FaintText
// for unknown values.
func (theme Theme) EventStatusColor(status api.EventStatus) lipgloss.Color {
	switch status {
	case api.EventStatusActive:
		return theme.StatusActive
	case api.EventStatusCompleted:
		return theme.StatusCompleted
	case api.EventStatusCancelled:
		return theme.StatusCancelled
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive:    lipgloss.Color("114"), // green
	StatusCompleted: lipgloss.Color("245"), // gray
	StatusCancelled: lipgloss.Color("196"), // red

	RoleAdmin: lipgloss.Color("208"), // orange
	RoleUser:  lipgloss.Color("75"),  // blue

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ToastSuccess: lipgloss.Color("114"),
	ToastError:   lipgloss.Color("196"),
}
