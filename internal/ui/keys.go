package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View switching
	ViewHome   key.Binding
	ViewSearch key.Binding
	ViewUpload key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Tab     key.Binding
	Confirm key.Binding

	// Search
	ClearFilters key.Binding

	// Upload
	Transcribe key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		ViewHome: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Home"),
		),
		ViewSearch: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "Search"),
		),
		ViewUpload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),
		Transcribe: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Generate transcription"),
		),
	}
}

// ShortHelp returns key bindings for the footer help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ViewHome, k.ViewSearch, k.ViewUpload, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewHome, k.ViewSearch, k.ViewUpload, k.Escape},
		{k.Up, k.Down, k.Tab, k.Confirm},
		{k.ClearFilters, k.Transcribe},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
