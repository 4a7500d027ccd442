package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/resonate-app/resonate/internal/state"
)

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.store.Snapshot()

	header := m.renderHeader(snap)
	footer := m.renderFooter()

	var body string
	if m.showHelp {
		body = m.renderHelp()
	} else {
		switch m.current {
		case viewSearch:
			body = m.renderSearch(snap)
		case viewDetail:
			body = m.renderDetail(snap)
		case viewCategory:
			body = m.renderCategory(snap)
		case viewUpload:
			body = m.renderUpload(snap)
		default:
			body = m.renderHome(snap)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader(snap state.Snapshot) string {
	logo := m.styles.Accent.Render("♪ resonate")
	title := m.styles.Text.Render(m.current.title())

	parts := []string{logo, title}
	if snap.Loading() {
		parts = append(parts, m.styles.Info.Render(m.spin.View()+"loading"))
	}
	return m.styles.Header.Render(strings.Join(parts, "  "))
}

func (m *Model) renderFooter() string {
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}
	return m.styles.Footer.Render(strings.Join(parts, "  •  "))
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Key bindings") + "\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString("  ")
			b.WriteString(m.styles.Accent.Render(pad(binding.Help().Key, 10)))
			b.WriteString(m.styles.Text.Render(binding.Help().Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("  Press any key to close"))
	return b.String()
}

// sliceNotice renders the loading/error state of a slice. A recorded
// error does not mean the list below is empty — the store substitutes
// fallback data — so the message flags the data as possibly stale.
func (m *Model) sliceNotice(snap state.Snapshot, slice state.Slice) string {
	status := snap.Status(slice)
	switch {
	case status.Loading:
		return m.styles.Info.Render(m.spin.View() + "loading...")
	case status.Err != "":
		return m.styles.Danger.Render(status.Err) +
			m.styles.Muted.Render("  (showing placeholder data)")
	default:
		return ""
	}
}
