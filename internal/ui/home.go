package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resonate-app/resonate/internal/state"
)

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.homeFocusAudios = !m.homeFocusAudios
	case key.Matches(msg, m.keys.Down):
		if m.homeFocusAudios {
			m.homeAudioIndex = clamp(m.homeAudioIndex+1, 0, len(snap.Audios)-1)
		} else {
			m.homeCatIndex = clamp(m.homeCatIndex+1, 0, len(snap.Categories)-1)
		}
	case key.Matches(msg, m.keys.Up):
		if m.homeFocusAudios {
			m.homeAudioIndex = clamp(m.homeAudioIndex-1, 0, len(snap.Audios)-1)
		} else {
			m.homeCatIndex = clamp(m.homeCatIndex-1, 0, len(snap.Categories)-1)
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.homeFocusAudios {
			if audio, ok := at(snap.Audios, m.homeAudioIndex); ok {
				return m, m.navigateDetail(audio.ID)
			}
		} else if category, ok := at(snap.Categories, m.homeCatIndex); ok {
			return m, m.navigateCategory(category.ID)
		}
	}
	return m, nil
}

func (m *Model) renderHome(snap state.Snapshot) string {
	categories := m.renderCategoryList(snap)
	audios := m.renderAudioList(snap)
	return lipgloss.JoinHorizontal(lipgloss.Top, categories, " ", audios)
}

func (m *Model) renderCategoryList(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Categories") + "\n")
	if notice := m.sliceNotice(snap, state.SliceCategories); notice != "" {
		b.WriteString(notice + "\n")
	}
	for i, category := range snap.Categories {
		line := truncate(category.Title, 24)
		if category.Count > 0 {
			line = fmt.Sprintf("%s (%d)", line, category.Count)
		}
		b.WriteString(m.listRow(line, i == m.homeCatIndex && !m.homeFocusAudios) + "\n")
	}
	if len(snap.Categories) == 0 {
		b.WriteString(m.styles.Muted.Render("no categories") + "\n")
	}

	panel := m.styles.Panel
	if !m.homeFocusAudios {
		panel = m.styles.PanelFocus
	}
	return panel.Render(b.String())
}

func (m *Model) renderAudioList(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Latest audio") + "\n")
	if notice := m.sliceNotice(snap, state.SliceAudios); notice != "" {
		b.WriteString(notice + "\n")
	}
	for i, audio := range snap.Audios {
		meta := joinNonEmpty("  ",
			audio.CategoryTitle,
			audio.Duration,
			formatUploadedAt(audio.ParsedUploadedAt()),
		)
		line := truncate(audio.Title, 40)
		if meta != "" {
			line += m.styles.Faint.Render("  " + meta)
		}
		b.WriteString(m.listRow(line, i == m.homeAudioIndex && m.homeFocusAudios) + "\n")
	}
	if len(snap.Audios) == 0 {
		b.WriteString(m.styles.Muted.Render("no audio yet") + "\n")
	}

	panel := m.styles.Panel
	if m.homeFocusAudios {
		panel = m.styles.PanelFocus
	}
	return panel.Render(b.String())
}

func (m *Model) listRow(line string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("▸ " + line)
	}
	return "  " + line
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// at returns the i-th element when the index is in range.
func at[T any](items []T, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}
