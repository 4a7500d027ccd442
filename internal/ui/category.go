package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/state"
)

// The category view re-filters the in-memory audio list client-side
// instead of issuing a server search, so records attached to the
// category by any of the legacy relationships still show up.

func (m *Model) categoryAudios(snap state.Snapshot) ([]audiovault.Audio, audiovault.Category, bool) {
	category, found := lo.Find(snap.Categories, func(c audiovault.Category) bool {
		return c.ID == m.categoryID
	})
	if !found {
		return nil, audiovault.Category{}, false
	}
	return audiovault.FilterByCategory(snap.Audios, category), category, true
}

func (m *Model) updateCategory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	audios, _, _ := m.categoryAudios(snap)

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.back()
	case key.Matches(msg, m.keys.Down):
		m.categoryAudio = clamp(m.categoryAudio+1, 0, len(audios)-1)
	case key.Matches(msg, m.keys.Up):
		m.categoryAudio = clamp(m.categoryAudio-1, 0, len(audios)-1)
	case key.Matches(msg, m.keys.Confirm):
		if audio, ok := at(audios, m.categoryAudio); ok {
			return m, m.navigateDetail(audio.ID)
		}
	}
	return m, nil
}

func (m *Model) renderCategory(snap state.Snapshot) string {
	var b strings.Builder

	audios, category, found := m.categoryAudios(snap)
	if !found {
		b.WriteString(m.styles.Muted.Render("Category not found.") + "\n")
		return m.styles.Panel.Render(b.String())
	}

	b.WriteString(m.styles.Title.Render(category.Title) + "\n")
	if category.Description != "" {
		b.WriteString(m.styles.Muted.Render(category.Description) + "\n")
	}
	if notice := m.sliceNotice(snap, state.SliceAudios); notice != "" {
		b.WriteString(notice + "\n")
	}
	b.WriteString("\n")

	for i, audio := range audios {
		meta := joinNonEmpty("  ", audio.Duration, formatUploadedAt(audio.ParsedUploadedAt()))
		line := truncate(audio.Title, 48)
		if meta != "" {
			line += m.styles.Faint.Render("  " + meta)
		}
		b.WriteString(m.listRow(line, i == m.categoryAudio) + "\n")
	}
	if len(audios) == 0 {
		b.WriteString(m.styles.Muted.Render("There are no audios in this category yet.") + "\n")
		b.WriteString(m.styles.Faint.Render("Press u to upload one.") + "\n")
	}

	return m.styles.Panel.Render(b.String())
}
