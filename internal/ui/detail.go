package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/state"
)

const relatedLimit = 4

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	var related []audiovault.Audio
	if snap.Current != nil {
		related = audiovault.Related(snap.Audios, *snap.Current, relatedLimit)
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.back()
	case key.Matches(msg, m.keys.Down):
		m.relatedIndex = clamp(m.relatedIndex+1, 0, len(related)-1)
	case key.Matches(msg, m.keys.Up):
		m.relatedIndex = clamp(m.relatedIndex-1, 0, len(related)-1)
	case key.Matches(msg, m.keys.Confirm):
		if audio, ok := at(related, m.relatedIndex); ok {
			m.relatedIndex = 0
			return m, m.navigateDetail(audio.ID)
		}
	}
	return m, nil
}

func (m *Model) renderDetail(snap state.Snapshot) string {
	var b strings.Builder

	if notice := m.sliceNotice(snap, state.SliceCurrent); notice != "" {
		b.WriteString(notice + "\n")
	}
	if snap.Current == nil {
		if !snap.Status(state.SliceCurrent).Loading {
			b.WriteString(m.styles.Muted.Render("Audio not found.") + "\n")
		}
		return m.styles.Panel.Render(b.String())
	}

	audio := *snap.Current

	b.WriteString(m.styles.Title.Render(audio.Title) + "\n")
	meta := joinNonEmpty("  ",
		audio.CategoryTitle,
		audio.Author,
		audio.Duration,
		audio.FileFormat,
		formatUploadedAt(audio.ParsedUploadedAt()),
	)
	if meta != "" {
		b.WriteString(m.styles.Muted.Render(meta) + "\n")
	}
	if len(audio.Tags) > 0 {
		var chips []string
		for _, tag := range audio.Tags {
			chips = append(chips, m.styles.Chip.Render("#"+tag.Name))
		}
		b.WriteString(strings.Join(chips, " ") + "\n")
	}
	b.WriteString("\n")

	// Playback stays with an external player; the resource location is
	// all this view offers.
	b.WriteString(m.styles.Faint.Render("source: ") + m.styles.Info.Render(audio.AudioURL) + "\n\n")

	if audio.Description != "" {
		b.WriteString(m.styles.Text.Render(audio.Description) + "\n\n")
	}
	if audio.Transcription != "" {
		b.WriteString(m.styles.Accent.Render("Transcription") + "\n")
		b.WriteString(m.styles.Text.Render(audio.Transcription) + "\n\n")
	}

	related := audiovault.Related(snap.Audios, audio, relatedLimit)
	if len(related) > 0 {
		b.WriteString(m.styles.Accent.Render("Related") + "\n")
		for i, rel := range related {
			b.WriteString(m.listRow(truncate(rel.Title, 48), i == m.relatedIndex) + "\n")
		}
	}

	return m.styles.Panel.Render(b.String())
}
