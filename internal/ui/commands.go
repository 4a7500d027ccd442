package ui

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/mediainfo"
	"github.com/resonate-app/resonate/internal/state"
)

// Messages produced by background commands.
type (
	storeChangedMsg struct{ slice state.Slice }
	uploadDoneMsg   struct{ outcome state.UploadOutcome }
	progressTickMsg time.Time
	redirectTickMsg time.Time

	transcriptionMsg struct {
		text string
		err  string
	}

	inspectMsg struct {
		path string
		info mediainfo.Info
		ok   bool
	}
)

const (
	progressTickEvery = 300 * time.Millisecond
	redirectAfter     = 800 * time.Millisecond
)

// Store actions run off the UI goroutine; the store performs the fetch,
// commits (or discards) the result, and the message tells the UI to
// re-render from a fresh snapshot.

func (m *Model) fetchCategoriesCmd() tea.Cmd {
	ctx, store := m.fetchCtx, m.store
	return func() tea.Msg {
		store.FetchCategories(ctx)
		return storeChangedMsg{state.SliceCategories}
	}
}

func (m *Model) fetchTagsCmd() tea.Cmd {
	ctx, store := m.fetchCtx, m.store
	return func() tea.Msg {
		store.FetchTags(ctx)
		return storeChangedMsg{state.SliceTags}
	}
}

func (m *Model) fetchAudiosCmd(params *audiovault.SearchParams) tea.Cmd {
	ctx, store := m.fetchCtx, m.store
	return func() tea.Msg {
		store.FetchAudios(ctx, params)
		return storeChangedMsg{state.SliceAudios}
	}
}

func (m *Model) fetchAudioCmd(id int) tea.Cmd {
	ctx, store := m.fetchCtx, m.store
	return func() tea.Msg {
		store.FetchAudio(ctx, id)
		return storeChangedMsg{state.SliceCurrent}
	}
}

func (m *Model) uploadCmd() tea.Cmd {
	ctx, store := m.fetchCtx, m.store
	form := m.form
	snap := m.store.Snapshot()
	return func() tea.Msg {
		file, err := os.Open(form.FilePath)
		if err != nil {
			return uploadDoneMsg{state.UploadOutcome{Error: "Cannot open audio file: " + err.Error()}}
		}
		defer file.Close()

		payload := audiovault.UploadPayload{
			Fields:    form.Fields(snap.Categories, snap.Tags),
			FileField: "File",
			FileName:  filepath.Base(form.FilePath),
			File:      file,
		}
		return uploadDoneMsg{store.Upload(ctx, payload)}
	}
}

func (m *Model) transcribeCmd() tea.Cmd {
	ctx, client := m.fetchCtx, m.client
	path := m.form.FilePath
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return transcriptionMsg{err: "Cannot open audio file: " + err.Error()}
		}
		defer file.Close()

		text, err := client.Transcribe(ctx, filepath.Base(path), file)
		if err != nil {
			return transcriptionMsg{err: err.Error()}
		}
		return transcriptionMsg{text: text}
	}
}

func (m *Model) inspectCmd(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := mediainfo.Inspect(path)
		return inspectMsg{path: path, info: info, ok: err == nil}
	}
}

func (m *Model) progressTickCmd() tea.Cmd {
	return tea.Tick(progressTickEvery, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

func (m *Model) redirectCmd() tea.Cmd {
	return tea.Tick(redirectAfter, func(t time.Time) tea.Msg {
		return redirectTickMsg(t)
	})
}
