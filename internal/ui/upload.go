package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/resonate-app/resonate/internal/state"
	"github.com/resonate-app/resonate/internal/upload"
)

const (
	errKeyTranscription = "transcription"
	errKeySubmit        = "submit"
)

func (m *Model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.uploading {
		// The request is in flight; everything but quit waits.
		return m, nil
	}

	if m.uploadFocus < len(m.uploadInputs) {
		return m.updateUploadInput(msg)
	}

	snap := m.store.Snapshot()
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.back()
	case key.Matches(msg, m.keys.Tab):
		return m, m.setUploadFocus((m.uploadFocus + 1) % upFocusCount)
	case key.Matches(msg, m.keys.Down):
		m.moveUploadSelection(snap, 1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveUploadSelection(snap, -1)
		return m, nil
	case key.Matches(msg, m.keys.Transcribe):
		return m, m.startTranscription()
	case key.Matches(msg, m.keys.Confirm):
		return m, m.confirmUploadSelection(snap)
	}
	return m, nil
}

func (m *Model) updateUploadInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		return m, m.back()
	case tea.KeyTab:
		return m, m.setUploadFocus((m.uploadFocus + 1) % upFocusCount)
	case tea.KeyEnter:
		next := (m.uploadFocus + 1) % upFocusCount
		var cmds []tea.Cmd
		if m.uploadFocus == upFocusFile {
			if cmd := m.applyFilePath(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, m.setUploadFocus(next))
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.uploadInputs[m.uploadFocus], cmd = m.uploadInputs[m.uploadFocus].Update(msg)
	return m, cmd
}

// setUploadFocus moves focus, syncing form fields out of the inputs.
func (m *Model) setUploadFocus(focus int) tea.Cmd {
	m.syncForm()
	for i := range m.uploadInputs {
		m.uploadInputs[i].Blur()
	}
	m.uploadFocus = focus
	if focus < len(m.uploadInputs) {
		return m.uploadInputs[focus].Focus()
	}
	return nil
}

func (m *Model) syncForm() {
	m.form.FilePath = strings.TrimSpace(m.uploadInputs[upFocusFile].Value())
	m.form.Title = strings.TrimSpace(m.uploadInputs[upFocusTitle].Value())
	m.form.Description = strings.TrimSpace(m.uploadInputs[upFocusDescription].Value())
	m.form.Transcription = m.uploadInputs[upFocusTranscription].Value()
}

// applyFilePath records the chosen file and kicks off local inspection
// to prefill metadata fields.
func (m *Model) applyFilePath() tea.Cmd {
	path := strings.TrimSpace(m.uploadInputs[upFocusFile].Value())
	if path == "" {
		return nil
	}
	m.form.FilePath = path
	delete(m.formErrors, upload.ErrKeyFile)
	return m.inspectCmd(path)
}

func (m *Model) applyInspection(msg inspectMsg) {
	if !msg.ok || msg.path != m.form.FilePath {
		return
	}
	m.fileInfo = &msg.info
	if strings.TrimSpace(m.uploadInputs[upFocusTitle].Value()) == "" {
		m.uploadInputs[upFocusTitle].SetValue(msg.info.Title)
		m.form.Title = msg.info.Title
	}
}

func (m *Model) moveUploadSelection(snap state.Snapshot, delta int) {
	switch m.uploadFocus {
	case upFocusCategory:
		m.uploadCat = clamp(m.uploadCat+delta, 0, len(snap.Categories)-1)
	case upFocusTags:
		m.uploadTag = clamp(m.uploadTag+delta, 0, len(snap.Tags)-1)
	}
}

func (m *Model) confirmUploadSelection(snap state.Snapshot) tea.Cmd {
	switch m.uploadFocus {
	case upFocusCategory:
		if category, ok := at(snap.Categories, m.uploadCat); ok {
			m.form.CategoryID = category.ID
			delete(m.formErrors, upload.ErrKeyCategory)
		}
	case upFocusTags:
		if tag, ok := at(snap.Tags, m.uploadTag); ok {
			m.form.ToggleTag(tag.ID)
		}
	case upFocusSubmit:
		return m.submitUpload()
	}
	return nil
}

func (m *Model) startTranscription() tea.Cmd {
	m.syncForm()
	if m.form.FilePath == "" {
		m.formErrors[errKeyTranscription] = "Please choose an audio file first"
		return nil
	}
	delete(m.formErrors, errKeyTranscription)
	m.transcribing = true
	return m.transcribeCmd()
}

// submitUpload validates and, only when the form is complete, starts the
// request plus the progress animation. Validation failures never reach
// the network layer.
func (m *Model) submitUpload() tea.Cmd {
	m.syncForm()

	if errs := m.form.Validate(); len(errs) > 0 {
		m.formErrors = errs
		return nil
	}

	m.formErrors = map[string]string{}
	m.uploading = true
	m.uploadAnim.Reset()
	m.uploadAnim.Jump(30)
	return tea.Batch(m.uploadCmd(), m.progressTickCmd())
}

func (m *Model) onUploadDone(outcome state.UploadOutcome) tea.Cmd {
	m.uploading = false
	if !outcome.Success {
		m.uploadAnim.Reset()
		m.formErrors[errKeySubmit] = "Upload failed: " + outcome.Error
		return nil
	}
	m.uploadAnim.Finish()
	m.uploadedID = outcome.AudioID
	return m.redirectCmd()
}

func (m *Model) resetUploadForm() {
	m.form = upload.Form{}
	m.fileInfo = nil
	m.formErrors = map[string]string{}
	m.uploadAnim.Reset()
	for i := range m.uploadInputs {
		m.uploadInputs[i].SetValue("")
		m.uploadInputs[i].Blur()
	}
	m.uploadFocus = upFocusFile
}

func (m *Model) renderUpload(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Upload audio") + "\n\n")

	labels := []string{"File", "Title", "Description", "Transcription"}
	errKeys := []string{upload.ErrKeyFile, upload.ErrKeyTitle, "", errKeyTranscription}
	for i, input := range m.uploadInputs {
		label := pad(labels[i], 14)
		if i == m.uploadFocus {
			b.WriteString(m.styles.Accent.Render(label))
		} else {
			b.WriteString(m.styles.Muted.Render(label))
		}
		b.WriteString(input.View() + "\n")
		if errKeys[i] != "" {
			if msg, bad := m.formErrors[errKeys[i]]; bad {
				b.WriteString(strings.Repeat(" ", 14) + m.styles.Danger.Render(msg) + "\n")
			}
		}
	}

	if m.fileInfo != nil {
		meta := joinNonEmpty("  ",
			m.fileInfo.Artist,
			m.fileInfo.Duration,
			m.fileInfo.FileFormat,
		)
		if meta != "" {
			b.WriteString(strings.Repeat(" ", 14) + m.styles.Faint.Render(meta) + "\n")
		}
	}
	if m.transcribing {
		b.WriteString(strings.Repeat(" ", 14) + m.styles.Info.Render(m.spin.View()+"transcribing...") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderUploadCategory(snap))
	b.WriteString(m.renderUploadTags(snap))

	b.WriteString("\n")
	submit := "[ Upload ]"
	if m.uploadFocus == upFocusSubmit {
		b.WriteString(m.styles.Selected.Render(submit))
	} else {
		b.WriteString(m.styles.Text.Render(submit))
	}
	b.WriteString(m.styles.Faint.Render("  enter to submit, r to generate transcription") + "\n")

	if m.uploading || m.uploadAnim.Done() {
		b.WriteString(m.uploadBar.ViewAs(m.uploadAnim.Percent()/100) + "\n")
	}
	if msg, bad := m.formErrors[errKeySubmit]; bad {
		b.WriteString(m.styles.Danger.Render(msg) + "\n")
	}
	if m.uploadAnim.Done() {
		b.WriteString(m.styles.Success.Render("Uploaded — opening the new record...") + "\n")
	}

	return b.String()
}

func (m *Model) renderUploadCategory(snap state.Snapshot) string {
	var b strings.Builder
	label := pad("Category", 14)
	if m.uploadFocus == upFocusCategory {
		b.WriteString(m.styles.Accent.Render(label))
	} else {
		b.WriteString(m.styles.Muted.Render(label))
	}

	var names []string
	for i, category := range snap.Categories {
		name := category.Title
		if category.ID == m.form.CategoryID {
			name = "✓" + name
		}
		if m.uploadFocus == upFocusCategory && i == m.uploadCat {
			name = m.styles.Selected.Render(name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		names = append(names, m.styles.Muted.Render("no categories"))
	}
	b.WriteString(strings.Join(names, "  ") + "\n")
	if msg, bad := m.formErrors[upload.ErrKeyCategory]; bad {
		b.WriteString(strings.Repeat(" ", 14) + m.styles.Danger.Render(msg) + "\n")
	}
	return b.String()
}

func (m *Model) renderUploadTags(snap state.Snapshot) string {
	var b strings.Builder
	label := pad("Tags", 14)
	if m.uploadFocus == upFocusTags {
		b.WriteString(m.styles.Accent.Render(label))
	} else {
		b.WriteString(m.styles.Muted.Render(label))
	}

	var names []string
	for i, tag := range snap.Tags {
		name := "#" + tag.Name
		if lo.Contains(m.form.TagIDs, tag.ID) {
			name = "✓" + name
		}
		if m.uploadFocus == upFocusTags && i == m.uploadTag {
			name = m.styles.Selected.Render(name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		names = append(names, m.styles.Muted.Render("no tags"))
	}
	b.WriteString(strings.Join(names, "  ") + "\n")
	return b.String()
}
