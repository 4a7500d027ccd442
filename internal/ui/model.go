package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/mediainfo"
	"github.com/resonate-app/resonate/internal/prefs"
	"github.com/resonate-app/resonate/internal/search"
	"github.com/resonate-app/resonate/internal/state"
	"github.com/resonate-app/resonate/internal/upload"
)

type view int

const (
	viewHome view = iota
	viewSearch
	viewDetail
	viewCategory
	viewUpload
)

func (v view) title() string {
	switch v {
	case viewSearch:
		return "Search"
	case viewDetail:
		return "Audio"
	case viewCategory:
		return "Category"
	case viewUpload:
		return "Upload"
	default:
		return "Home"
	}
}

// Model is the root bubbletea model. All remote data lives in the store;
// the model holds view-local UI state only (focus, selection indexes,
// input buffers, the synthetic upload progress).
type Model struct {
	opts   Options
	store  *state.Store
	client *audiovault.Client

	keys   keyMap
	theme  Theme
	styles Styles

	width, height int
	current       view
	previous      view
	showHelp      bool

	// Each view owns a request context; navigating away cancels it so a
	// late response cannot write into the store on behalf of a view that
	// is no longer showing.
	fetchCtx    context.Context
	fetchCancel context.CancelFunc

	// home
	homeFocusAudios bool
	homeCatIndex    int
	homeAudioIndex  int

	// search
	searchInput   textinput.Model
	searchParams  audiovault.SearchParams
	searchRoute   string // encoded query string, the client-side route state
	searchFocus   searchFocus
	searchCat     int
	searchTag     int
	searchResult  int
	recentIndex   int
	recentVisible bool

	// detail
	detailID     int
	relatedIndex int

	// category
	categoryID    int
	categoryAudio int

	// upload
	form          upload.Form
	fileInfo      *mediainfo.Info
	formErrors    map[string]string
	uploadInputs  []textinput.Model
	uploadFocus   int
	uploadCat     int
	uploadTag     int
	uploadAnim    upload.Progress
	uploadBar     progress.Model
	uploading     bool
	transcribing  bool
	uploadedID    int
	spin          spinner.Model
}

type searchFocus int

const (
	focusQuery searchFocus = iota
	focusCategories
	focusTags
	focusResults
	searchFocusCount
)

const (
	upFocusFile = iota
	upFocusTitle
	upFocusDescription
	upFocusTranscription
	upFocusCategory
	upFocusTags
	upFocusSubmit
	upFocusCount
)

func newModel(opts Options) *Model {
	theme := ThemeByName(opts.Prefs.Theme)

	query := textinput.New()
	query.Placeholder = "Search audios..."
	query.Prompt = "> "
	query.CharLimit = 120

	inputs := make([]textinput.Model, 4)
	placeholders := []string{
		"Path to audio file",
		"Title",
		"Description",
		"Transcription",
	}
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].Prompt = ""
		inputs[i].CharLimit = 500
	}

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		opts:         opts,
		store:        opts.Store,
		client:       opts.Client,
		keys:         defaultKeyMap(),
		theme:        theme,
		styles:       theme.Styles(),
		searchInput:  query,
		uploadInputs: inputs,
		uploadBar:    bar,
		spin:         spin,
		formErrors:   map[string]string{},
		recentIndex:  -1,
	}
	m.resetFetchContext()
	return m
}

// resetFetchContext cancels any in-flight view requests and starts a
// fresh context for the next view.
func (m *Model) resetFetchContext() {
	if m.fetchCancel != nil {
		m.fetchCancel()
	}
	parent := m.opts.Context
	if parent == nil {
		parent = context.Background()
	}
	m.fetchCtx, m.fetchCancel = context.WithCancel(parent)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		m.fetchCategoriesCmd(),
		m.fetchTagsCmd(),
		m.fetchAudiosCmd(nil),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.uploadBar.Width = min(48, max(20, msg.Width-30))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case storeChangedMsg:
		return m, nil

	case uploadDoneMsg:
		return m, m.onUploadDone(msg.outcome)

	case progressTickMsg:
		if !m.uploading {
			return m, nil
		}
		m.uploadAnim.Step()
		return m, m.progressTickCmd()

	case redirectTickMsg:
		if m.uploadedID == 0 {
			return m, nil
		}
		id := m.uploadedID
		m.uploadedID = 0
		m.resetUploadForm()
		return m, m.navigateDetail(id)

	case transcriptionMsg:
		m.transcribing = false
		if msg.err != "" {
			m.formErrors[errKeyTranscription] = msg.err
			return m, nil
		}
		delete(m.formErrors, errKeyTranscription)
		m.form.Transcription = msg.text
		m.uploadInputs[upFocusTranscription].SetValue(msg.text)
		return m, nil

	case inspectMsg:
		m.applyInspection(msg)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && !m.editing() {
		m.fetchCancel()
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlC {
		m.fetchCancel()
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if !m.editing() {
		switch {
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.CycleTheme):
			m.cycleTheme()
			return m, nil
		case key.Matches(msg, m.keys.ViewHome):
			return m, m.navigate(viewHome)
		case key.Matches(msg, m.keys.ViewSearch):
			return m, m.navigate(viewSearch)
		case key.Matches(msg, m.keys.ViewUpload):
			if m.current != viewUpload {
				return m, m.navigate(viewUpload)
			}
		}
	}

	switch m.current {
	case viewHome:
		return m.updateHome(msg)
	case viewSearch:
		return m.updateSearch(msg)
	case viewDetail:
		return m.updateDetail(msg)
	case viewCategory:
		return m.updateCategory(msg)
	case viewUpload:
		return m.updateUpload(msg)
	}
	return m, nil
}

// editing reports whether a text input currently captures keystrokes.
func (m *Model) editing() bool {
	if m.current == viewSearch && m.searchInput.Focused() {
		return true
	}
	if m.current == viewUpload && m.uploadFocus < len(m.uploadInputs) {
		return true
	}
	return false
}

func (m *Model) cycleTheme() {
	themes := Themes()
	next := 0
	for i, t := range themes {
		if t.Name == m.theme.Name {
			next = (i + 1) % len(themes)
			break
		}
	}
	m.theme = themes[next]
	m.styles = m.theme.Styles()
	m.opts.Prefs.Theme = m.theme.Name
	_ = prefs.Save(m.opts.PrefsPath, m.opts.Prefs)
}

// navigate switches views, cancelling the old view's requests and
// issuing the new view's mount fetches.
func (m *Model) navigate(to view) tea.Cmd {
	if to == m.current {
		return nil
	}
	m.previous = m.current
	m.current = to
	m.resetFetchContext()

	snap := m.store.Snapshot()
	var cmds []tea.Cmd

	switch to {
	case viewHome:
		cmds = append(cmds, m.fetchCategoriesCmd(), m.fetchAudiosCmd(nil))
	case viewSearch:
		if len(snap.Categories) == 0 {
			cmds = append(cmds, m.fetchCategoriesCmd())
		}
		if len(snap.Tags) == 0 {
			cmds = append(cmds, m.fetchTagsCmd())
		}
		m.searchFocus = focusQuery
		cmds = append(cmds, m.searchInput.Focus())
		params := search.ParseQuery(m.searchRoute)
		m.searchParams = params
		m.searchInput.SetValue(params.Title)
		cmds = append(cmds, m.fetchAudiosCmd(&params))
	case viewUpload:
		if len(snap.Categories) == 0 {
			cmds = append(cmds, m.fetchCategoriesCmd())
		}
		if len(snap.Tags) == 0 {
			cmds = append(cmds, m.fetchTagsCmd())
		}
		m.uploadFocus = upFocusFile
		cmds = append(cmds, m.uploadInputs[upFocusFile].Focus())
	}

	return tea.Batch(cmds...)
}

func (m *Model) navigateDetail(id int) tea.Cmd {
	m.previous = m.current
	m.current = viewDetail
	m.detailID = id
	m.resetFetchContext()

	cmds := []tea.Cmd{m.fetchAudioCmd(id)}
	if len(m.store.Snapshot().Audios) == 0 {
		// Related audio is filtered client-side from the in-memory list.
		cmds = append(cmds, m.fetchAudiosCmd(nil))
	}
	return tea.Batch(cmds...)
}

func (m *Model) navigateCategory(id int) tea.Cmd {
	m.previous = m.current
	m.current = viewCategory
	m.categoryID = id
	m.categoryAudio = 0
	m.resetFetchContext()

	if len(m.store.Snapshot().Audios) == 0 {
		return m.fetchAudiosCmd(nil)
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	to := m.previous
	if to == m.current {
		to = viewHome
	}
	m.previous = viewHome
	return m.navigate(to)
}
