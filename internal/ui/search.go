package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/prefs"
	"github.com/resonate-app/resonate/internal/search"
	"github.com/resonate-app/resonate/internal/state"
)

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()

	if m.searchFocus == focusQuery {
		return m.updateSearchQuery(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.back()
	case key.Matches(msg, m.keys.ClearFilters):
		return m, m.clearSearch()
	case key.Matches(msg, m.keys.Tab):
		m.cycleSearchFocus()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveSearchSelection(snap, 1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveSearchSelection(snap, -1)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m, m.confirmSearchSelection(snap)
	}
	return m, nil
}

func (m *Model) updateSearchQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recent := m.opts.Prefs.RecentSearches

	switch msg.Type {
	case tea.KeyEscape:
		if m.recentVisible {
			m.recentVisible = false
			m.recentIndex = -1
			return m, nil
		}
		return m, m.back()
	case tea.KeyTab:
		m.cycleSearchFocus()
		return m, nil
	case tea.KeyUp:
		if len(recent) > 0 {
			m.recentVisible = true
			m.recentIndex = clamp(m.recentIndex-1, 0, len(recent)-1)
		}
		return m, nil
	case tea.KeyDown:
		if len(recent) > 0 {
			m.recentVisible = true
			m.recentIndex = clamp(m.recentIndex+1, 0, len(recent)-1)
		}
		return m, nil
	case tea.KeyEnter:
		if m.recentVisible && m.recentIndex >= 0 && m.recentIndex < len(recent) {
			m.searchInput.SetValue(recent[m.recentIndex])
		}
		m.recentVisible = false
		m.recentIndex = -1
		return m, m.submitSearch()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) cycleSearchFocus() {
	m.searchFocus = (m.searchFocus + 1) % searchFocusCount
	m.recentVisible = false
	m.recentIndex = -1
	if m.searchFocus == focusQuery {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m *Model) moveSearchSelection(snap state.Snapshot, delta int) {
	switch m.searchFocus {
	case focusCategories:
		m.searchCat = clamp(m.searchCat+delta, 0, len(snap.Categories)-1)
	case focusTags:
		m.searchTag = clamp(m.searchTag+delta, 0, len(snap.Tags)-1)
	case focusResults:
		m.searchResult = clamp(m.searchResult+delta, 0, len(snap.Audios)-1)
	}
}

// confirmSearchSelection toggles the highlighted filter chip, or opens
// the highlighted result. Chip interactions submit immediately: each one
// rewrites the route and re-triggers the fetch, a single round trip per
// action.
func (m *Model) confirmSearchSelection(snap state.Snapshot) tea.Cmd {
	switch m.searchFocus {
	case focusCategories:
		if category, ok := at(snap.Categories, m.searchCat); ok {
			if m.searchParams.CategoryID == category.ID {
				m.searchParams.CategoryID = 0
			} else {
				m.searchParams.CategoryID = category.ID
			}
			return m.submitSearch()
		}
	case focusTags:
		if tag, ok := at(snap.Tags, m.searchTag); ok {
			if lo.Contains(m.searchParams.TagIDs, tag.ID) {
				m.searchParams.TagIDs = lo.Filter(m.searchParams.TagIDs, func(id int, _ int) bool {
					return id != tag.ID
				})
			} else {
				m.searchParams.TagIDs = append(m.searchParams.TagIDs, tag.ID)
			}
			return m.submitSearch()
		}
	case focusResults:
		if audio, ok := at(snap.Audios, m.searchResult); ok {
			return m.navigateDetail(audio.ID)
		}
	}
	return nil
}

// submitSearch serializes the form state into the route, remembers the
// term, and re-parses the route to drive the fetch — the same round trip
// a URL change would take.
func (m *Model) submitSearch() tea.Cmd {
	m.searchParams.Title = strings.TrimSpace(m.searchInput.Value())

	if m.searchParams.Title != "" {
		m.opts.Prefs.RecentSearches = search.Remember(m.opts.Prefs.RecentSearches, m.searchParams.Title)
		_ = prefs.Save(m.opts.PrefsPath, m.opts.Prefs)
	}

	m.searchRoute = search.Encode(m.searchParams)
	return m.applyRoute()
}

// clearSearch resets the route to the bare search surface.
func (m *Model) clearSearch() tea.Cmd {
	m.searchParams = audiovault.SearchParams{}
	m.searchInput.SetValue("")
	m.searchRoute = ""
	m.searchResult = 0
	return m.applyRoute()
}

// applyRoute re-parses the current route into params and fetches. The
// transition is idempotent: identical routes parse to identical params
// and re-fetch identical results.
func (m *Model) applyRoute() tea.Cmd {
	params := search.ParseQuery(m.searchRoute)
	m.searchParams = params
	m.searchResult = 0
	if params.IsZero() {
		return m.fetchAudiosCmd(nil)
	}
	return m.fetchAudiosCmd(&params)
}

func (m *Model) renderSearch(snap state.Snapshot) string {
	var b strings.Builder

	query := m.styles.Panel
	if m.searchFocus == focusQuery {
		query = m.styles.PanelFocus
	}
	b.WriteString(query.Render(m.searchInput.View()) + "\n")

	route := "/search"
	if m.searchRoute != "" {
		route += "?" + m.searchRoute
	}
	b.WriteString(m.styles.Faint.Render(route) + "\n")

	if m.recentVisible && len(m.opts.Prefs.RecentSearches) > 0 {
		b.WriteString(m.styles.Muted.Render("Recent searches") + "\n")
		for i, term := range m.opts.Prefs.RecentSearches {
			b.WriteString(m.listRow(term, i == m.recentIndex) + "\n")
		}
	}

	if chips := m.renderFilterChips(snap); chips != "" {
		b.WriteString(chips + "\n")
	}

	filters := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSearchCategories(snap),
		" ",
		m.renderSearchTags(snap),
	)
	b.WriteString(filters + "\n")
	b.WriteString(m.renderSearchResults(snap))
	return b.String()
}

func (m *Model) renderFilterChips(snap state.Snapshot) string {
	var chips []string
	if m.searchParams.CategoryID > 0 {
		name := m.store.CategoryName(m.searchParams.CategoryID)
		chips = append(chips, m.styles.Chip.Render(name))
	}
	for _, id := range m.searchParams.TagIDs {
		if tag, found := lo.Find(snap.Tags, func(t audiovault.Tag) bool { return t.ID == id }); found {
			chips = append(chips, m.styles.Chip.Render("#"+tag.Name))
		}
	}
	if len(chips) == 0 {
		return ""
	}
	return strings.Join(chips, " ") + "  " + m.styles.Faint.Render("c to clear")
}

func (m *Model) renderSearchCategories(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Category") + "\n")
	if notice := m.sliceNotice(snap, state.SliceCategories); notice != "" {
		b.WriteString(notice + "\n")
	}
	for i, category := range snap.Categories {
		marker := "  "
		if category.ID == m.searchParams.CategoryID {
			marker = m.styles.Success.Render("✓ ")
		}
		b.WriteString(m.listRow(marker+truncate(category.Title, 20), m.searchFocus == focusCategories && i == m.searchCat) + "\n")
	}

	panel := m.styles.Panel
	if m.searchFocus == focusCategories {
		panel = m.styles.PanelFocus
	}
	return panel.Render(b.String())
}

func (m *Model) renderSearchTags(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Tags") + "\n")
	if notice := m.sliceNotice(snap, state.SliceTags); notice != "" {
		b.WriteString(notice + "\n")
	}
	for i, tag := range snap.Tags {
		marker := "  "
		if lo.Contains(m.searchParams.TagIDs, tag.ID) {
			marker = m.styles.Success.Render("✓ ")
		}
		b.WriteString(m.listRow(marker+truncate(tag.Name, 20), m.searchFocus == focusTags && i == m.searchTag) + "\n")
	}

	panel := m.styles.Panel
	if m.searchFocus == focusTags {
		panel = m.styles.PanelFocus
	}
	return panel.Render(b.String())
}

func (m *Model) renderSearchResults(snap state.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Results") + "\n")
	if notice := m.sliceNotice(snap, state.SliceAudios); notice != "" {
		b.WriteString(notice + "\n")
	}
	for i, audio := range snap.Audios {
		meta := joinNonEmpty("  ", audio.CategoryTitle, strings.Join(audio.TagNames(), ","))
		line := truncate(audio.Title, 48)
		if meta != "" {
			line += m.styles.Faint.Render("  " + meta)
		}
		b.WriteString(m.listRow(line, m.searchFocus == focusResults && i == m.searchResult) + "\n")
	}
	if len(snap.Audios) == 0 {
		b.WriteString(m.styles.Muted.Render("no matches") + "\n")
	}

	panel := m.styles.Panel
	if m.searchFocus == focusResults {
		panel = m.styles.PanelFocus
	}
	return panel.Render(b.String())
}
