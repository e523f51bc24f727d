package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/filter"
	"github.com/averyquinn/set-tracker/internal/stats"
)

// searchDebounce is how long after the last keystroke the visible list is
// recomputed. Other filter controls recompute immediately.
const searchDebounce = 200 * time.Millisecond

// searchDebounceMsg fires when a scheduled search recompute comes due. Stale
// messages (seq behind the model's counter) are dropped, which cancels
// superseded timers.
type searchDebounceMsg struct {
	seq int
}

// CatalogReloadedMsg replaces the catalog, typically after an ingestion run
// rewrote the catalog file.
type CatalogReloadedMsg struct {
	Catalog *catalog.Catalog
}

// cycle orders for the filter controls.
var (
	colorCycle  = []string{"", "W", "U", "B", "R", "G", filter.ColorMulti, filter.ColorColorless, filter.ColorLand}
	rarityCycle = []string{"", "common", "uncommon", "rare", "mythic"}
	statusCycle = []string{filter.StatusAll, filter.StatusCollected, filter.StatusMissing}
	sortCycle   = []string{filter.SortNone, filter.SortAsc, filter.SortDesc}
)

// Model is the application state: the catalog, the ownership store, the
// current filters and the transient interaction state (cursor, selection,
// open detail editor).
type Model struct {
	catalog *catalog.Catalog
	store   *collection.Store
	styles  Styles

	filters filter.Filters
	visible []catalog.Card
	summary stats.Summary

	cursor int

	selected map[string]struct{}

	// Detail editor state; empty detailID means closed.
	detailID     string
	editingNotes bool
	notesInput   textinput.Model

	searchInput textinput.Model
	searching   bool
	searchSeq   int

	width  int
	height int

	loadErr error
	status  string
}

// New creates the model for a loaded catalog.
func New(cat *catalog.Catalog, store *collection.Store) Model {
	m := newModel(store)
	m.catalog = cat
	m.refresh()
	return m
}

// NewLoadFailed creates a model that shows the catalog load failure message
// until a reload delivers a catalog. The store is kept so the reload path can
// recompute statistics.
func NewLoadFailed(store *collection.Store, err error) Model {
	m := newModel(store)
	m.loadErr = err
	return m
}

func newModel(store *collection.Store) Model {
	search := textinput.New()
	search.Placeholder = "search by name..."
	search.CharLimit = 64
	search.Width = 30

	notes := textinput.New()
	notes.Placeholder = "notes..."
	notes.CharLimit = 200
	notes.Width = 40

	return Model{
		store:       store,
		styles:      DefaultStyles(),
		selected:    make(map[string]struct{}),
		searchInput: search,
		notesInput:  notes,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// refresh recomputes the visible list and the statistics. Called on filter
// and catalog changes, never on selection or collect toggles.
func (m *Model) refresh() {
	m.visible = filter.Apply(m.catalog.Cards(), m.store, m.filters)
	m.summary = stats.Compute(m.catalog.Cards(), m.store)
	m.clampCursor()
}

// refreshStats recomputes the statistics only, leaving the visible list and
// scroll position untouched.
func (m *Model) refreshStats() {
	m.summary = stats.Compute(m.catalog.Cards(), m.store)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// cursorCard returns the card under the cursor, or nil when the list is
// empty.
func (m *Model) cursorCard() *catalog.Card {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return &m.visible[m.cursor]
}

func (m *Model) scheduleSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// save runs a store mutation and surfaces any write failure on the status
// line.
func (m *Model) save(fn func() error) {
	if err := fn(); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = ""
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CatalogReloadedMsg:
		if m.loadErr != nil {
			// First successful load after a startup failure.
			m.loadErr = nil
		}
		m.catalog = msg.Catalog
		m.refresh()
		m.status = "catalog reloaded"
		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.filters.Search = m.searchInput.Value()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loadErr != nil {
		// Any key leaves the failure screen.
		return m, tea.Quit
	}

	// The open detail editor captures all keys.
	if m.detailID != "" {
		return m.handleDetailKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		// Selection clear; the detail-editor branch above already handled
		// the higher-priority close.
		if len(m.selected) > 0 {
			m.selected = make(map[string]struct{})
		}
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case "pgup":
		m.cursor -= m.gridHeight()
		m.clampCursor()
		return m, nil

	case "pgdown":
		m.cursor += m.gridHeight()
		m.clampCursor()
		return m, nil

	case "home":
		m.cursor = 0
		return m, nil

	case "end":
		m.cursor = len(m.visible) - 1
		m.clampCursor()
		return m, nil

	case " ":
		// Select toggle is independent of opening the detail editor.
		if card := m.cursorCard(); card != nil {
			if _, ok := m.selected[card.ID]; ok {
				delete(m.selected, card.ID)
			} else {
				m.selected[card.ID] = struct{}{}
			}
		}
		return m, nil

	case "enter":
		if card := m.cursorCard(); card != nil {
			m.openDetail(card.ID)
		}
		return m, nil

	case "c":
		if len(m.selected) > 0 {
			ids := make([]string, 0, len(m.selected))
			for id := range m.selected {
				ids = append(ids, id)
			}
			m.save(func() error { return m.store.BulkCollect(ids) })
			m.refreshStats()
			m.selected = make(map[string]struct{})
		}
		return m, nil

	case "o":
		m.filters.Color = cycleNext(colorCycle, m.filters.Color)
		m.refresh()
		return m, nil

	case "r":
		m.filters.Rarity = cycleNext(rarityCycle, m.filters.Rarity)
		m.refresh()
		return m, nil

	case "t":
		m.filters.Status = cycleNext(statusCycle, m.filters.Status)
		m.refresh()
		return m, nil

	case "p":
		m.filters.Sort = cycleNext(sortCycle, m.filters.Sort)
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		// Apply whatever is typed without waiting out the debounce.
		m.searchSeq++
		m.filters.Search = m.searchInput.Value()
		m.refresh()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, tea.Batch(cmd, m.scheduleSearch())
}

func cycleNext(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
