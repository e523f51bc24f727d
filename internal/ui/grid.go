package ui

import (
	"fmt"
	"strings"

	"github.com/averyquinn/set-tracker/internal/filter"
	"github.com/averyquinn/set-tracker/internal/stats"
)

// loadFailureMessage directs the user to the ingestion command when the
// catalog could not be loaded at startup.
const loadFailureMessage = "Failed to load card data.\n\nRun: fetch-cards\n\nPress any key to exit."

// gridHeight returns how many card rows fit on screen.
func (m Model) gridHeight() int {
	// header, stats, filter bar, search line, collect bar, status line
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if m.loadErr != nil {
		return m.styles.Error.Render(loadFailureMessage) + "\n\n" +
			m.styles.Muted.Render(m.loadErr.Error()) + "\n"
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Set Tracker"))
	b.WriteString("  ")
	b.WriteString(m.statsLine())
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n")
	b.WriteString(m.searchLine())
	b.WriteString("\n")

	if m.detailID != "" {
		b.WriteString(m.detailView())
		b.WriteString("\n")
	} else {
		b.WriteString(m.gridView())
	}

	b.WriteString(m.collectBar())
	b.WriteString("\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m Model) statsLine() string {
	s := m.summary
	line := fmt.Sprintf("%d/%d collected (%d%%) · owned %s · set %s · avg %s",
		s.CollectedCards, s.TotalCards, int(s.CompletionPercent()),
		stats.FormatAmount(s.OwnedValue),
		stats.FormatAmount(s.SetValue),
		stats.FormatAmount(s.AveragePrice()),
	)
	return m.styles.StatsBar.Render(line)
}

var colorNames = map[string]string{
	"":                    "all",
	"W":                   "white",
	"U":                   "blue",
	"B":                   "black",
	"R":                   "red",
	"G":                   "green",
	filter.ColorMulti:     "multicolor",
	filter.ColorColorless: "colorless",
	filter.ColorLand:      "land",
}

var sortNames = map[string]string{
	filter.SortNone: "catalog",
	filter.SortAsc:  "price ↑",
	filter.SortDesc: "price ↓",
}

func (m Model) filterLine() string {
	segment := func(key, label, value string, active bool) string {
		s := fmt.Sprintf("[%s] %s: %s", key, label, value)
		if active {
			return m.styles.FilterActive.Render(s)
		}
		return m.styles.FilterBar.Render(s)
	}

	rarity := m.filters.Rarity
	if rarity == "" {
		rarity = "all"
	}
	status := m.filters.Status
	if status == "" {
		status = "all"
	}

	parts := []string{
		segment("o", "color", colorNames[m.filters.Color], m.filters.Color != ""),
		segment("r", "rarity", rarity, m.filters.Rarity != ""),
		segment("t", "status", status, m.filters.Status != ""),
		segment("p", "sort", sortNames[m.filters.Sort], m.filters.Sort != filter.SortNone),
	}
	return strings.Join(parts, "  ")
}

func (m Model) searchLine() string {
	label := m.styles.FilterBar.Render("[/] search:")
	return label + " " + m.searchInput.View()
}

func (m Model) gridView() string {
	if len(m.visible) == 0 {
		return m.styles.Muted.Render("no cards match the current filters") +
			strings.Repeat("\n", m.gridHeight())
	}

	h := m.gridHeight()
	start := 0
	if m.cursor >= h {
		start = m.cursor - h + 1
	}
	end := start + h
	if end > len(m.visible) {
		end = len(m.visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	for i := end - start; i < h; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(i int) string {
	card := &m.visible[i]
	_, isSelected := m.selected[card.ID]
	isCollected := m.store.Collected(card.ID)

	cursor := "  "
	if i == m.cursor {
		cursor = m.styles.RowCursor.Render("> ")
	}

	selectMark := "[ ]"
	if isSelected {
		selectMark = m.styles.RowSelected.Render("[*]")
	}

	collectedMark := " "
	if isCollected {
		collectedMark = m.styles.Collected.Render("✓")
	}

	name := card.Name
	if w := m.nameWidth(); len([]rune(name)) > w {
		name = string([]rune(name)[:w-1]) + "…"
	}

	row := fmt.Sprintf("%s%s %s %4s  %-*s %-10s %8s %8s",
		cursor, selectMark, collectedMark,
		card.CollectorNumber,
		m.nameWidth(), name,
		card.Rarity,
		stats.FormatPrice(card.MarketPrice()),
		stats.FormatPrice(card.PriceMedian),
	)

	style := m.styles.Row
	if i == m.cursor {
		style = m.styles.RowCursor
	} else if isSelected {
		style = m.styles.RowSelected
	}
	return style.Render(row)
}

func (m Model) nameWidth() int {
	w := m.width - 45
	if w < 20 {
		w = 20
	}
	if w > 40 {
		w = 40
	}
	return w
}

// collectBar shows the pending selection and the bulk action while the
// selection set is non-empty.
func (m Model) collectBar() string {
	if len(m.selected) == 0 {
		return m.styles.Help.Render("space select · enter details · c collect selected · q quit")
	}
	bar := fmt.Sprintf("%d selected · c collect · esc cancel", len(m.selected))
	return m.styles.CollectBar.Render(bar)
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if strings.HasPrefix(m.status, "save failed") {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Muted.Render(m.status)
}
