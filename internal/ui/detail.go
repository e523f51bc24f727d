package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/stats"
)

// openDetail opens the detail editor for a card identifier. An identifier
// that does not resolve to a catalog entry is a no-op and the editor stays
// closed.
func (m *Model) openDetail(id string) {
	if m.catalog.FindByID(id) == nil {
		return
	}
	m.detailID = id
	rec := m.store.GetOrCreate(id)
	m.notesInput.SetValue(rec.Notes)
	m.editingNotes = false
}

// closeDetail clears the active identifier.
func (m *Model) closeDetail() {
	m.detailID = ""
	m.editingNotes = false
	m.notesInput.Blur()
}

// handleDetailKey processes keys while the detail editor is open. Every edit
// writes through to the ownership record immediately; there is no discard
// path.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.detailID

	if m.editingNotes {
		switch msg.String() {
		case "esc", "enter":
			m.editingNotes = false
			m.notesInput.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.notesInput, cmd = m.notesInput.Update(msg)
		m.save(func() error { return m.store.SetNotes(id, m.notesInput.Value()) })
		m.refreshStats()
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "q":
		// Esc closes the editor even when a selection is pending; the
		// selection survives.
		m.closeDetail()
		return m, nil

	case "x", " ":
		rec := m.store.GetOrCreate(id)
		m.save(func() error { return m.store.SetCollected(id, !rec.Collected) })
		m.refreshStats()
		return m, nil

	case "+", "=":
		m.save(func() error { return m.store.IncrementQuantity(id) })
		m.refreshStats()
		return m, nil

	case "-", "_":
		// Floor-clamped at 1 inside the store.
		m.save(func() error { return m.store.DecrementQuantity(id) })
		m.refreshStats()
		return m, nil

	case "c":
		rec := m.store.GetOrCreate(id)
		next := nextCondition(rec.Condition)
		m.save(func() error { return m.store.SetCondition(id, next) })
		return m, nil

	case "n":
		m.editingNotes = true
		m.notesInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func nextCondition(current string) string {
	for i, c := range collection.Conditions {
		if c == current {
			return collection.Conditions[(i+1)%len(collection.Conditions)]
		}
	}
	return collection.Conditions[0]
}

// detailView renders the modal editor surface.
func (m Model) detailView() string {
	card := m.catalog.FindByID(m.detailID)
	if card == nil {
		return ""
	}
	rec := m.store.GetOrCreate(card.ID)

	var b strings.Builder

	b.WriteString(m.styles.DetailTitle.Render(card.Name))
	if card.ManaCost != "" {
		b.WriteString("  " + m.styles.Muted.Render(card.ManaCost))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(card.TypeLine) + "\n\n")

	writeField := func(label, value string) {
		b.WriteString(m.styles.DetailLabel.Render(fmt.Sprintf("%-11s", label)))
		b.WriteString(value + "\n")
	}

	writeField("Number", card.CollectorNumber)
	writeField("Rarity", card.Rarity)
	writeField("Artist", card.Artist)
	writeField("Market", stats.FormatPrice(card.MarketPrice()))
	writeField("Median", stats.FormatPrice(card.PriceMedian))
	if card.TCGPlayerID != nil {
		writeField("Shop", fmt.Sprintf("https://www.tcgplayer.com/product/%d", *card.TCGPlayerID))
	}
	b.WriteString("\n")

	collectedBox := "[ ]"
	if rec.Collected {
		collectedBox = m.styles.Collected.Render("[x]")
	}
	writeField("Collected", collectedBox)
	writeField("Condition", rec.Condition)
	writeField("Quantity", fmt.Sprintf("%d", rec.Quantity))

	notes := m.notesInput.View()
	if !m.editingNotes && m.notesInput.Value() == "" {
		notes = m.styles.Muted.Render("(none)")
	}
	writeField("Notes", notes)

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("x collect · +/- quantity · c condition · n notes · esc close"))

	return m.styles.Detail.Render(b.String())
}
