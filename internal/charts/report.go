package charts

import (
	"fmt"

	"github.com/averyquinn/set-tracker/internal/catalog"
	"github.com/averyquinn/set-tracker/internal/collection"
	"github.com/averyquinn/set-tracker/internal/stats"
)

// rarityOrder fixes the display order of rarity buckets.
var rarityOrder = []string{"common", "uncommon", "rare", "mythic"}

// WriteReport renders the collection report (completion and set value broken
// down by rarity) to an HTML file.
func WriteReport(outputPath string, cards []catalog.Card, owned *collection.Store) error {
	summary := stats.Compute(cards, owned)

	totals := make(map[string]float64)
	counts := make(map[string]float64)
	collected := make(map[string]float64)
	var extras []string
	seen := make(map[string]bool)
	for _, r := range rarityOrder {
		seen[r] = true
	}

	for i := range cards {
		card := &cards[i]
		if !seen[card.Rarity] {
			seen[card.Rarity] = true
			extras = append(extras, card.Rarity)
		}
		totals[card.Rarity] += card.EffectivePrice()
		counts[card.Rarity]++
		if owned.Collected(card.ID) {
			collected[card.Rarity]++
		}
	}

	rarities := append(append([]string{}, rarityOrder...), extras...)

	var valuePoints []DataPoint
	var totalPoints, collectedPoints []DataPoint
	for _, r := range rarities {
		if counts[r] == 0 {
			continue
		}
		valuePoints = append(valuePoints, DataPoint{Label: r, Value: totals[r]})
		totalPoints = append(totalPoints, DataPoint{Label: r, Value: counts[r]})
		collectedPoints = append(collectedPoints, DataPoint{Label: r, Value: collected[r]})
	}

	completionCfg := DefaultChartConfig()
	completionCfg.Title = "Set Completion by Rarity"
	completionCfg.Subtitle = fmt.Sprintf("%d of %d cards collected (%.0f%%)",
		summary.CollectedCards, summary.TotalCards, summary.CompletionPercent())

	completionChart, err := NewMultiBarChart([]SeriesData{
		{Name: "Collected", Points: collectedPoints},
		{Name: "Total", Points: totalPoints},
	}, completionCfg)
	if err != nil {
		return err
	}

	valueCfg := DefaultChartConfig()
	valueCfg.Title = "Set Value by Rarity"
	valueCfg.Subtitle = fmt.Sprintf("set total %s, owned %s",
		stats.FormatAmount(summary.SetValue), stats.FormatAmount(summary.OwnedValue))
	valueChart := NewBarChart("Value (USD)", valuePoints, valueCfg)

	return RenderPage(outputPath, completionChart, valueChart)
}
