package advisor

import (
	"fmt"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/weather"
)

// Defaults used by deterministic synthesis when the weather snapshot is
// absent. They apply to this branch only.
const (
	defaultTemperature = 25.0
	defaultHumidity    = 65.0
)

// synthesizeSuggestions produces the full set of suggestions from facts alone,
// no model call. Crops are taken in input order, wrapping around when fewer
// than suggestionCount crops exist, so the output count is always exact.
func synthesizeSuggestions(crops []CropFact, wx *weather.Snapshot) []Suggestion {
	temp, humidity := defaultTemperature, defaultHumidity
	if wx != nil {
		temp = wx.Current.Temperature
		humidity = wx.Current.Humidity
	}

	suggestions := make([]Suggestion, 0, suggestionCount)
	for i := 0; len(suggestions) < suggestionCount; i++ {
		suggestions = append(suggestions, synthesizeSuggestion(crops[i%len(crops)], temp, humidity))
	}
	return suggestions
}

// synthesizeSuggestion applies the fixed thresholds: hot weather beats humid
// weather beats crop age; anything else gets a fertilizer reminder.
func synthesizeSuggestion(crop CropFact, temp, humidity float64) Suggestion {
	switch {
	case temp > 30:
		return Suggestion{
			Text:     fmt.Sprintf("Provide shade or extra water to your %s - high temperature (%g°C) can stress the plants", crop.Name, temp),
			Category: CategoryProtection,
			Crop:     crop.Name,
			Priority: PriorityHigh,
		}
	case humidity > 80:
		return Suggestion{
			Text:     fmt.Sprintf("Check your %s for fungal diseases - high humidity (%g%%) increases disease risk", crop.Name, humidity),
			Category: CategoryProtection,
			Crop:     crop.Name,
			Priority: PriorityMedium,
		}
	case crop.DaysSinceSowing > 60:
		return Suggestion{
			Text:     fmt.Sprintf("Consider harvesting your %s soon - it's been %d days since planting", crop.Name, crop.DaysSinceSowing),
			Category: CategoryHarvesting,
			Crop:     crop.Name,
			Priority: PriorityMedium,
		}
	default:
		return Suggestion{
			Text:     fmt.Sprintf("Monitor your %s growth - apply balanced fertilizer if needed after %d days", crop.Name, crop.DaysSinceSowing),
			Category: CategoryFertilizer,
			Crop:     crop.Name,
			Priority: PriorityMedium,
		}
	}
}

// morningTip is the daily-tip fallback for an unparsable reply: the model
// answered, we just could not decode it.
func morningTip(crop CropFact, wx *weather.Snapshot) DailyTip {
	temp := defaultTemperature
	if wx != nil {
		temp = wx.Current.Temperature
	}
	return DailyTip{
		Heading: "Good morning farmer! 🌱",
		Body:    fmt.Sprintf("Check on your %s today - with %g°C weather, it's a great day for farming!", crop.Name, temp),
	}
}

// inspectionTip is the daily-tip fallback for an adapter failure.
func inspectionTip(crop CropFact) DailyTip {
	return DailyTip{
		Heading: "Farm check time! 🚜",
		Body:    fmt.Sprintf("How's your %s doing today? A quick inspection never hurts!", crop.Name),
	}
}
