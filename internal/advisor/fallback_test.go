package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/weather"
)

func snapshotWith(temp, humidity float64) *weather.Snapshot {
	return &weather.Snapshot{Current: weather.Current{Temperature: temp, Humidity: humidity}}
}

func TestSynthesizeSuggestionThresholds(t *testing.T) {
	cases := []struct {
		name         string
		temp         float64
		humidity     float64
		days         int
		wantCategory Category
		wantPriority Priority
	}{
		{"hot weather wins", 31, 50, 10, CategoryProtection, PriorityHigh},
		{"humid weather second", 25, 85, 10, CategoryProtection, PriorityMedium},
		{"old crop third", 25, 50, 65, CategoryHarvesting, PriorityMedium},
		{"fertilizer default", 25, 50, 10, CategoryFertilizer, PriorityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			crop := CropFact{Name: "wheat", DaysSinceSowing: tc.days}
			s := synthesizeSuggestion(crop, tc.temp, tc.humidity)
			require.Equal(t, tc.wantCategory, s.Category)
			require.Equal(t, tc.wantPriority, s.Priority)
			require.Equal(t, "wheat", s.Crop)
			require.Contains(t, s.Text, "wheat")
		})
	}
}

func TestSynthesizeSuggestionsCyclesCrops(t *testing.T) {
	crops := []CropFact{
		{Name: "wheat", DaysSinceSowing: 10},
		{Name: "rice", DaysSinceSowing: 70},
	}
	suggestions := synthesizeSuggestions(crops, snapshotWith(25, 50))
	require.Len(t, suggestions, 4)
	require.Equal(t, "wheat", suggestions[0].Crop)
	require.Equal(t, "rice", suggestions[1].Crop)
	require.Equal(t, "wheat", suggestions[2].Crop)
	require.Equal(t, "rice", suggestions[3].Crop)
	require.Equal(t, CategoryHarvesting, suggestions[1].Category)
}

func TestSynthesizeSuggestionsAbsentWeatherDefaults(t *testing.T) {
	crops := []CropFact{{Name: "tomato", DaysSinceSowing: 10}}
	suggestions := synthesizeSuggestions(crops, nil)
	require.Len(t, suggestions, 4)
	// 25°C / 65% defaults trip neither weather threshold.
	for _, s := range suggestions {
		require.Equal(t, CategoryFertilizer, s.Category)
		require.Equal(t, "tomato", s.Crop)
	}
}

func TestSynthesizeSuggestionsManyCropsTruncated(t *testing.T) {
	crops := []CropFact{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
	}
	suggestions := synthesizeSuggestions(crops, snapshotWith(25, 50))
	require.Len(t, suggestions, 4)
	require.Equal(t, "d", suggestions[3].Crop)
}

func TestDailyTipFallbacks(t *testing.T) {
	crop := CropFact{Name: "rice"}

	tip := morningTip(crop, snapshotWith(28, 60))
	require.Equal(t, "Good morning farmer! 🌱", tip.Heading)
	require.Contains(t, tip.Body, "rice")
	require.Contains(t, tip.Body, "28°C")

	tip = morningTip(crop, nil)
	require.Contains(t, tip.Body, "25°C")

	tip = inspectionTip(crop)
	require.Equal(t, "Farm check time! 🚜", tip.Heading)
	require.Contains(t, tip.Body, "rice")
}
