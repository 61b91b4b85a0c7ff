package advisor

import (
	"fmt"
	"strings"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/weather"
)

// This file stores the prompt templates and their builders. The templates are
// kept together so the wording can be tuned without touching pipeline logic.

// weatherUnavailable is the literal marker the prompts carry when the weather
// adapter degraded to an absent snapshot.
const weatherUnavailable = "Weather data not available"

const suggestionsPromptTemplate = `You are an expert agricultural advisor. Based on the farmer's crops and current weather conditions, provide 4 practical farming suggestions.

Farmer's Crops:
%s

%s

Please provide exactly 4 specific, actionable farming suggestions. Each suggestion should:
1. Be practical and immediately actionable
2. Consider the current weather conditions
3. Be specific to the crops the farmer is growing
4. Include the crop name in the suggestion
5. Be concise (1-2 sentences each)

Format your response as a JSON array with 4 objects, each having:
- "text": the suggestion text
- "category": one of ["irrigation", "protection", "care", "pest_control"] in exact series
- "crop": the specific crop name mentioned
- "priority": one of ["high", "medium", "low"]

Example format:
[
  {
    "text": "Water your wheat early morning - temperature reaching 35°C today will stress the plants",
    "category": "irrigation",
    "crop": "wheat",
    "priority": "high"
  }
]`

const dailyTipPromptTemplate = `You are a helpful farming assistant. Suggest ONE short tip for today's farm activity.

Farmer's crops (with sowing date): %s
Today's weather: %s

Instructions:
- Consider both the weather and the time since each crop was sown
- Choose the crop that needs attention today (e.g., vulnerable to rain, pests, or nutrient needs)
- Give a short and clear tip for that crop
- Heading must include an emoji and be catchy

Format:
{
  "heading": "Short, fun title with emoji",
  "body": "One or two lines of helpful advice mentioning the selected crop"
}`

// buildSuggestionsPrompt composes the multi-suggestion instruction from the
// rendered crop list and weather block.
func buildSuggestionsPrompt(crops []CropFact, wx *weather.Snapshot) string {
	return fmt.Sprintf(suggestionsPromptTemplate, formatCrops(crops), formatWeather(wx))
}

func buildDailyTipPrompt(crops []CropFact, wx *weather.Snapshot) string {
	names := make([]string, 0, len(crops))
	for _, crop := range crops {
		names = append(names, crop.Name)
	}
	return fmt.Sprintf(dailyTipPromptTemplate, strings.Join(names, ", "), formatWeatherBrief(wx))
}

// formatCrops renders the crops as a bulleted list: name (type, planted N days ago).
func formatCrops(crops []CropFact) string {
	lines := make([]string, 0, len(crops))
	for _, crop := range crops {
		cropType := crop.Type
		if cropType == "" {
			cropType = "unknown type"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s, planted %d days ago)", crop.Name, cropType, crop.DaysSinceSowing))
	}
	return strings.Join(lines, "\n")
}

// formatWeather renders the structured weather block with current conditions
// and up to 4 forecast entries, or the unavailable marker.
func formatWeather(wx *weather.Snapshot) string {
	if wx == nil {
		return weatherUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Current Weather:
- Temperature: %g°C (feels like %g°C)
- Humidity: %g%%
- Weather: %s
- Wind Speed: %g m/s
- Pressure: %g hPa

Forecast (next 24 hours):
`,
		wx.Current.Temperature,
		wx.Current.FeelsLike,
		wx.Current.Humidity,
		wx.Current.Description,
		wx.Current.WindSpeed,
		wx.Current.Pressure,
	)

	forecast := wx.Forecast
	if len(forecast) > 4 {
		forecast = forecast[:4]
	}
	for _, entry := range forecast {
		fmt.Fprintf(&b, "- %s: %g°C, %s, Rain: %gmm\n", entry.Date, entry.Temp, entry.Description, entry.Rain)
	}
	return b.String()
}

func formatWeatherBrief(wx *weather.Snapshot) string {
	if wx == nil {
		return weatherUnavailable
	}
	return fmt.Sprintf("Temperature: %g°C, Humidity: %g%%, Weather: %s",
		wx.Current.Temperature, wx.Current.Humidity, wx.Current.Description)
}
