package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatSuggestionsOrdinalKeys(t *testing.T) {
	suggestions := []Suggestion{
		{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"},
	}
	formatted := FormatSuggestions(suggestions)
	require.Len(t, formatted, 4)
	require.Equal(t, "a", formatted["first"].Text)
	require.Equal(t, "b", formatted["second"].Text)
	require.Equal(t, "c", formatted["third"].Text)
	require.Equal(t, "d", formatted["fourth"].Text)
}

func TestFormatSuggestionsOverflowKeys(t *testing.T) {
	suggestions := []Suggestion{
		{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"},
	}
	formatted := FormatSuggestions(suggestions)
	require.Len(t, formatted, 5)
	require.Equal(t, "e", formatted["suggestion_5"].Text)
}

func TestFormatSuggestionsEmpty(t *testing.T) {
	require.Empty(t, FormatSuggestions(nil))
}

func TestFormatDailyTip(t *testing.T) {
	formatted := FormatDailyTip(DailyTip{Heading: "Hi! 🌱", Body: "Water things."})
	require.Equal(t, map[string]string{"heading": "Hi! 🌱", "body": "Water things."}, formatted)
}
