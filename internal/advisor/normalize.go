package advisor

import "fmt"

// ordinalKeys are the positional keys of the client's suggestion contract.
var ordinalKeys = []string{"first", "second", "third", "fourth"}

// FormatSuggestions maps suggestions to the ordinal-keyed shape the client
// expects, preserving input order. Indexes past the ordinals (which upstream
// truncation should prevent) key as suggestion_{n}. Pure, no failure modes.
func FormatSuggestions(suggestions []Suggestion) map[string]Suggestion {
	formatted := make(map[string]Suggestion, len(suggestions))
	for i, s := range suggestions {
		key := fmt.Sprintf("suggestion_%d", i+1)
		if i < len(ordinalKeys) {
			key = ordinalKeys[i]
		}
		formatted[key] = s
	}
	return formatted
}

// FormatDailyTip maps a tip to the flat object shape of the client contract.
func FormatDailyTip(tip DailyTip) map[string]string {
	return map[string]string{
		"heading": tip.Heading,
		"body":    tip.Body,
	}
}
