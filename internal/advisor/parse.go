package advisor

import (
	"encoding/json"
	"strings"
)

// suggestionCount is the number of records the multi-suggestion contract
// promises per invocation.
const suggestionCount = 4

// stripCodeFence removes a fenced-code-block wrapper (optionally tagged json)
// from a model reply. A reply with no fence passes through unchanged.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeSuggestions is the strict decode: fence-strip then JSON parse. The
// reply is accepted only when it is an array of at least suggestionCount
// objects, truncated to the first suggestionCount.
func decodeSuggestions(raw string) ([]Suggestion, bool) {
	var list []Suggestion
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &list); err != nil {
		return nil, false
	}
	if len(list) < suggestionCount {
		return nil, false
	}
	return list[:suggestionCount], true
}

// decodeDailyTip strictly decodes a single {heading, body} object.
func decodeDailyTip(raw string) (DailyTip, bool) {
	var tip DailyTip
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &tip); err != nil {
		return DailyTip{}, false
	}
	if tip.Heading == "" || tip.Body == "" {
		return DailyTip{}, false
	}
	return tip, true
}

// parseTextSuggestions is the heuristic fallback for replies that are prose
// instead of JSON. A line mentioning any input crop's name starts a new
// suggestion; following plain lines are appended to it. Heading-ish lines
// (starting with '#' or '*') and blank lines are skipped. At most
// suggestionCount suggestions are returned, each tagged care/general/medium
// since the free text carries no reliable structure.
func parseTextSuggestions(text string, crops []CropFact) []Suggestion {
	var suggestions []Suggestion
	var current string

	flush := func() {
		if current == "" {
			return
		}
		suggestions = append(suggestions, Suggestion{
			Text:     current,
			Category: CategoryCare,
			Crop:     "general",
			Priority: PriorityMedium,
		})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}
		if mentionsAnyCrop(line, crops) {
			flush()
			current = line
		} else if current != "" {
			current += " " + line
		}
	}
	flush()

	if len(suggestions) > suggestionCount {
		suggestions = suggestions[:suggestionCount]
	}
	return suggestions
}

func mentionsAnyCrop(line string, crops []CropFact) bool {
	lower := strings.ToLower(line)
	for _, crop := range crops {
		if crop.Name != "" && strings.Contains(lower, strings.ToLower(crop.Name)) {
			return true
		}
	}
	return false
}
