/*
Package advisor implements the suggestion-generation pipeline: prompt
construction from crop and weather facts, strict and heuristic decoding of the
model's reply, and deterministic fallback synthesis. The pipeline never fails
to produce output — a model error or malformed reply always degrades to a
synthesized answer.
*/
package advisor

// Category classifies a suggestion. pest_control is a valid value the model
// may return but deterministic synthesis never emits.
type Category string

const (
	CategoryIrrigation  Category = "irrigation"
	CategoryProtection  Category = "protection"
	CategoryCare        Category = "care"
	CategoryPestControl Category = "pest_control"
	CategoryHarvesting  Category = "harvesting"
	CategoryFertilizer  Category = "fertilizer"
)

// Priority ranks how urgently a suggestion should be acted on.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// CropFact is one crop as the pipeline sees it. DaysSinceSowing is derived by
// the caller from the stored sowing date (defaulting to 30 when the date is
// missing or unparsable) and the struct is immutable once passed in.
type CropFact struct {
	Name            string
	Type            string
	DaysSinceSowing int
}

// Suggestion is one actionable farming suggestion. The multi-suggestion path
// produces exactly four per invocation.
type Suggestion struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Crop     string   `json:"crop"`
	Priority Priority `json:"priority"`
}

// DailyTip is the single-tip output: a catchy heading (conventionally carrying
// an emoji) and one or two lines of advice.
type DailyTip struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}
