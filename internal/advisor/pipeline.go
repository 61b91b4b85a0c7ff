package advisor

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/weather"
)

// Generator is the generative-text adapter the pipeline depends on. It is an
// interface so tests can substitute a fake for the real Gemini client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Pipeline turns crop and weather facts into farming suggestions. It holds no
// cross-request state; a single instance is shared by all handlers.
type Pipeline struct {
	gen Generator

	// SelectCrop picks which crop a fallback tip talks about. The default is
	// a random pick like the mobile app expects; tests inject a deterministic
	// policy.
	SelectCrop func(crops []CropFact) CropFact
}

func New(gen Generator) *Pipeline {
	return &Pipeline{
		gen: gen,
		SelectCrop: func(crops []CropFact) CropFact {
			return crops[rand.IntN(len(crops))]
		},
	}
}

// Suggestions returns exactly suggestionCount records for any weather
// snapshot, including an absent one. The decode chain is strict JSON, then
// heuristic text parse, then deterministic synthesis; no branch can fail.
// crops must be non-empty: the contract covers crop-owning callers only, and
// handlers answer 404 before reaching the pipeline when a user has no crops.
func (p *Pipeline) Suggestions(ctx context.Context, crops []CropFact, wx *weather.Snapshot) []Suggestion {
	prompt := buildSuggestionsPrompt(crops, wx)

	raw, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Suggestion generation failed, synthesizing from crop and weather facts")
		return synthesizeSuggestions(crops, wx)
	}

	if suggestions, ok := decodeSuggestions(raw); ok {
		return suggestions
	}

	log.Warn().Msg("Model reply was not a valid suggestion array, trying text parse")
	if suggestions := parseTextSuggestions(raw, crops); len(suggestions) == suggestionCount {
		return suggestions
	}

	return synthesizeSuggestions(crops, wx)
}

// DailyTip returns exactly one tip with non-empty heading and body. Like
// Suggestions, crops must be non-empty.
func (p *Pipeline) DailyTip(ctx context.Context, crops []CropFact, wx *weather.Snapshot) DailyTip {
	prompt := buildDailyTipPrompt(crops, wx)

	raw, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Daily tip generation failed, synthesizing")
		return inspectionTip(p.SelectCrop(crops))
	}

	if tip, ok := decodeDailyTip(raw); ok {
		return tip
	}

	log.Warn().Msg("Model reply was not a valid daily tip, synthesizing")
	return morningTip(p.SelectCrop(crops), wx)
}
