package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a canned reply or error.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func pickFirst(crops []CropFact) CropFact { return crops[0] }

func testCrops() []CropFact {
	return []CropFact{
		{Name: "wheat", Type: "cereal", DaysSinceSowing: 20},
		{Name: "tomato", DaysSinceSowing: 45},
	}
}

func TestSuggestionsDecodesModelReply(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n" + validSuggestionsJSON + "\n```"}
	p := New(gen)

	suggestions := p.Suggestions(context.Background(), testCrops(), snapshotWith(22, 55))
	require.Len(t, suggestions, 4)
	require.Equal(t, "Water your wheat early", suggestions[0].Text)

	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "- wheat (cereal, planted 20 days ago)")
	require.Contains(t, gen.prompts[0], "- tomato (unknown type, planted 45 days ago)")
}

func TestSuggestionsAdapterFailureSynthesizes(t *testing.T) {
	p := New(&fakeGenerator{err: errors.New("boom")})

	suggestions := p.Suggestions(context.Background(), testCrops(), snapshotWith(32, 50))
	require.Len(t, suggestions, 4)
	for _, s := range suggestions {
		require.Equal(t, CategoryProtection, s.Category)
		require.Equal(t, PriorityHigh, s.Priority)
	}
}

func TestSuggestionsTextReplyUsesHeuristicParse(t *testing.T) {
	reply := `Water the wheat early in the day.
Stake the tomato plants before the wind picks up.
Check wheat leaves for rust.
Feed the tomato beds with compost.`
	p := New(&fakeGenerator{reply: reply})

	suggestions := p.Suggestions(context.Background(), testCrops(), nil)
	require.Len(t, suggestions, 4)
	require.Equal(t, "Water the wheat early in the day.", suggestions[0].Text)
	require.Equal(t, "general", suggestions[0].Crop)
}

func TestSuggestionsInconclusiveTextSynthesizes(t *testing.T) {
	p := New(&fakeGenerator{reply: "I cannot help with that."})

	suggestions := p.Suggestions(context.Background(), testCrops(), nil)
	require.Len(t, suggestions, 4)
	// Absent weather defaults, tomato is past nothing, wheat gets fertilizer.
	require.Equal(t, CategoryFertilizer, suggestions[0].Category)
	require.Equal(t, "wheat", suggestions[0].Crop)
	require.Equal(t, "tomato", suggestions[1].Crop)
}

func TestDailyTipDecodesModelReply(t *testing.T) {
	p := New(&fakeGenerator{reply: `{"heading": "Wheat watch! 🌾", "body": "Scout for aphids today."}`})
	p.SelectCrop = pickFirst

	tip := p.DailyTip(context.Background(), testCrops(), nil)
	require.Equal(t, "Wheat watch! 🌾", tip.Heading)
	require.Equal(t, "Scout for aphids today.", tip.Body)
}

func TestDailyTipAdapterFailure(t *testing.T) {
	p := New(&fakeGenerator{err: errors.New("timeout")})
	p.SelectCrop = pickFirst

	tip := p.DailyTip(context.Background(), testCrops(), snapshotWith(30, 40))
	require.Equal(t, "Farm check time! 🚜", tip.Heading)
	require.Contains(t, tip.Body, "wheat")
}

func TestDailyTipUnparsableReply(t *testing.T) {
	p := New(&fakeGenerator{reply: "Here's a tip: water stuff."})
	p.SelectCrop = pickFirst

	tip := p.DailyTip(context.Background(), testCrops(), snapshotWith(30, 40))
	require.Equal(t, "Good morning farmer! 🌱", tip.Heading)
	require.Contains(t, tip.Body, "30°C")
}

func TestDailyTipNeverEmpty(t *testing.T) {
	for _, gen := range []*fakeGenerator{
		{err: errors.New("down")},
		{reply: "{}"},
		{reply: `{"heading": "only heading"}`},
	} {
		p := New(gen)
		tip := p.DailyTip(context.Background(), testCrops(), nil)
		require.NotEmpty(t, tip.Heading)
		require.NotEmpty(t, tip.Body)
	}
}

func TestPromptWeatherMarker(t *testing.T) {
	gen := &fakeGenerator{reply: validSuggestionsJSON}
	p := New(gen)

	p.Suggestions(context.Background(), testCrops(), nil)
	require.Contains(t, gen.prompts[0], "Weather data not available")

	gen.prompts = nil
	p.Suggestions(context.Background(), testCrops(), snapshotWith(22, 55))
	require.Contains(t, gen.prompts[0], "Current Weather:")
	require.Contains(t, gen.prompts[0], "Temperature: 22°C")
}
