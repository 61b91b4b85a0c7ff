/*
Package farm contains the HTTP handlers of the advisory API: crop management,
the assistant chat, weather lookup, image analysis, and the suggestion
endpoints. Handlers stay thin — validate input, load the records the pipeline
needs, call the adapters, persist derived records, shape JSON.
*/
package farm

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/advisor"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/classifier"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/gemini"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/weather"
)

// Handler bundles the store and adapters the routes need. All dependencies
// are injected at startup and read-only afterwards.
type Handler struct {
	store      *database.Store
	weather    *weather.Client
	gemini     *gemini.Client
	classifier *classifier.Client
	pipeline   *advisor.Pipeline

	// Fallback coordinates for suggestion requests without lat/lon.
	defaultLat float64
	defaultLon float64
}

func NewHandler(
	store *database.Store,
	weatherClient *weather.Client,
	geminiClient *gemini.Client,
	classifierClient *classifier.Client,
	pipeline *advisor.Pipeline,
	defaultLat, defaultLon float64,
) *Handler {
	return &Handler{
		store:      store,
		weather:    weatherClient,
		gemini:     geminiClient,
		classifier: classifierClient,
		pipeline:   pipeline,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
	}
}

// touchActivity records the farmer's last-active timestamp. Best-effort; a
// failed write is logged and never fails the request.
func (h *Handler) touchActivity(ctx context.Context, userID string) {
	if err := h.store.TouchFarmer(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Could not update user activity")
	}
}

// floatParam parses a float query parameter, returning ok=false when it is
// missing or malformed.
func floatParam(c echo.Context, name string) (float64, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
