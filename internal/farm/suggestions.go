package farm

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/advisor"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/utility"
)

const defaultDaysSinceSowing = 30

/*=================================================================================
									HANDLERS
=================================================================================*/

// GetSuggestions handles GET /getSuggestions. It gathers the user's crops and
// the local weather, then asks the advisory pipeline for four suggestions.
func (h *Handler) GetSuggestions(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}

	lat, ok := floatParam(c, "lat")
	if !ok {
		lat = h.defaultLat
	}
	lon, ok := floatParam(c, "lon")
	if !ok {
		lon = h.defaultLon
	}

	h.touchActivity(ctx, userID)

	crops, err := h.store.ListCrops(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list crops")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list crops"})
	}
	if len(crops) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "No crops found for this user. Please add crops first.",
		})
	}

	wx := h.weather.Fetch(ctx, lat, lon)
	suggestions := h.pipeline.Suggestions(ctx, cropFacts(crops), wx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": advisor.FormatSuggestions(suggestions),
	})
}

// GetDailySuggestion handles GET /getDailySuggestion.
func (h *Handler) GetDailySuggestion(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}

	lat, ok := floatParam(c, "lat")
	if !ok {
		lat = h.defaultLat
	}
	lon, ok := floatParam(c, "lon")
	if !ok {
		lon = h.defaultLon
	}

	h.touchActivity(ctx, userID)

	crops, err := h.store.ListCrops(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list crops")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list crops"})
	}
	if len(crops) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "No crops found for this user. Please add crops first.",
		})
	}

	wx := h.weather.Fetch(ctx, lat, lon)
	tip := h.pipeline.DailyTip(ctx, cropFacts(crops), wx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"suggestion": advisor.FormatDailyTip(tip),
	})
}

// cropFacts derives the advisory view of stored crops. Sowing dates that are
// missing or malformed fall back to an assumed crop age; future dates clamp
// to zero.
func cropFacts(crops []database.Crop) []advisor.CropFact {
	facts := make([]advisor.CropFact, 0, len(crops))
	for _, crop := range crops {
		days := defaultDaysSinceSowing
		if crop.SowedDate != "" {
			if sowed, err := time.Parse("2006-01-02", crop.SowedDate); err == nil {
				days = int(time.Since(sowed).Hours() / 24)
				if days < 0 {
					days = 0
				}
			}
		}

		name := crop.Name
		if name == "" {
			name = "Unknown Crop"
		}

		facts = append(facts, advisor.CropFact{
			Name:            name,
			Type:            crop.Type,
			DaysSinceSowing: days,
		})
	}
	return facts
}
