package farm

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Weather handles GET /weather. The adapter degrades to an absent snapshot on
// any failure, which this route reports as a 500 since weather is the whole
// point here.
func (h *Handler) Weather(c echo.Context) error {
	lat, okLat := floatParam(c, "lat")
	lon, okLon := floatParam(c, "lon")
	if !okLat || !okLon {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Latitude and longitude are required.",
		})
	}

	snapshot := h.weather.Fetch(c.Request().Context(), lat, lon)
	if snapshot == nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Failed to fetch weather data",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"weather":  snapshot,
		"location": map[string]float64{"lat": lat, "lon": lon},
	})
}
