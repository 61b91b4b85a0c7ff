package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(LoggerMiddleware)

	e.GET("/", s.homeHandler)
	e.GET("/health", s.healthHandler)

	// Assistant chat routes
	e.POST("/chat", s.farm.Chat)
	e.GET("/getChats", s.farm.GetChats)
	e.GET("/getChat", s.farm.GetChat)
	e.DELETE("/deleteAllChats", s.farm.DeleteAllChats)

	// Image analysis route
	e.POST("/analyze_image", s.farm.AnalyzeImage)

	// Weather and suggestion routes
	e.GET("/weather", s.farm.Weather)
	e.GET("/getSuggestions", s.farm.GetSuggestions)
	e.GET("/getDailySuggestion", s.farm.GetDailySuggestion)

	// Crop management routes
	e.POST("/addCrop", s.farm.AddCrop)
	e.PUT("/updateCrop", s.farm.UpdateCrop)
	e.DELETE("/deleteCrop", s.farm.DeleteCrop)
	e.GET("/getCrops", s.farm.GetCrops)

	// Farmer profile routes
	e.GET("/get_farmer_profile", s.farm.GetFarmerProfile)
	e.POST("/update_farmer_profile", s.farm.UpdateFarmerProfile)

	return e
}

// homeHandler lists the API surface so a bare GET / is self-documenting.
func (s *Server) homeHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Agricultural Advisory System",
		"version": "2.1",
		"note":    "This API expects user_id from existing login system",
		"endpoints": map[string]string{
			"POST /chat":              "Chat with assistant (requires user_id)",
			"POST /analyze_image":     "Analyze plant images (requires user_id)",
			"GET /weather":            "Get weather data",
			"GET /getSuggestions":     "Get weather-based farming suggestions (requires userId)",
			"GET /getDailySuggestion": "Get one daily farming tip (requires userId)",
			"POST /addCrop":           "Add crops (requires user_id)",
			"GET /getCrops":           "Get crops (requires userId)",
			"GET /getChats":           "Get chat history (requires userId)",
			"DELETE /deleteAllChats":  "Delete all chats (requires userId)",
		},
	})
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set("logger", &logger)

		return next(c)
	}
}
