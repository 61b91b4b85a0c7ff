package farm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/utility"
)

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// UpdateProfileRequest carries a partial profile update keyed by field name.
type UpdateProfileRequest struct {
	UserID  string            `json:"userId"`
	Updates map[string]string `json:"updates"`
}

/*=================================================================================
									HANDLERS
=================================================================================*/

// GetFarmerProfile handles GET /get_farmer_profile. With a `field` query
// parameter only that one field is returned.
func (h *Handler) GetFarmerProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId is required"})
	}

	h.touchActivity(ctx, userID)

	profile, err := h.store.GetProfile(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load profile"})
	}
	if profile == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Profile not found"})
	}

	if field := c.QueryParam("field"); field != "" {
		value, ok := profileField(profile, field)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Field %q not found", field),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{field: value})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"userId":  userID,
		"profile": profile,
	})
}

// UpdateFarmerProfile handles POST /update_farmer_profile. Creating a profile
// that did not exist yet answers 201, updating an existing one answers 200.
func (h *Handler) UpdateFarmerProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if !utility.ValidateUserID(req.UserID) || len(req.Updates) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId and updates are required"})
	}

	h.touchActivity(ctx, req.UserID)

	created, err := h.store.UpsertProfile(ctx, req.UserID, req.Updates)
	if err != nil {
		if errors.Is(err, database.ErrUnknownProfileField) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to update profile")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	if created {
		return c.JSON(http.StatusCreated, map[string]string{"message": "Profile did not exist. Created new profile."})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

func profileField(p *database.FarmerProfile, field string) (string, bool) {
	switch field {
	case "name":
		return p.Name, true
	case "phone":
		return p.Phone, true
	case "location":
		return p.Location, true
	case "language":
		return p.Language, true
	case "profilePhoto":
		return p.ProfilePhoto, true
	default:
		return "", false
	}
}
