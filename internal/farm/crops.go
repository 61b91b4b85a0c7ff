package farm

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/utility"
)

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// AddCropRequest carries one or more crop documents to create.
type AddCropRequest struct {
	UserID    string              `json:"user_id"`
	UserIDAlt string              `json:"userId"`
	CropData  []database.CropData `json:"cropData"`
}

// UpdateCropRequest carries a partial crop update.
type UpdateCropRequest struct {
	UserID    string             `json:"user_id"`
	UserIDAlt string             `json:"userId"`
	CropID    string             `json:"cropId"`
	CropData  *database.CropData `json:"cropData"`
}

// DeleteCropRequest accepts the identifiers from either the JSON body or the
// query string.
type DeleteCropRequest struct {
	UserID    string `json:"user_id" query:"user_id"`
	UserIDAlt string `json:"userId" query:"userId"`
	CropID    string `json:"cropId" query:"cropId"`
}

/*=================================================================================
									HANDLERS
=================================================================================*/

// AddCrop handles POST /addCrop.
func (h *Handler) AddCrop(c echo.Context) error {
	ctx := c.Request().Context()

	var req AddCropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	userID := utility.FirstNonEmpty(req.UserID, req.UserIDAlt)
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid user_id is required"})
	}
	if len(req.CropData) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cropData must be a non-empty list"})
	}

	h.touchActivity(ctx, userID)

	added := make([]map[string]interface{}, 0, len(req.CropData))
	for _, data := range req.CropData {
		crop, err := h.store.AddCrop(ctx, userID, data)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to add crop")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add crop"})
		}
		added = append(added, map[string]interface{}{
			"cropId": crop.CropID.String(),
			"data":   data,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Crop(s) added successfully",
		"userId":     userID,
		"cropsAdded": added,
	})
}

// UpdateCrop handles PUT /updateCrop.
func (h *Handler) UpdateCrop(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateCropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	userID := utility.FirstNonEmpty(req.UserID, req.UserIDAlt)
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid user_id is required"})
	}
	if req.CropID == "" || req.CropData == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing cropId or cropData"})
	}

	cropID, err := uuid.Parse(req.CropID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Crop not found"})
	}

	h.touchActivity(ctx, userID)

	if err := h.store.UpdateCrop(ctx, userID, cropID, *req.CropData); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Crop not found"})
		}
		log.Error().Err(err).Str("crop_id", req.CropID).Msg("Failed to update crop")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update crop"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Crop updated successfully",
		"userId":  userID,
	})
}

// DeleteCrop handles DELETE /deleteCrop.
func (h *Handler) DeleteCrop(c echo.Context) error {
	ctx := c.Request().Context()

	var req DeleteCropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	userID := utility.FirstNonEmpty(req.UserID, req.UserIDAlt)
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}
	if req.CropID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing cropId"})
	}

	cropID, err := uuid.Parse(req.CropID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Crop not found"})
	}

	h.touchActivity(ctx, userID)

	if err := h.store.DeleteCrop(ctx, userID, cropID); err != nil {
		log.Error().Err(err).Str("crop_id", req.CropID).Msg("Failed to delete crop")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete crop"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Crop deleted successfully",
		"userId":  userID,
	})
}

// GetCrops handles GET /getCrops. All fields are returned as strings, the
// shape the clients already parse.
func (h *Handler) GetCrops(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}

	h.touchActivity(ctx, userID)

	crops, err := h.store.ListCrops(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list crops")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list crops"})
	}

	cropList := make([]map[string]string, 0, len(crops))
	for _, crop := range crops {
		cropList = append(cropList, map[string]string{
			"id":          crop.CropID.String(),
			"name":        crop.Name,
			"type":        crop.Type,
			"plantedDate": crop.SowedDate,
			"area":        crop.Area,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"crops":  cropList,
		"userId": userID,
	})
}
