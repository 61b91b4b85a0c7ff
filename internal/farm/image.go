package farm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/utility"
)

const cropValidationPrompt = "Look at this image and respond with only 'crop' if this is an image of a crop/plant/agricultural product, or 'not crop' if it's not. Give only one of these two responses, nothing else."

const diseaseExplanationTemplate = `A plant has been detected with the condition: %s.
Please explain what this condition is, how it affects the plant, and how a farmer can treat or prevent it if it's a disease.
If it's healthy, provide care tips. Keep it short and clear.`

const notCropMessage = "The uploaded image does not appear to be a crop or plant. Please upload an image of a crop or plant for analysis."

/*=================================================================================
									HANDLERS
=================================================================================*/

// AnalyzeImage handles POST /analyze_image. The image first passes a vision
// gate that decides whether it shows a crop at all; only crop images reach
// the disease model. Both outcomes are appended to the user's chat log, and
// a failed append never fails the analysis itself.
func (h *Handler) AnalyzeImage(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image file provided"})
	}

	userID := utility.FirstNonEmpty(c.FormValue("user_id"), c.FormValue("userId"))
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid user_id is required"})
	}
	rawChatID := utility.FirstNonEmpty(c.FormValue("chat_id"), c.FormValue("chatId"))

	h.touchActivity(ctx, userID)

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read image file"})
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read image file"})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	gateReply, err := h.gemini.GenerateVision(ctx, cropValidationPrompt, image, mimeType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Crop validation failed")
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   fmt.Sprintf("Crop validation failed: %v", err),
		})
	}

	if strings.ToLower(strings.TrimSpace(gateReply)) != "crop" {
		chatID, isNewChat := h.persistImageTurns(ctx, userID, rawChatID,
			"[Image Analysis] Uploaded image", notCropMessage, "error")

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":     false,
			"error":       "Not a crop image",
			"message":     notCropMessage,
			"chat_id":     chatID,
			"user_id":     userID,
			"is_new_chat": isNewChat,
		})
	}

	prediction, err := h.classifier.Classify(ctx, image, fileHeader.Filename, mimeType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Model prediction failed")
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   fmt.Sprintf("Model prediction failed: %v", err),
		})
	}

	explanation, err := h.gemini.Generate(ctx, fmt.Sprintf(diseaseExplanationTemplate, prediction.Disease))
	if err != nil {
		log.Warn().Err(err).Str("label", prediction.Disease).Msg("Explanation generation failed, using fallback text")
		explanation = fmt.Sprintf("Detected: %s. Please consult with an agricultural expert for detailed analysis and treatment recommendations.", prediction.Disease)
	}

	botMessage := fmt.Sprintf("Plant Analysis Result: %s\n\n%s", prediction.Disease, explanation)
	chatID, isNewChat := h.persistImageTurns(ctx, userID, rawChatID,
		"[Image Analysis] Uploaded plant image", botMessage, "analysis")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":            true,
		"predicted_label":    prediction.Disease,
		"gemini_explanation": explanation,
		"chat_id":            chatID,
		"user_id":            userID,
		"is_new_chat":        isNewChat,
	})
}

// persistImageTurns appends the analysis exchange to the target conversation,
// starting a fresh one when the given chat id is missing or unknown. Write
// failures are logged and swallowed.
func (h *Handler) persistImageTurns(ctx context.Context, userID, rawChatID, userMessage, botMessage, botType string) (string, bool) {
	chatID, isNewChat, _, err := h.loadChatContext(ctx, userID, rawChatID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Could not resolve chat for image analysis")
		return rawChatID, false
	}

	now := time.Now()
	turns := []database.ChatMessage{
		{Sender: "user", Message: userMessage, Timestamp: now, Type: "image"},
		{Sender: "bot", Message: botMessage, Timestamp: now, Type: botType},
	}

	if isNewChat {
		err = h.store.CreateChat(ctx, userID, chatID, turns, botMessage)
	} else {
		err = h.store.AppendMessages(ctx, userID, chatID, turns, botMessage)
	}
	if err != nil {
		log.Warn().Err(err).Str("chat_id", chatID.String()).Msg("Could not persist image analysis turns")
	}

	return chatID.String(), isNewChat
}
