package farm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/utility"
)

// historyWindow is how many previous turns are replayed into the chat prompt.
const historyWindow = 5

const chatPromptTemplate = `You are a friendly agricultural assistant. Answer farming questions naturally, engage with the user but keep the text short and clear.

Previous conversation:
%s

User: %s

Respond helpfully but always remind users to consult local agricultural experts for serious concerns.`

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

// ChatRequest accepts both the snake_case and camelCase field names the
// mobile clients send.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	UserIDAlt string `json:"userId"`
	ChatID    string `json:"chat_id"`
	ChatIDAlt string `json:"chatId"`
}

// DeleteAllChatsRequest carries the identifier for the bulk delete.
type DeleteAllChatsRequest struct {
	UserID string `json:"userId"`
}

/*=================================================================================
									HANDLERS
=================================================================================*/

// Chat handles POST /chat: replay recent history into the prompt, ask the
// assistant, and append both turns to the conversation log.
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	userID := utility.FirstNonEmpty(req.UserID, req.UserIDAlt)
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid user_id is required"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No message provided"})
	}

	h.touchActivity(ctx, userID)

	chatID, isNewChat, history, err := h.loadChatContext(ctx, userID, utility.FirstNonEmpty(req.ChatID, req.ChatIDAlt))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load chat history")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load chat history"})
	}

	prompt := fmt.Sprintf(chatPromptTemplate, strings.Join(history, "\n"), req.Message)
	botResponse, err := h.gemini.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Chat generation failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate response"})
	}

	now := time.Now()
	turns := []database.ChatMessage{
		{Sender: "user", Message: req.Message, Timestamp: now},
		{Sender: "bot", Message: botResponse, Timestamp: now},
	}

	if isNewChat {
		err = h.store.CreateChat(ctx, userID, chatID, turns, botResponse)
	} else {
		err = h.store.AppendMessages(ctx, userID, chatID, turns, botResponse)
	}
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID.String()).Msg("Failed to persist chat turns")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save chat"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"response":    botResponse,
		"chat_id":     chatID.String(),
		"user_id":     userID,
		"is_new_chat": isNewChat,
	})
}

// loadChatContext resolves the target conversation. An unknown or malformed
// chat id silently starts a new conversation, matching client expectations.
func (h *Handler) loadChatContext(ctx context.Context, userID, rawChatID string) (uuid.UUID, bool, []string, error) {
	if rawChatID != "" {
		if chatID, err := uuid.Parse(rawChatID); err == nil {
			chat, err := h.store.GetChat(ctx, userID, chatID)
			if err != nil {
				return uuid.Nil, false, nil, err
			}
			if chat != nil {
				return chatID, false, formatHistory(chat.Messages), nil
			}
		}
	}
	return uuid.New(), true, nil, nil
}

// formatHistory renders the last few turns as "sender: message" lines.
func formatHistory(messages []database.ChatMessage) []string {
	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}
	history := make([]string, 0, len(messages))
	for _, msg := range messages {
		history = append(history, fmt.Sprintf("%s: %s", msg.Sender, msg.Message))
	}
	return history
}

// GetChats handles GET /getChats: conversation summaries, newest first.
func (h *Handler) GetChats(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}

	h.touchActivity(ctx, userID)

	chats, err := h.store.ListChats(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list chats")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list chats"})
	}

	chatList := make([]map[string]interface{}, 0, len(chats))
	for _, chat := range chats {
		chatList = append(chatList, map[string]interface{}{
			"chatId":      chat.ChatID.String(),
			"lastMessage": chat.LastMessage,
			"createdAt":   chat.CreatedAt.Format(time.RFC3339),
			"updatedAt":   chat.UpdatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"chats":  chatList,
		"userId": userID,
	})
}

// GetChat handles GET /getChat: one full conversation with its message log.
func (h *Handler) GetChat(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("userId")
	if !utility.ValidateUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}
	rawChatID := c.QueryParam("chatId")
	if rawChatID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing chatId"})
	}

	h.touchActivity(ctx, userID)

	chatID, err := uuid.Parse(rawChatID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Chat not found"})
	}

	chat, err := h.store.GetChat(ctx, userID, chatID)
	if err != nil {
		log.Error().Err(err).Str("chat_id", rawChatID).Msg("Failed to load chat")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load chat"})
	}
	if chat == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Chat not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"chatId":    chat.ChatID.String(),
		"userId":    userID,
		"createdAt": chat.CreatedAt.Format(time.RFC3339),
		"updatedAt": chat.UpdatedAt.Format(time.RFC3339),
		"messages":  chat.Messages,
	})
}

// DeleteAllChats handles DELETE /deleteAllChats.
func (h *Handler) DeleteAllChats(c echo.Context) error {
	ctx := c.Request().Context()

	var req DeleteAllChatsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
	}
	if !utility.ValidateUserID(req.UserID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Valid userId is required"})
	}

	h.touchActivity(ctx, req.UserID)

	deleted, err := h.store.DeleteAllChats(ctx, req.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to delete chats")
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Failed to delete chats",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("Deleted %d chat(s)", deleted),
		"deletedCount": deleted,
	})
}
