package chatbot

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// Handler exposes the bot over HTTP
type Handler struct {
	bot    *Bot
	logger zerolog.Logger
}

// NewHandler creates a chat Handler
func NewHandler(bot *Bot, logger zerolog.Logger) *Handler {
	return &Handler{
		bot:    bot,
		logger: logger.With().Str("component", "chatbot").Logger(),
	}
}

// chatRequest carries the conversation so far plus the new message
type chatRequest struct {
	History []types.ChatMessage `json:"history"`
	Message string              `json:"message"`
}

// HandleChat handles POST /api/chat
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "missing message", http.StatusBadRequest)
		return
	}

	reply := types.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    "bot",
		Content:   h.bot.Reply(req.History, req.Message),
		Timestamp: time.Now(),
	}

	h.logger.Debug().Int("history_len", len(req.History)).Msg("chat reply generated")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(reply)
}
