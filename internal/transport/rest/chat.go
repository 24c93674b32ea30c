package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/parley/internal/app"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
)

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	chat app.ChatUseCase
	log  *slog.Logger
}

func NewChatHandler(chat app.ChatUseCase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, log: logger.With("handler", "chat")}
}

type chatRequest struct {
	Message string                        `json:"message"`
	History []intelligence.HistoryMessage `json:"history"`
	Pending *intelligence.PendingAction   `json:"pending"`
}

type chatResponse struct {
	OriginalMessage string                      `json:"originalMessage"`
	AIResponse      intelligence.Intent         `json:"aiResponse"`
	Source          intelligence.Source         `json:"source"`
	Result          contract.ActionResult       `json:"result"`
	ReplyText       string                      `json:"replyText"`
	Pending         *intelligence.PendingAction `json:"pending"`
}

// Turn runs one conversation turn. The client keeps history and pending
// state and sends both back with the next message.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.chat.Turn(r.Context(), contract.TurnRequest{
		Message: req.Message,
		History: req.History,
		Pending: req.Pending,
	})
	if errors.Is(err, contract.ErrMessageRequired) {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "chat turn failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Server error while processing chat command")
		return
	}

	writeData(w, http.StatusOK, chatResponse{
		OriginalMessage: req.Message,
		AIResponse:      resp.Intent,
		Source:          resp.Source,
		Result:          resp.Result,
		ReplyText:       resp.ReplyText,
		Pending:         resp.Pending,
	})
}
