package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/flintdate/flint-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messageService *service.MessageService
	hub            *websocket.Hub
}

func NewMessageHandler(messageService *service.MessageService, hub *websocket.Hub) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		hub:            hub,
	}
}

type SendMessageRequest struct {
	MatchID string `json:"matchId" validate:"required,uuid"`
	Content string `json:"content"`
}

// MessageView is the wire shape of a message. Delivered is a fixed true:
// there is no delivery tracking, the field exists for client compatibility.
type MessageView struct {
	ID         uint64 `json:"id"`
	MatchID    string `json:"matchId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
	Delivered  bool   `json:"delivered"`
}

func messageView(m *domain.Message) MessageView {
	return MessageView{
		ID:         m.ID,
		MatchID:    m.MatchID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		Delivered:  true,
	}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid match id.")
		return
	}

	message, err := h.messageService.Send(r.Context(), matchID, callerID, req.Content)
	if err != nil {
		h.respondMessageError(w, "message.Send", err)
		return
	}

	h.notifyReceiver(message)
	respond(w, http.StatusOK, "Message sent successfully.", messageView(message))
}

func (h *MessageHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	matchID, err := uuid.Parse(chi.URLParam(r, "matchId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid match id.")
		return
	}

	messages, err := h.messageService.List(r.Context(), matchID, callerID)
	if err != nil {
		h.respondMessageError(w, "message.ListByMatch", err)
		return
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView(m))
	}

	respond(w, http.StatusOK, "Messages retrieved successfully.", views)
}

// respondMessageError maps messaging outcomes to the envelope. Not-found and
// not-participant both answer 400 so a non-participant cannot probe which
// match ids exist; the distinct messages match the service-level distinction.
func (h *MessageHandler) respondMessageError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyContent):
		respondError(w, http.StatusBadRequest, "Message content cannot be empty.")
	case errors.Is(err, domain.ErrMatchNotFound):
		respondError(w, http.StatusBadRequest, "Match not found.")
	case errors.Is(err, domain.ErrNotParticipant):
		respondError(w, http.StatusBadRequest, "User does not have access to these messages.")
	default:
		log.Printf("ERROR [%s] %v", op, err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (h *MessageHandler) notifyReceiver(m *domain.Message) {
	event, err := websocket.NewEvent(websocket.EventTypeMessageNew, websocket.MessageNewPayload{
		MessageID: m.ID,
		MatchID:   m.MatchID.String(),
		SenderID:  m.SenderID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("ERROR [message.notifyReceiver] %v", err)
		return
	}
	h.hub.NotifyUser(m.ReceiverID, event)
}
