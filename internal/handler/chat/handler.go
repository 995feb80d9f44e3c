package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunafall/aura/backend/internal/model/chat"
	chatService "github.com/lunafall/aura/backend/internal/service/chat"
	"github.com/lunafall/aura/backend/pkg/utils"
)

// Handler serves the synchronous chat endpoint.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

type chatPayload struct {
	AvatarID            string         `json:"avatarId"`
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	AvatarID string `json:"avatarId"`
	ImageURL string `json:"imageUrl,omitempty"`
	HasImage bool   `json:"hasImage,omitempty"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.AvatarID == "" || payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "avatarId and message are required")
		return
	}

	reply, err := h.chatSvc.Respond(r.Context(), payload.AvatarID, payload.Message, payload.ConversationHistory)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrAvatarNotFound):
			utils.RespondError(w, http.StatusNotFound, "avatar not found")
		case errors.Is(err, chatService.ErrMessageRequired):
			utils.RespondError(w, http.StatusBadRequest, "message is required")
		default:
			log.Printf("[chat] request failed for avatar=%s: %v", payload.AvatarID, err)
			utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		Success:  true,
		Response: reply.Text,
		AvatarID: payload.AvatarID,
		ImageURL: reply.ImageURL,
		HasImage: reply.HasImage,
	})
}
