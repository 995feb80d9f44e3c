package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/model/chat"
	aiService "github.com/lunafall/aura/backend/internal/service/ai"
	chatService "github.com/lunafall/aura/backend/internal/service/chat"
	"github.com/lunafall/aura/backend/pkg/utils"
)

// Streamer is the slice of the AI service the streaming endpoint needs.
type Streamer interface {
	StreamingEnabled() bool
	Stream(ctx context.Context, systemPrompt string, history []chat.Message, userMessage string) (*schema.StreamReader[*schema.Message], error)
}

// Handler streams chat replies over Server-Sent Events. History stays
// client-supplied, same as the synchronous endpoint.
type Handler struct {
	ai      Streamer
	chatSvc *chatService.Service
	store   avatar.Store
}

// New creates the stream handler. ai may be nil when no text credential is
// configured; replies then degrade to a single canned message event.
func New(ai Streamer, chatSvc *chatService.Service, store avatar.Store) *Handler {
	return &Handler{ai: ai, chatSvc: chatSvc, store: store}
}

// RegisterRoutes mounts the streaming chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/stream", h.handleStream)
}

// StreamResponse is one SSE frame.
type StreamResponse struct {
	Event    string `json:"event"`
	Content  string `json:"content,omitempty"`
	AvatarID string `json:"avatarId,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Error    string `json:"error,omitempty"`
}

type streamPayload struct {
	AvatarID            string         `json:"avatarId"`
	Message             string         `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	var payload streamPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.AvatarID == "" || payload.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "avatarId and message are required")
		return
	}

	a, ok := h.store.Get(payload.AvatarID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "avatar not found")
		return
	}

	if h.ai != nil && !h.ai.StreamingEnabled() {
		utils.RespondError(w, http.StatusServiceUnavailable, "streaming disabled")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	if h.ai == nil {
		h.streamCanned(w, flusher, r, a, payload)
		return
	}

	systemPrompt := aiService.BuildSystemPrompt(a, h.store.Memories(a.ID))

	stream, err := h.ai.Stream(r.Context(), systemPrompt, payload.ConversationHistory, payload.Message)
	if err != nil {
		log.Printf("[stream] failed to open stream for avatar=%s: %v", a.ID, err)
		utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
		return
	}
	defer stream.Close()

	utils.SetupSSEHeaders(w)
	h.send(w, flusher, StreamResponse{Event: "start", AvatarID: a.ID})

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			log.Printf("[stream] receive failed for avatar=%s: %v", a.ID, recvErr)
			h.send(w, flusher, StreamResponse{Event: "error", Error: "generation failed"})
			return
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.send(w, flusher, StreamResponse{
				Event:    "delta",
				AvatarID: a.ID,
				Content:  chunk.Content,
			})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		log.Printf("[stream] failed to merge chunks for avatar=%s: %v", a.ID, err)
		h.send(w, flusher, StreamResponse{Event: "error", Error: "generation failed"})
		return
	}

	h.send(w, flusher, StreamResponse{
		Event:    "message",
		AvatarID: a.ID,
		Content:  response.Content,
	})
	h.send(w, flusher, StreamResponse{Event: "end", AvatarID: a.ID, Finished: true})

	log.Printf("[stream] completed response for avatar=%s, length=%d", a.ID, len(response.Content))
}

// streamCanned serves the no-credential deployment: the orchestrator's canned
// reply goes out as one message event so SSE clients keep working unchanged.
func (h *Handler) streamCanned(w http.ResponseWriter, flusher http.Flusher, r *http.Request, a avatar.Avatar, payload streamPayload) {
	reply, err := h.chatSvc.Respond(r.Context(), a.ID, payload.Message, payload.ConversationHistory)
	if err != nil {
		log.Printf("[stream] canned reply failed for avatar=%s: %v", a.ID, err)
		utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
		return
	}

	utils.SetupSSEHeaders(w)
	h.send(w, flusher, StreamResponse{Event: "start", AvatarID: a.ID})
	h.send(w, flusher, StreamResponse{
		Event:    "message",
		AvatarID: a.ID,
		Content:  reply.Text,
	})
	h.send(w, flusher, StreamResponse{Event: "end", AvatarID: a.ID, Finished: true})
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}
