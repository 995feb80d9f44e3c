package avatar

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/pkg/utils"
)

// ImageGenerator is the slice of the image service the photo route needs.
type ImageGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Handler serves avatar CRUD and photo management.
type Handler struct {
	store  avatar.Store
	images ImageGenerator
}

// New creates the avatar handler. images may be nil when portrait
// generation is not configured.
func New(store avatar.Store, images ImageGenerator) *Handler {
	return &Handler{store: store, images: images}
}

// RegisterRoutes mounts the avatar routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/avatars", h.handleGetAvatars)
	r.Post("/avatars", h.handleAvatarAction)
	r.Post("/avatars/photo", h.handlePhoto)
}

func (h *Handler) handleGetAvatars(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"avatars": h.store.List(),
		})
		return
	}

	a, ok := h.store.Get(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "avatar not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"avatar":   a,
		"memories": h.store.Memories(id),
	})
}

type actionPayload struct {
	Action   string         `json:"action"`
	Avatar   *avatar.Avatar `json:"avatar"`
	AvatarID string         `json:"avatarId"`
}

func (h *Handler) handleAvatarAction(w http.ResponseWriter, r *http.Request) {
	var payload actionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch payload.Action {
	case "create", "update":
		h.saveAvatar(w, payload.Avatar)
	case "delete":
		if payload.AvatarID == "" {
			utils.RespondError(w, http.StatusBadRequest, "avatarId is required")
			return
		}
		h.store.Delete(payload.AvatarID)
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	case "clearMemory":
		if payload.AvatarID == "" {
			utils.RespondError(w, http.StatusBadRequest, "avatarId is required")
			return
		}
		h.store.ClearMemory(payload.AvatarID)
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	default:
		utils.RespondError(w, http.StatusBadRequest, "invalid action")
	}
}

func (h *Handler) saveAvatar(w http.ResponseWriter, a *avatar.Avatar) {
	if a == nil {
		utils.RespondError(w, http.StatusBadRequest, "avatar is required")
		return
	}

	if valid, errs := avatar.Validate(*a); !valid {
		utils.RespondErrors(w, http.StatusBadRequest, errs)
		return
	}

	saved := *a
	now := time.Now().UTC()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	h.store.Save(saved)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"avatar":  saved,
	})
}

type photoPayload struct {
	AvatarID         string `json:"avatarId"`
	PersonalPhotoURL string `json:"personalPhotoUrl"`
	ImagePrompt      string `json:"imagePrompt"`
}

func (h *Handler) handlePhoto(w http.ResponseWriter, r *http.Request) {
	var payload photoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.AvatarID == "" {
		utils.RespondError(w, http.StatusBadRequest, "avatarId is required")
		return
	}

	a, ok := h.store.Get(payload.AvatarID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "avatar not found")
		return
	}

	if payload.PersonalPhotoURL != "" {
		a.PersonalPhotoURL = payload.PersonalPhotoURL
		a.UpdatedAt = time.Now().UTC()
		h.store.Save(a)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "personal photo saved",
			"avatar":  a,
		})
		return
	}

	if payload.ImagePrompt != "" {
		if h.images == nil || !h.images.Enabled() {
			utils.RespondError(w, http.StatusInternalServerError, "image API key not configured")
			return
		}

		url, err := h.images.Generate(r.Context(), payload.ImagePrompt)
		if err != nil {
			log.Printf("[avatar] image generation failed for avatar=%s: %v", a.ID, err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to generate image")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  "generated image",
			"imageUrl": url,
		})
		return
	}

	utils.RespondError(w, http.StatusBadRequest, "missing parameters")
}
