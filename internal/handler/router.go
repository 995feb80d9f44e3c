package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	avatarHandler "github.com/lunafall/aura/backend/internal/handler/avatar"
	chatHandler "github.com/lunafall/aura/backend/internal/handler/chat"
	streamHandler "github.com/lunafall/aura/backend/internal/handler/stream"
	middlewarePkg "github.com/lunafall/aura/backend/internal/middleware"
	avatarModel "github.com/lunafall/aura/backend/internal/model/avatar"
	aiService "github.com/lunafall/aura/backend/internal/service/ai"
	chatService "github.com/lunafall/aura/backend/internal/service/chat"
	imageService "github.com/lunafall/aura/backend/internal/service/image"
)

// NewRouter wires HTTP routes to core services. aiSvc may be nil when no
// text credential is configured; the streaming endpoint then falls back to
// a single canned message event.
func NewRouter(store avatarModel.Store, chatSvc *chatService.Service, aiSvc *aiService.Service, imageSvc *imageService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	var images avatarHandler.ImageGenerator
	if imageSvc != nil {
		images = imageSvc
	}

	var streamer streamHandler.Streamer
	if aiSvc != nil {
		streamer = aiSvc
	}

	r.Route("/api", func(api chi.Router) {
		avatarHandler.New(store, images).RegisterRoutes(api)
		chatHandler.New(chatSvc).RegisterRoutes(api)
		streamHandler.New(streamer, chatSvc, store).RegisterRoutes(api)
	})

	return r
}
