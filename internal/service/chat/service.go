package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/lunafall/aura/backend/internal/analysis/mood"
	"github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/model/chat"
	"github.com/lunafall/aura/backend/internal/service/ai"
)

var (
	ErrMessageRequired = errors.New("message is required")
	ErrAvatarNotFound  = errors.New("avatar not found")
)

// imageKeywords classify a user turn as a portrait request. Matching is
// case-insensitive substring.
var imageKeywords = []string{
	"picture", "photo", "image", "draw", "sketch",
	"show me", "send me", "give me", "create",
	"generate", "make", "display", "visual",
}

// imageCaption accompanies every generated portrait reply.
const imageCaption = "Here's a picture of me:"

// Generator produces in-character replies from a system prompt, replayed
// history, and the new user turn.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, history []chat.Message, userMessage string) (*schema.Message, error)
}

// ImageGenerator turns a portrait prompt into an image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates a single chat turn. It holds no per-conversation
// state; history is supplied by the caller on every request.
type Service struct {
	store     avatar.Store
	generator Generator
	images    ImageGenerator
	pick      func(n int) int
}

// Option customizes the service.
type Option func(*Service)

// WithPick overrides template selection for the no-credential fallback.
// Tests use it to make mock replies deterministic.
func WithPick(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

// NewService wires the chat orchestrator. generator and images may be nil
// when the corresponding credential is absent.
func NewService(store avatar.Store, generator Generator, images ImageGenerator, opts ...Option) *Service {
	s := &Service{
		store:     store,
		generator: generator,
		images:    images,
		pick:      rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Text     string
	ImageURL string
	HasImage bool
}

// Respond handles one user turn: portrait requests go to the image
// orchestrator, credential-less deployments get a canned in-character
// template, everything else flows through the text-generation chain.
func (s *Service) Respond(ctx context.Context, avatarID, message string, history []chat.Message) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrMessageRequired
	}

	a, ok := s.store.Get(avatarID)
	if !ok {
		return Reply{}, ErrAvatarNotFound
	}

	if IsImageRequest(message) && s.images != nil {
		url, err := s.images.Generate(ctx, ai.BuildPortraitPrompt(a))
		if err != nil {
			// No URL means we fall through to a text reply.
			log.Printf("[chat] portrait generation unavailable for avatar=%s: %v", a.ID, err)
		} else if url != "" {
			return Reply{Text: imageCaption, ImageURL: url, HasImage: true}, nil
		}
	}

	if s.generator == nil {
		return Reply{Text: s.mockReply(a)}, nil
	}

	memories := s.store.Memories(a.ID)
	systemPrompt := ai.BuildSystemPrompt(a, memories)

	response, err := s.generator.Generate(ctx, systemPrompt, history, message)
	if err != nil {
		return Reply{}, fmt.Errorf("chat generation failed: %w", err)
	}

	return Reply{Text: response.Content}, nil
}

// IsImageRequest reports whether the message asks for a picture.
func IsImageRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range imageKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// mockReply picks an in-character template matched to the avatar's traits.
// Used only when no generation credential is configured.
func (s *Service) mockReply(a avatar.Avatar) string {
	pool := mood.Templates(a.Traits)
	return pool[s.pick(len(pool))]
}
