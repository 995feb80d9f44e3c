package image

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/lunafall/aura/backend/internal/config"
)

// ErrUnavailable is returned when no image credential is configured or the
// upstream call produced no usable result. Callers decide whether that means
// falling back to text chat or failing the request.
var ErrUnavailable = errors.New("image generation unavailable")

// photorealismClause is appended to every portrait prompt before seeding so
// that identical avatar profiles keep producing identical requests.
const photorealismClause = ". Photorealistic portrait photograph with natural lighting, " +
	"realistic skin texture, professional DSLR quality, shallow depth of field."

// Enhancer rewrites a portrait prompt into a more vivid description. The
// rewrite is best-effort; failures never propagate to the caller.
type Enhancer interface {
	EnhanceImagePrompt(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates portrait generation: optional prompt enhancement,
// deterministic seeding, then a synchronous txt2img call.
type Service struct {
	client   *deapiClient
	enhancer Enhancer
	enabled  bool
}

// NewService builds the image service. enhancer may be nil when no text
// model is configured.
func NewService(cfg config.ImageConfig, enhancer Enhancer) *Service {
	return &Service{
		client: &deapiClient{
			apiKey:  cfg.APIKey,
			baseURL: cfg.BaseURL,
			model:   cfg.Model,
			width:   cfg.Width,
			height:  cfg.Height,
			steps:   cfg.Steps,
			httpClient: &http.Client{
				Timeout: time.Duration(cfg.Timeout) * time.Second,
			},
		},
		enhancer: enhancer,
		enabled:  cfg.Enabled(),
	}
}

// Enabled reports whether a generation credential is configured.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Generate turns a portrait prompt into an image URL. Any failure surfaces
// as ErrUnavailable; the upstream error is logged, never returned raw.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if !s.enabled {
		return "", ErrUnavailable
	}

	if s.enhancer != nil {
		enhanced, err := s.enhancer.EnhanceImagePrompt(ctx, prompt)
		if err != nil {
			log.Printf("[image] prompt enhancement failed, using original prompt: %v", err)
		} else {
			prompt = enhanced
		}
	}

	finalPrompt := prompt + photorealismClause
	seed := DeriveSeed(finalPrompt)

	url, err := s.client.Txt2Img(ctx, finalPrompt, seed)
	if err != nil {
		log.Printf("[image] generation failed: %v", err)
		return "", ErrUnavailable
	}

	return url, nil
}
