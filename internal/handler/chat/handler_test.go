package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	avatarmodel "github.com/lunafall/aura/backend/internal/model/avatar"
	chatservice "github.com/lunafall/aura/backend/internal/service/chat"
)

func setupRouter() *chi.Mux {
	store := avatarmodel.NewMemoryStore(avatarmodel.Seed())
	// No generator and no image service: the mock fallback path, pinned to
	// the first template.
	chatSvc := chatservice.NewService(store, nil, nil, chatservice.WithPick(func(int) int { return 0 }))
	handler := New(chatSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatMissingFields(t *testing.T) {
	r := setupRouter()

	for _, body := range []map[string]any{
		{},
		{"avatarId": "luna"},
		{"message": "hello"},
	} {
		resp := postChat(t, r, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, resp.Code)
		}
	}
}

func TestChatUnknownAvatar(t *testing.T) {
	r := setupRouter()

	resp := postChat(t, r, map[string]any{"avatarId": "missing", "message": "hello"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestChatInvalidBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatFallbackNeverErrors(t *testing.T) {
	r := setupRouter()

	resp := postChat(t, r, map[string]any{
		"avatarId": "luna",
		"message":  "how are you",
		"conversationHistory": []map[string]string{
			{"role": "user", "content": "hi"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload chatResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Response == "" {
		t.Fatalf("expected a canned reply, got %+v", payload)
	}
	if payload.HasImage {
		t.Fatal("text fallback should not carry an image")
	}
	if payload.AvatarID != "luna" {
		t.Fatalf("unexpected avatarId %q", payload.AvatarID)
	}
}
