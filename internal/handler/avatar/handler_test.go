package avatar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	avatarmodel "github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/model/memory"
)

type stubImages struct {
	enabled bool
	url     string
	err     error
}

func (s stubImages) Enabled() bool { return s.enabled }

func (s stubImages) Generate(context.Context, string) (string, error) {
	return s.url, s.err
}

func setupRouter(images ImageGenerator) (*chi.Mux, *avatarmodel.MemoryStore) {
	store := avatarmodel.NewMemoryStore(nil)
	handler := New(store, images)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateThenGetAvatar(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := postJSON(t, r, "/avatars", map[string]any{
		"action": "create",
		"avatar": map[string]any{
			"name":               "Luna",
			"traits":             []string{"calm"},
			"emotionalDepth":     9,
			"communicationStyle": "expressive",
			"memoryEnabled":      true,
		},
	})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Success bool               `json:"success"`
		Avatar  avatarmodel.Avatar `json:"avatar"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Success || created.Avatar.ID == "" {
		t.Fatalf("expected generated id, got %+v", created)
	}
	if created.Avatar.CreatedAt.IsZero() || created.Avatar.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/avatars?id="+created.Avatar.ID, nil)
	getResp := httptest.NewRecorder()
	r.ServeHTTP(getResp, req)

	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}

	var fetched struct {
		Avatar   avatarmodel.Avatar `json:"avatar"`
		Memories []memory.Memory    `json:"memories"`
	}
	if err := json.Unmarshal(getResp.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.Avatar.Name != "Luna" {
		t.Fatalf("unexpected avatar: %+v", fetched.Avatar)
	}
	if len(fetched.Memories) != 0 {
		t.Fatalf("expected empty memories, got %d", len(fetched.Memories))
	}
}

func TestCreateInvalidAvatarReturnsAllErrors(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := postJSON(t, r, "/avatars", map[string]any{
		"action": "create",
		"avatar": map[string]any{"name": "", "traits": []string{}, "emotionalDepth": 0},
	})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var payload struct {
		Error []string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Error) != 3 {
		t.Fatalf("expected all 3 violations, got %v", payload.Error)
	}
}

func TestGetUnknownAvatar(t *testing.T) {
	r, _ := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/avatars?id=missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListAvatars(t *testing.T) {
	r, store := setupRouter(nil)
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})

	req := httptest.NewRequest(http.MethodGet, "/avatars", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var payload struct {
		Avatars []avatarmodel.Avatar `json:"avatars"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Avatars) != 1 {
		t.Fatalf("expected 1 avatar, got %d", len(payload.Avatars))
	}
}

func TestDeleteAvatarPurgesMemories(t *testing.T) {
	r, store := setupRouter(nil)
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})
	store.AddMemory("a1", memory.New("a1", "c1", memory.CategoryTopic, "fact"))

	resp := postJSON(t, r, "/avatars", map[string]any{"action": "delete", "avatarId": "a1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	if _, ok := store.Get("a1"); ok {
		t.Fatal("avatar not deleted")
	}
	if len(store.Memories("a1")) != 0 {
		t.Fatal("memories not purged")
	}
}

func TestDeleteRequiresAvatarID(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := postJSON(t, r, "/avatars", map[string]any{"action": "delete"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestClearMemoryKeepsAvatar(t *testing.T) {
	r, store := setupRouter(nil)
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})
	store.AddMemory("a1", memory.New("a1", "c1", memory.CategoryTopic, "fact"))

	resp := postJSON(t, r, "/avatars", map[string]any{"action": "clearMemory", "avatarId": "a1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	if _, ok := store.Get("a1"); !ok {
		t.Fatal("avatar should survive clearMemory")
	}
	if len(store.Memories("a1")) != 0 {
		t.Fatal("memories not cleared")
	}
}

func TestUnknownAction(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := postJSON(t, r, "/avatars", map[string]any{"action": "archive"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPhotoSave(t *testing.T) {
	r, store := setupRouter(nil)
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})

	resp := postJSON(t, r, "/avatars/photo", map[string]any{
		"avatarId":         "a1",
		"personalPhotoUrl": "https://photos.example/luna.png",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	got, _ := store.Get("a1")
	if got.PersonalPhotoURL != "https://photos.example/luna.png" {
		t.Fatalf("photo url not saved: %q", got.PersonalPhotoURL)
	}
}

func TestPhotoUnknownAvatar(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := postJSON(t, r, "/avatars/photo", map[string]any{
		"avatarId":         "missing",
		"personalPhotoUrl": "https://photos.example/x.png",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestPhotoGenerate(t *testing.T) {
	r, store := setupRouter(stubImages{enabled: true, url: "https://img.example/1.png"})
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})

	resp := postJSON(t, r, "/avatars/photo", map[string]any{
		"avatarId":    "a1",
		"imagePrompt": "a portrait of Luna",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Success  bool   `json:"success"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.ImageURL != "https://img.example/1.png" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestPhotoGenerateWithoutCredential(t *testing.T) {
	r, store := setupRouter(stubImages{enabled: false})
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})

	resp := postJSON(t, r, "/avatars/photo", map[string]any{
		"avatarId":    "a1",
		"imagePrompt": "a portrait",
	})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestPhotoGenerateFailure(t *testing.T) {
	r, store := setupRouter(stubImages{enabled: true, err: errors.New("upstream down")})
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})

	resp := postJSON(t, r, "/avatars/photo", map[string]any{
		"avatarId":    "a1",
		"imagePrompt": "a portrait",
	})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestPhotoMissingParameters(t *testing.T) {
	r, store := setupRouter(nil)
	store.Save(avatarmodel.Avatar{ID: "a1", Name: "Luna"})

	resp := postJSON(t, r, "/avatars/photo", map[string]any{"avatarId": "a1"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
