package memory

import "testing"

func TestNewAssignsIdentity(t *testing.T) {
	m := New("a1", "c1", CategoryPreference, "likes tea")

	if m.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if m.AvatarID != "a1" || m.ConversationID != "c1" {
		t.Fatalf("ownership fields not set: %+v", m)
	}
	if m.Category != CategoryPreference || m.Content != "likes tea" {
		t.Fatalf("unexpected payload: %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
	if m.LastReferenced != nil {
		t.Fatal("LastReferenced should start unset")
	}
}

func TestNewIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		m := New("a1", "c1", CategoryTopic, "fact")
		if seen[m.ID] {
			t.Fatalf("duplicate memory ID %s", m.ID)
		}
		seen[m.ID] = true
	}
}
