package avatar

import (
	"sync"

	"github.com/lunafall/aura/backend/internal/model/memory"
)

// Store exposes avatar and memory persistence for handlers and services.
// Implementations must keep per-key upsert, append, and delete atomic; no
// multi-key transactions are needed since every operation touches exactly
// one avatar's entry and its memory list.
type Store interface {
	Save(a Avatar)
	Get(id string) (Avatar, bool)
	List() []Avatar
	Delete(id string)
	AddMemory(avatarID string, m memory.Memory)
	Memories(avatarID string) []memory.Memory
	ClearMemory(avatarID string)
}

// MemoryStore implements Store with process-local maps. State lives exactly
// as long as the process; production deployments can swap in a durable
// implementation behind the same interface.
type MemoryStore struct {
	mu       sync.RWMutex
	avatars  map[string]Avatar
	memories map[string][]memory.Memory
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied avatars.
func NewMemoryStore(seed []Avatar) *MemoryStore {
	s := &MemoryStore{
		avatars:  make(map[string]Avatar, len(seed)),
		memories: make(map[string][]memory.Memory),
	}
	for _, a := range seed {
		s.avatars[a.ID] = a
	}
	return s
}

// Save inserts or overwrites the avatar by ID.
func (s *MemoryStore) Save(a Avatar) {
	s.mu.Lock()
	s.avatars[a.ID] = a
	s.mu.Unlock()
}

// Get looks up an avatar by identifier.
func (s *MemoryStore) Get(id string) (Avatar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.avatars[id]
	return a, ok
}

// List returns all stored avatars in unspecified order.
func (s *MemoryStore) List() []Avatar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Avatar, 0, len(s.avatars))
	for _, a := range s.avatars {
		out = append(out, a)
	}
	return out
}

// Delete removes the avatar and purges its memories. Absent IDs are a no-op.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.avatars, id)
	delete(s.memories, id)
	s.mu.Unlock()
}

// AddMemory appends a memory to the avatar's ordered list.
func (s *MemoryStore) AddMemory(avatarID string, m memory.Memory) {
	s.mu.Lock()
	s.memories[avatarID] = append(s.memories[avatarID], m)
	s.mu.Unlock()
}

// Memories returns the full ordered memory list, empty if none.
func (s *MemoryStore) Memories(avatarID string) []memory.Memory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.memories[avatarID]
	out := make([]memory.Memory, len(stored))
	copy(out, stored)
	return out
}

// ClearMemory removes all memories for the avatar without deleting it.
func (s *MemoryStore) ClearMemory(avatarID string) {
	s.mu.Lock()
	delete(s.memories, avatarID)
	s.mu.Unlock()
}
