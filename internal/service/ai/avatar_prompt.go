package ai

import (
	"fmt"
	"strings"

	"github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/model/memory"
)

// promptMemoryWindow bounds how many recent memories surface into a prompt.
const promptMemoryWindow = 5

// BuildSystemPrompt renders the system instruction that keeps the model in
// character. Deterministic for identical inputs; memories only appear when
// the avatar opted in and at most the last five are included, oldest first.
func BuildSystemPrompt(a avatar.Avatar, memories []memory.Memory) string {
	var memoryContext string
	if a.MemoryEnabled && len(memories) > 0 {
		recent := memories
		if len(recent) > promptMemoryWindow {
			recent = recent[len(recent)-promptMemoryWindow:]
		}
		contents := make([]string, 0, len(recent))
		for _, m := range recent {
			contents = append(contents, m.Content)
		}
		memoryContext = fmt.Sprintf("\n\nKey memories: %s", strings.Join(contents, "; "))
	}

	var backstory string
	if a.Backstory != "" {
		backstory = fmt.Sprintf("\n- Backstory: %s", a.Backstory)
	}

	return fmt.Sprintf(`You are %s, a digital character with these qualities:
- Personality: %s
- Core traits: %s
- You speak in a %s way
- Emotional depth and presence: %d/10%s

Stay in character always. Speak naturally with presence and emotion. Be curious and show you care about what the user shares. Never mention being an AI or a language model. Keep responses conversational (2-6 sentences unless they ask for more).%s

Respond as %s. Be authentic and emotionally grounded.`,
		a.Name,
		a.Personality,
		strings.Join(a.Traits, ", "),
		a.CommunicationStyle,
		a.EmotionalDepth,
		backstory,
		memoryContext,
		a.Name,
	)
}

// BuildPortraitPrompt describes the avatar for the image-generation call.
func BuildPortraitPrompt(a avatar.Avatar) string {
	appearance := "mystical digital entity"
	if a.Appearance != nil && a.Appearance.Description != "" {
		appearance = a.Appearance.Description
	}

	var backstory string
	if a.Backstory != "" {
		backstory = fmt.Sprintf("Background: %s\n", a.Backstory)
	}

	return fmt.Sprintf(`Create a portrait image of %s, a character with these qualities:
Personality: %s
Traits: %s
Appearance: %s
%s
Generate a realistic, dignified portrait that captures their essence. Make it visually distinct and suitable as a profile picture.`,
		a.Name,
		a.Personality,
		strings.Join(a.Traits, ", "),
		appearance,
		backstory,
	)
}
