package ai_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/model/memory"
	"github.com/lunafall/aura/backend/internal/service/ai"
)

func testAvatar() avatar.Avatar {
	return avatar.Avatar{
		ID:                 "luna",
		Name:               "Luna",
		Personality:        "Enigmatic and philosophical.",
		Traits:             []string{"mysterious", "calm"},
		CommunicationStyle: avatar.StyleExpressive,
		EmotionalDepth:     9,
		MemoryEnabled:      true,
	}
}

func memoriesOf(contents ...string) []memory.Memory {
	out := make([]memory.Memory, 0, len(contents))
	for _, c := range contents {
		out = append(out, memory.New("luna", "c1", memory.CategoryTopic, c))
	}
	return out
}

func TestBuildSystemPromptIncludesCoreFields(t *testing.T) {
	prompt := ai.BuildSystemPrompt(testAvatar(), nil)

	for _, want := range []string{
		"You are Luna",
		"Enigmatic and philosophical.",
		"mysterious, calm",
		"expressive",
		"9/10",
		"Never mention being an AI",
		"2-6 sentences",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildSystemPromptBackstoryConditional(t *testing.T) {
	a := testAvatar()
	if strings.Contains(ai.BuildSystemPrompt(a, nil), "Backstory:") {
		t.Fatal("backstory clause present without a backstory")
	}

	a.Backstory = "A nocturnal dreamer."
	if !strings.Contains(ai.BuildSystemPrompt(a, nil), "- Backstory: A nocturnal dreamer.") {
		t.Fatal("backstory clause missing")
	}
}

func TestBuildSystemPromptMemoryDisabled(t *testing.T) {
	a := testAvatar()
	a.MemoryEnabled = false

	prompt := ai.BuildSystemPrompt(a, memoriesOf("likes tea", "plays chess"))
	if strings.Contains(prompt, "Key memories:") {
		t.Fatal("memory clause present although memory is disabled")
	}
}

func TestBuildSystemPromptNoMemories(t *testing.T) {
	if strings.Contains(ai.BuildSystemPrompt(testAvatar(), nil), "Key memories:") {
		t.Fatal("memory clause present without memories")
	}
}

func TestBuildSystemPromptLastFiveInOrder(t *testing.T) {
	contents := make([]string, 7)
	for i := range contents {
		contents[i] = fmt.Sprintf("fact-%d", i)
	}

	prompt := ai.BuildSystemPrompt(testAvatar(), memoriesOf(contents...))

	if strings.Contains(prompt, "fact-0") || strings.Contains(prompt, "fact-1") {
		t.Fatalf("older memories leaked into prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Key memories: fact-2; fact-3; fact-4; fact-5; fact-6") {
		t.Fatalf("expected last five memories in original order:\n%s", prompt)
	}
}

func TestBuildSystemPromptDeterministic(t *testing.T) {
	a := testAvatar()
	mems := memoriesOf("likes tea")

	if ai.BuildSystemPrompt(a, mems) != ai.BuildSystemPrompt(a, mems) {
		t.Fatal("prompt not deterministic for identical inputs")
	}
}

func TestBuildPortraitPromptDefaults(t *testing.T) {
	a := testAvatar()
	prompt := ai.BuildPortraitPrompt(a)

	if !strings.Contains(prompt, "portrait image of Luna") {
		t.Fatalf("portrait prompt missing subject:\n%s", prompt)
	}
	if !strings.Contains(prompt, "mystical digital entity") {
		t.Fatal("expected default appearance descriptor")
	}

	a.Appearance = &avatar.Appearance{Description: "Ethereal presence"}
	if !strings.Contains(ai.BuildPortraitPrompt(a), "Ethereal presence") {
		t.Fatal("expected supplied appearance descriptor")
	}
}
