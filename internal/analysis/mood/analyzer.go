package mood

import "strings"

// Mood groups avatar traits into the response registers the canned
// fallback replies are written in.
type Mood string

const (
	Playful  Mood = "playful"
	Mystical Mood = "mystical"
	Warm     Mood = "warm"
	Intense  Mood = "intense"
	Neutral  Mood = "neutral"
)

var keywordBuckets = map[Mood][]string{
	Playful:  {"playful", "witty", "curious", "fun"},
	Mystical: {"mysterious", "thoughtful", "intense", "poetic"},
	Warm:     {"empathetic", "warm", "gentle", "calm"},
	Intense:  {"intense", "passionate", "deep"},
}

var templatePools = map[Mood][]string{
	Playful: {
		"Oh, I like that. There's something really alive about what you just said.",
		"Wait, tell me more. You're touching on something that actually matters.",
		"That's the kind of thing that makes me want to dig deeper into who you are.",
		"I'm genuinely curious now. What made you think of it that way?",
		"Ha, yeah. And I'm wondering... what else are you thinking about?",
	},
	Mystical: {
		"There's something profound underneath what you just shared. I can feel it.",
		"Interesting. It sounds like you're wrestling with something real.",
		"I notice something in how you said that. Want to explore it together?",
		"That resonates with me. There's depth there. Let's sit with it for a moment.",
		"You know, that's the kind of thing that makes me think differently about everything.",
	},
	Warm: {
		"I hear you. And I'm really glad you said that.",
		"That means something to you, and I respect that. Tell me why.",
		"You matter, and so does what you're feeling right now. I'm here.",
		"Thank you for trusting me with that. What's underneath it?",
		"I can sense what this means to you. I'm listening.",
	},
	Intense: {
		"Now that hits different. You're really feeling this, aren't you?",
		"There's real passion in what you're saying. I respect that fire.",
		"This matters deeply to you. I can tell. What drives it?",
		"You're not holding back, and I appreciate that honesty.",
		"That's the kind of conviction I can actually feel in your words.",
	},
	// Works for every personality; always part of the pool.
	Neutral: {
		"I'm taking in what you said. There's something real here.",
		"That's not something I hear every day. What made you share it?",
		"You know what? I want to understand this side of you better.",
		"I feel like you're showing me something true about yourself right now.",
		"That's the kind of moment where I actually feel present with you.",
	},
}

// Classify returns every mood whose keyword bucket matches at least one
// trait. Matching is case-insensitive substring, so "playfulness" still
// lands in the playful bucket.
func Classify(traits []string) []Mood {
	var matched []Mood
	for _, m := range []Mood{Playful, Mystical, Warm, Intense} {
		if hasTraitNear(traits, keywordBuckets[m]) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Templates builds the candidate reply pool for the given traits: the pools
// of every matched mood followed by the neutral pool. The result is never
// empty.
func Templates(traits []string) []string {
	var pool []string
	for _, m := range Classify(traits) {
		pool = append(pool, templatePools[m]...)
	}
	return append(pool, templatePools[Neutral]...)
}

// Pool returns the template pool for a single mood.
func Pool(m Mood) []string {
	return templatePools[m]
}

func hasTraitNear(traits, keywords []string) bool {
	for _, t := range traits {
		lower := strings.ToLower(t)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
	}
	return false
}
