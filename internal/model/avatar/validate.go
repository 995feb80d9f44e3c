package avatar

import "strings"

// Validate checks the structural invariants enforced at create/update time.
// All violations are collected in order rather than failing on the first.
func Validate(a Avatar) (bool, []string) {
	var errs []string

	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "avatar name is required")
	}
	if a.EmotionalDepth < 1 || a.EmotionalDepth > 10 {
		errs = append(errs, "emotional depth must be between 1 and 10")
	}
	if len(a.Traits) == 0 {
		errs = append(errs, "at least one trait is required")
	}

	return len(errs) == 0, errs
}
