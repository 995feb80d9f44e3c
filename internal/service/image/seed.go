package image

// maxSeed is 2^31-1, the largest seed the txt2img endpoint accepts.
const maxSeed = 2147483647

// DeriveSeed folds the prompt's rune codes through a multiply-shift
// accumulator (acc*31 + c on wrapping 32-bit arithmetic) and maps the
// magnitude into [0, 2^31-1). Identical prompts always produce identical
// seeds, which keeps generation requests reproducible.
func DeriveSeed(prompt string) int64 {
	var acc int32
	for _, c := range prompt {
		acc = acc<<5 - acc + int32(c)
	}

	seed := int64(acc)
	if seed < 0 {
		seed = -seed
	}
	return seed % maxSeed
}
