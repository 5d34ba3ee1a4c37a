package pipeline

import "strings"

// Clean strips the seed the generation backend may echo as a literal prefix,
// then trims and collapses whitespace runs to single spaces. Raw text that
// does not start with the exact seed passes through with whitespace
// normalization only. Punctuation is never altered.
func Clean(raw, seed string) string {
	text := raw
	if seed != "" && strings.HasPrefix(text, seed) {
		text = text[len(seed):]
	}
	return strings.Join(strings.Fields(text), " ")
}
