package gemini

import (
	"regexp"
	"strings"
)

// Model output arrives with markdown bold markers and stray symbols that read
// poorly in Telegram, so answers are reduced to letters, digits and basic
// punctuation. The character classes are Unicode-aware to keep accented
// Portuguese text intact.
var (
	asteriskPattern   = regexp.MustCompile(`\*`)
	disallowedPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s,.!?%€$£-]`)
)

// Sanitize strips markdown asterisks and any character outside the allowed
// set, then trims surrounding whitespace.
func Sanitize(answer string) string {
	answer = asteriskPattern.ReplaceAllString(answer, "")
	answer = disallowedPattern.ReplaceAllString(answer, "")
	return strings.TrimSpace(answer)
}
