package application

import (
	"regexp"
	"strings"
)

// finalChannelMarker matches the channel header some models echo before their answer.
var finalChannelMarker = regexp.MustCompile(`^<\|start\|>assistant<\|channel\|>final<\|message\|>\s*`)

const assistantFinal = "assistantfinal"

// Sanitize strips channel markers from raw model output. It repeats until
// the text is stable so that a marker uncovered by one pass is also removed.
func Sanitize(raw string) string {
	cleaned := sanitizeOnce(raw)
	for {
		next := sanitizeOnce(cleaned)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

func sanitizeOnce(content string) string {
	sanitized := finalChannelMarker.ReplaceAllString(content, "")

	if idx := strings.LastIndex(sanitized, assistantFinal); idx >= 0 {
		return strings.TrimSpace(sanitized[idx+len(assistantFinal):])
	}
	return strings.TrimSpace(sanitized)
}
