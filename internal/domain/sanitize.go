package domain

import "strings"

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
	fence      = "```"
)

// SanitizeCompletion removes the outer wrapping that models commonly add
// around a JSON answer: surrounding whitespace, leading <think>...</think>
// reasoning blocks and a Markdown code fence enclosing the whole text.
// Nothing inside the wrapped value is touched.
func SanitizeCompletion(raw string) string {
	cleaned := strings.TrimSpace(raw)

	for strings.HasPrefix(cleaned, thinkOpen) {
		end := strings.Index(cleaned, thinkClose)
		if end == -1 {
			break
		}
		cleaned = strings.TrimSpace(cleaned[end+len(thinkClose):])
	}

	if len(cleaned) >= 2*len(fence) && strings.HasPrefix(cleaned, fence) && strings.HasSuffix(cleaned, fence) {
		body := cleaned[len(fence) : len(cleaned)-len(fence)]
		// skip the language tag line, e.g. ```json
		nl := strings.Index(body, "\n")
		if nl == -1 {
			return cleaned
		}
		cleaned = strings.TrimSpace(body[nl+1:])
	}
	return cleaned
}
