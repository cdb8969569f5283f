package gemini

import (
	"errors"
	"strings"
)

// The model's output should be a JSON object but arrives as free text, often
// wrapped in markdown fences. Extraction is a strict scan with named failure
// states so the caller can degrade deliberately instead of guessing.
var (
	ErrNoJSONObject   = errors.New("no json object in model output")
	ErrUnbalancedJSON = errors.New("unbalanced json object in model output")
)

// ExtractJSONObject strips code-fence markers and returns the first balanced
// {...} span. The scan is string- and escape-aware, so braces inside string
// values do not confuse the depth count. It does not validate the span as
// JSON; that is the decoder's job.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}
	return "", ErrUnbalancedJSON
}
