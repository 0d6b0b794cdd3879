package generate

import "fmt"

// Providers often wrap their JSON payload in prose or markdown fences.
// FirstObject and FirstArray cut out the first balanced top-level
// object or array so the caller can decode just that.

// FirstObject returns the first balanced {...} substring of text.
func FirstObject(text string) (string, error) {
	return firstBalanced(text, '{', '}')
}

// FirstArray returns the first balanced [...] substring of text.
func FirstArray(text string) (string, error) {
	return firstBalanced(text, '[', ']')
}

func firstBalanced(text string, open, close byte) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if start >= 0 && inString {
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
			if start >= 0 {
				inString = true
			}
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case close:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	if start < 0 {
		return "", fmt.Errorf("no %c...%c found", open, close)
	}
	return "", fmt.Errorf("unbalanced %c...%c", open, close)
}
