package bind

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag key read by Struct.
const TagKey = "namedvar"

// Tag is the parsed form of a namedvar struct tag.
type Tag struct {
	Name        string
	Description string
	ReadOnly    bool
}

// ParseTag parses a namedvar struct tag.
// Example: `namedvar:"name=retries,desc='Retry count, per request',readonly"`
//
// A tag of "-" yields nil.
func ParseTag(tag string) (*Tag, error) {
	if tag == "-" {
		return nil, nil
	}

	result := &Tag{}
	for _, part := range splitTagParts(tag) {
		key, value := splitKeyValue(part)
		switch key {
		case "name":
			result.Name = unquoteValue(value)
		case "desc":
			result.Description = unquoteValue(value)
		case "readonly":
			result.ReadOnly = true
		default:
			return nil, fmt.Errorf("unknown tag key %q", key)
		}
	}

	return result, nil
}

// splitTagParts splits tag on commas outside of quotes.
func splitTagParts(tag string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	escaped := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
	}

	for _, r := range tag {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && r == ',':
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return parts
}

func splitKeyValue(part string) (string, string) {
	key, value, _ := strings.Cut(part, "=")
	return strings.TrimSpace(key), strings.TrimSpace(value)
}

var unescaper = strings.NewReplacer(`\'`, "'", `\"`, `"`, `\\`, `\`)

// unquoteValue removes surrounding quotes and unescapes quotes inside them.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return unescaper.Replace(value[1 : len(value)-1])
		}
	}
	return value
}
