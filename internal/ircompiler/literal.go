package ircompiler

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// literal renders an IR value as a JS literal per §4.2 "Value literal
// emission": strings are JSON-quoted, numbers/booleans print their textual
// form, arrays and records recurse, and nil becomes null.
func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		quoted, err := json.Marshal(val)
		if err != nil {
			return "null"
		}
		return string(quoted)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = literal(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			key, _ := json.Marshal(k)
			parts[i] = fmt.Sprintf("%s: %s", key, literal(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// camelCase converts a kebab/snake-ish CSS property name (as it would
// appear in a styles map, e.g. "background-color") into the camelCase form
// JS's CSSStyleDeclaration expects ("backgroundColor").
func camelCase(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) == 0 {
		return key
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}
