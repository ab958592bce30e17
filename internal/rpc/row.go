package rpc

import "strings"

// First returns the single row of a result set, normalized. Procedures of
// interest return at most one row; a jsonb payload may arrive as an object
// or a one-element array, and both normalize to the same shape.
func First(rows []Row) Row {
	if len(rows) == 0 {
		return nil
	}
	row := rows[0]
	// Single-column jsonb payloads unwrap to the payload itself.
	if len(row) == 1 {
		for _, v := range row {
			if normalized := normalizeValue(v); normalized != nil {
				return normalized
			}
		}
	}
	return Normalize(map[string]any(row))
}

// Normalize converts a remote row into the public response shape: snake_case
// column names become camelCase keys, nested objects included.
func Normalize(value map[string]any) Row {
	out := make(Row, len(value))
	for k, v := range value {
		out[CamelCase(k)] = normalizeNested(v)
	}
	return out
}

// CamelCase converts a snake_case identifier to camelCase.
func CamelCase(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	wrote := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		if !wrote {
			b.WriteString(part)
			wrote = true
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func normalizeValue(v any) Row {
	switch typed := v.(type) {
	case map[string]any:
		return Normalize(typed)
	case Row:
		return Normalize(map[string]any(typed))
	case []any:
		if len(typed) == 0 {
			return nil
		}
		return normalizeValue(typed[0])
	default:
		return nil
	}
}

func normalizeNested(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return Normalize(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeNested(item)
		}
		return out
	default:
		return v
	}
}
