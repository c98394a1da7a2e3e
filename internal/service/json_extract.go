package service

import "strings"

// extractFirstJSONObject devuelve el primer objeto JSON balanceado dentro de
// raw, o cadena vacía si no hay ninguno completo. Ignora llaves dentro de
// strings y secuencias escapadas.
func extractFirstJSONObject(raw string) string {
	open := strings.IndexByte(raw, '{')
	if open == -1 {
		return ""
	}

	var (
		inString bool
		escaped  bool
		depth    int
	)

	for i := open; i < len(raw); i++ {
		c := raw[i]

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
				return raw[open : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}
