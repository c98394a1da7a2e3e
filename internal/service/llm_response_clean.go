package service

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe  = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceCloseRe = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanLLMJSONResponse normaliza la salida cruda del modelo antes de
// parsearla: recorta espacios, el BOM y los fences ```json ... ```.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\ufeff")
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
