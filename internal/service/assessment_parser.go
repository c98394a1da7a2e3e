package service

import (
	"encoding/json"
	"strings"

	"mindmate/internal/domain"
)

// ChatTurn es la salida parseada de un turno del LLM clínico.
type ChatTurn struct {
	Response   string
	Assessment *domain.ChatAssessment
}

// AssessmentParser centraliza la limpieza y parseo de la respuesta del LLM.
type AssessmentParser struct{}

// DefaultAssessmentParser permite uso directo sin instanciar.
var DefaultAssessmentParser = AssessmentParser{}

type rawChatTurn struct {
	Response   string `json:"response"`
	Assessment *struct {
		PrimaryCondition    string   `json:"primaryCondition"`
		SecondaryConditions []string `json:"secondaryConditions"`
		Severity            string   `json:"severity"`
		Confidence          float64  `json:"confidence"`
		RiskLevel           string   `json:"riskLevel"`
		KeyIndicators       []string `json:"keyIndicators"`
		RecommendedAction   string   `json:"recommendedAction"`
	} `json:"assessment"`
}

// ParseChatTurn intenta extraer {response, assessment} de la salida cruda.
// El modelo suele envolver el JSON en fences de markdown o agregar texto
// alrededor; se limpia y se extrae el primer objeto balanceado antes de
// rendirse. Devuelve false si no hay nada usable.
func (AssessmentParser) ParseChatTurn(raw string) (ChatTurn, bool) {
	cleaned := cleanLLMJSONResponse(raw)

	candidates := []string{extractFirstJSONObject(cleaned)}
	if candidates[0] == "" {
		candidates[0] = extractFirstJSONObject(raw)
	}
	candidates = append(candidates, cleaned, raw)

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		var tmp rawChatTurn
		if err := json.Unmarshal([]byte(candidate), &tmp); err != nil {
			continue
		}
		response := strings.TrimSpace(tmp.Response)
		if response == "" || tmp.Assessment == nil {
			continue
		}
		return ChatTurn{
			Response: response,
			Assessment: &domain.ChatAssessment{
				PrimaryCondition:    strings.TrimSpace(tmp.Assessment.PrimaryCondition),
				SecondaryConditions: tmp.Assessment.SecondaryConditions,
				Severity:            tmp.Assessment.Severity,
				Confidence:          tmp.Assessment.Confidence,
				RiskLevel:           strings.ToLower(strings.TrimSpace(tmp.Assessment.RiskLevel)),
				KeyIndicators:       tmp.Assessment.KeyIndicators,
				RecommendedAction:   tmp.Assessment.RecommendedAction,
			},
		}, true
	}

	return ChatTurn{}, false
}

// FallbackChatTurn es la respuesta fija cuando el modelo no devuelve JSON
// usable: se pide elaborar en lugar de propagar el error al usuario.
func (AssessmentParser) FallbackChatTurn() ChatTurn {
	return ChatTurn{
		Response: "I apologize for the technical difficulty. To better assist you, could you elaborate on your current thoughts and feelings? This helps me provide more accurate support.",
		Assessment: &domain.ChatAssessment{
			PrimaryCondition:  "Assessment Needed",
			Severity:          "undetermined",
			Confidence:        0.3,
			RiskLevel:         "pending evaluation",
			KeyIndicators:     []string{"technical error - assessment interrupted"},
			RecommendedAction: "restart conversation if issues persist",
		},
	}
}
