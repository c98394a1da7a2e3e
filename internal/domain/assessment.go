package domain

import "time"

// Etapas de salud mental que el sistema puede asignar.
const (
	StageNormal              = "Normal"
	StageDepression          = "Depression"
	StageSuicidal            = "Suicidal"
	StageAnxiety             = "Anxiety"
	StageStress              = "Stress"
	StageBipolar             = "Bi-Polar"
	StagePersonalityDisorder = "Personality Disorder"
)

// StageIndicator asocia una etapa con sus keywords de detección.
type StageIndicator struct {
	Stage    string   `json:"stage"`
	Keywords []string `json:"keywords"`
}

// AssessmentQuestion es configuración estática: variantes de pregunta e
// indicadores por etapa. El orden de Indicators define el desempate.
type AssessmentQuestion struct {
	ID         string           `json:"id"`
	Prompts    []string         `json:"prompts"`
	Indicators []StageIndicator `json:"indicators"`
}

// StageScore es el puntaje de una etapa para una respuesta concreta.
type StageScore struct {
	Stage string `json:"stage"`
	Score int    `json:"score"`
}

// StageScores es un mapa ordenado etapa->puntaje. Se usa slice y no map
// porque el desempate depende del orden de inserción.
type StageScores []StageScore

// Get devuelve el puntaje de una etapa y si existe en el conjunto.
func (s StageScores) Get(stage string) (int, bool) {
	for _, sc := range s {
		if sc.Stage == stage {
			return sc.Score, true
		}
	}
	return 0, false
}

// Add suma delta a la etapa, creándola al final si no existe.
func (s StageScores) Add(stage string, delta int) StageScores {
	for i := range s {
		if s[i].Stage == stage {
			s[i].Score += delta
			return s
		}
	}
	return append(s, StageScore{Stage: stage, Score: delta})
}

// Merge acumula otro conjunto preservando el orden de primera aparición.
func (s StageScores) Merge(other StageScores) StageScores {
	out := s
	for _, sc := range other {
		out = out.Add(sc.Stage, sc.Score)
	}
	return out
}

// StageAssessment es el resultado reducido de uno o varios StageScores.
type StageAssessment struct {
	PrimaryStage string  `json:"primary_stage"`
	Score        int     `json:"score"`
	Confidence   float64 `json:"confidence"`
}

// ChatAssessment es la evaluación estructurada que devuelve el LLM clínico.
type ChatAssessment struct {
	PrimaryCondition    string   `json:"primary_condition"`
	SecondaryConditions []string `json:"secondary_conditions,omitempty"`
	Severity            string   `json:"severity"`
	Confidence          float64  `json:"confidence"`
	RiskLevel           string   `json:"risk_level"`
	KeyIndicators       []string `json:"key_indicators,omitempty"`
	RecommendedAction   string   `json:"recommended_action"`
}

// AssessmentRecord es una evaluación persistida para el historial del usuario.
type AssessmentRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	SessionID    string    `json:"session_id,omitempty"`
	PrimaryStage string    `json:"primary_stage"`
	Score        int       `json:"score"`
	Confidence   float64   `json:"confidence"`
	Severity     string    `json:"severity,omitempty"`
	RiskLevel    string    `json:"risk_level,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
