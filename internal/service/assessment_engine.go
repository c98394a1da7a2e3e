package service

import (
	"strings"

	"mindmate/internal/domain"
)

// AssessmentEngine puntúa texto libre contra los indicadores por etapa de una
// pregunta y reduce los puntajes a una etapa primaria con confianza.
type AssessmentEngine struct{}

// DefaultAssessmentEngine permite uso directo sin instanciar.
var DefaultAssessmentEngine = AssessmentEngine{}

// ScoreResponse evalúa una respuesta contra los indicadores de la pregunta.
// Devuelve nil si el questionID no existe en el banco (categoría desconocida,
// no un error). Cada keyword aporta a lo sumo 1 punto: es test de presencia,
// no conteo de repeticiones. Texto vacío produce puntajes en cero.
func (AssessmentEngine) ScoreResponse(text, questionID string, bank []domain.AssessmentQuestion) domain.StageScores {
	var question *domain.AssessmentQuestion
	for i := range bank {
		if bank[i].ID == questionID {
			question = &bank[i]
			break
		}
	}
	if question == nil {
		return nil
	}

	textLower := strings.ToLower(text)

	scores := make(domain.StageScores, 0, len(question.Indicators))
	for _, ind := range question.Indicators {
		score := 0
		for _, keyword := range ind.Keywords {
			if strings.Contains(textLower, keyword) {
				score++
			}
		}
		scores = append(scores, domain.StageScore{Stage: ind.Stage, Score: score})
	}

	return scores
}

// DetermineStage elige la etapa con puntaje estrictamente mayor. Los empates
// quedan en la primera etapa del conjunto ordenado. Todo en cero degrada a
// Normal con confianza 0. La confianza es maxScore sobre la cantidad de
// etapas candidatas evaluadas para esa pregunta, no una constante global.
func (AssessmentEngine) DetermineStage(scores domain.StageScores) domain.StageAssessment {
	maxScore := 0
	primaryStage := domain.StageNormal

	for _, sc := range scores {
		if sc.Score > maxScore {
			maxScore = sc.Score
			primaryStage = sc.Stage
		}
	}

	confidence := 0.0
	if maxScore > 0 && len(scores) > 0 {
		confidence = float64(maxScore) / float64(len(scores))
	}

	return domain.StageAssessment{
		PrimaryStage: primaryStage,
		Score:        maxScore,
		Confidence:   confidence,
	}
}
