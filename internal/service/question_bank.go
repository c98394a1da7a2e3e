package service

import "mindmate/internal/domain"

// assessmentQuestions es el banco estático de evaluación: variantes de
// pregunta e indicadores por etapa. Se define una vez y es de solo lectura;
// el orden de los indicadores fija el desempate del scoring.
var assessmentQuestions = []domain.AssessmentQuestion{
	{
		ID: "mood",
		Prompts: []string{
			"How would you describe your mood lately?",
			"Have you been feeling down or hopeless?",
			"Do you find yourself experiencing extreme mood swings?",
		},
		Indicators: []domain.StageIndicator{
			{Stage: domain.StageDepression, Keywords: []string{"down", "hopeless", "sad", "empty", "worthless"}},
			{Stage: domain.StageAnxiety, Keywords: []string{"worried", "nervous", "anxious", "panic", "fear"}},
			{Stage: domain.StageBipolar, Keywords: []string{"extreme", "swings", "high", "low", "intense"}},
			{Stage: domain.StageNormal, Keywords: []string{"good", "okay", "fine", "alright", "balanced"}},
		},
	},
	{
		ID: "sleep",
		Prompts: []string{
			"How has your sleep been recently?",
			"Do you have trouble falling asleep or staying asleep?",
			"How many hours do you typically sleep?",
		},
		Indicators: []domain.StageIndicator{
			{Stage: domain.StageDepression, Keywords: []string{"oversleep", "cant sleep", "insomnia", "tired"}},
			{Stage: domain.StageAnxiety, Keywords: []string{"restless", "racing thoughts", "wake up", "worried"}},
			{Stage: domain.StageStress, Keywords: []string{"irregular", "disturbed", "less", "difficulty"}},
		},
	},
	{
		ID: "thoughts",
		Prompts: []string{
			"Have you had any thoughts of harming yourself?",
			"Do you often feel overwhelmed by your thoughts?",
			"How do you see your future?",
		},
		Indicators: []domain.StageIndicator{
			{Stage: domain.StageSuicidal, Keywords: []string{"harm", "death", "end", "pain", "hopeless"}},
			{Stage: domain.StageAnxiety, Keywords: []string{"overwhelmed", "racing", "worry", "panic"}},
			{Stage: domain.StagePersonalityDisorder, Keywords: []string{"unstable", "intense", "empty", "confused"}},
		},
	},
}
