package service

import (
	"reflect"
	"testing"

	"mindmate/internal/domain"
)

func TestScoreResponse_MoodQuestion(t *testing.T) {
	engine := AssessmentEngine{}

	scores := engine.ScoreResponse("I feel hopeless and worried", "mood", assessmentQuestions)
	if scores == nil {
		t.Fatal("expected scores for known question")
	}
	if len(scores) != 4 {
		t.Fatalf("expected all 4 stages present, got %d", len(scores))
	}

	want := map[string]int{
		domain.StageDepression: 1, // "hopeless"
		domain.StageAnxiety:    1, // "worried"
		domain.StageBipolar:    0,
		domain.StageNormal:     0,
	}
	for stage, wantScore := range want {
		got, ok := scores.Get(stage)
		if !ok {
			t.Fatalf("stage %q missing from scores", stage)
		}
		if got != wantScore {
			t.Fatalf("stage %q: expected %d, got %d", stage, wantScore, got)
		}
	}
}

func TestScoreResponse_CaseInsensitiveAndPresenceOnly(t *testing.T) {
	engine := AssessmentEngine{}

	// "SAD" en mayúsculas y repetido: cuenta una sola vez.
	scores := engine.ScoreResponse("SAD sad so sad", "mood", assessmentQuestions)
	got, _ := scores.Get(domain.StageDepression)
	if got != 1 {
		t.Fatalf("keyword must count at most once, got %d", got)
	}
}

func TestScoreResponse_UnknownQuestion(t *testing.T) {
	engine := AssessmentEngine{}
	if scores := engine.ScoreResponse("anything", "appetite", assessmentQuestions); scores != nil {
		t.Fatalf("expected nil for unknown question id, got %+v", scores)
	}
}

func TestScoreResponse_EmptyText(t *testing.T) {
	engine := AssessmentEngine{}

	scores := engine.ScoreResponse("", "sleep", assessmentQuestions)
	if scores == nil {
		t.Fatal("empty text should still produce a zeroed score set")
	}
	for _, sc := range scores {
		if sc.Score != 0 {
			t.Fatalf("stage %q: expected 0 for empty text, got %d", sc.Stage, sc.Score)
		}
	}
}

func TestScoreResponse_Idempotent(t *testing.T) {
	engine := AssessmentEngine{}

	first := engine.ScoreResponse("restless nights, worried all day", "sleep", assessmentQuestions)
	second := engine.ScoreResponse("restless nights, worried all day", "sleep", assessmentQuestions)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %+v vs %+v", first, second)
	}
}

func TestDetermineStage_TieGoesToFirstInserted(t *testing.T) {
	engine := AssessmentEngine{}

	scores := domain.StageScores{
		{Stage: domain.StageDepression, Score: 2},
		{Stage: domain.StageAnxiety, Score: 2},
		{Stage: domain.StageNormal, Score: 0},
	}

	got := engine.DetermineStage(scores)
	if got.PrimaryStage != domain.StageDepression {
		t.Fatalf("tie should resolve to first-inserted stage, got %q", got.PrimaryStage)
	}
	if got.Score != 2 {
		t.Fatalf("expected score 2, got %d", got.Score)
	}
	if got.Confidence != 2.0/3.0 {
		t.Fatalf("expected confidence 2/3, got %v", got.Confidence)
	}
}

func TestDetermineStage_AllZeroDefaultsToNormal(t *testing.T) {
	engine := AssessmentEngine{}

	got := engine.DetermineStage(domain.StageScores{
		{Stage: domain.StageDepression, Score: 0},
		{Stage: domain.StageAnxiety, Score: 0},
	})
	if got.PrimaryStage != domain.StageNormal {
		t.Fatalf("expected Normal baseline, got %q", got.PrimaryStage)
	}
	if got.Confidence != 0 || got.Score != 0 {
		t.Fatalf("expected zero score and confidence, got %+v", got)
	}
}

func TestDetermineStage_EmptyScores(t *testing.T) {
	engine := AssessmentEngine{}

	got := engine.DetermineStage(nil)
	if got.PrimaryStage != domain.StageNormal || got.Confidence != 0 {
		t.Fatalf("expected Normal with zero confidence, got %+v", got)
	}
}

func TestStageScores_MergePreservesOrder(t *testing.T) {
	a := domain.StageScores{
		{Stage: domain.StageDepression, Score: 1},
		{Stage: domain.StageAnxiety, Score: 0},
	}
	b := domain.StageScores{
		{Stage: domain.StageAnxiety, Score: 2},
		{Stage: domain.StageStress, Score: 1},
	}

	merged := a.Merge(b)
	wantOrder := []string{domain.StageDepression, domain.StageAnxiety, domain.StageStress}
	if len(merged) != len(wantOrder) {
		t.Fatalf("expected %d stages, got %d", len(wantOrder), len(merged))
	}
	for i, stage := range wantOrder {
		if merged[i].Stage != stage {
			t.Fatalf("position %d: expected %q, got %q", i, stage, merged[i].Stage)
		}
	}
	if got, _ := merged.Get(domain.StageAnxiety); got != 2 {
		t.Fatalf("expected anxiety 2 after merge, got %d", got)
	}
}
