package service

import (
	"strings"
	"testing"
)

func TestParseChatTurn_PlainJSON(t *testing.T) {
	parser := AssessmentParser{}

	raw := `{"response": "Thanks for sharing. How long have you felt this way?", "assessment": {"primaryCondition": "Anxiety", "severity": "mild", "confidence": 0.6, "riskLevel": "LOW", "keyIndicators": ["worry"], "recommendedAction": "self-care"}}`

	turn, ok := parser.ParseChatTurn(raw)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if !strings.HasPrefix(turn.Response, "Thanks for sharing") {
		t.Fatalf("unexpected response: %q", turn.Response)
	}
	if turn.Assessment.PrimaryCondition != "Anxiety" {
		t.Fatalf("unexpected condition: %q", turn.Assessment.PrimaryCondition)
	}
	if turn.Assessment.RiskLevel != "low" {
		t.Fatalf("risk level should be normalized to lowercase, got %q", turn.Assessment.RiskLevel)
	}
}

func TestParseChatTurn_MarkdownFences(t *testing.T) {
	parser := AssessmentParser{}

	raw := "```json\n{\"response\": \"ok\", \"assessment\": {\"primaryCondition\": \"Stress\", \"severity\": \"moderate\", \"confidence\": 0.5, \"riskLevel\": \"medium\", \"recommendedAction\": \"professional consultation\"}}\n```"

	turn, ok := parser.ParseChatTurn(raw)
	if !ok {
		t.Fatal("expected successful parse despite fences")
	}
	if turn.Assessment.PrimaryCondition != "Stress" {
		t.Fatalf("unexpected condition: %q", turn.Assessment.PrimaryCondition)
	}
}

func TestParseChatTurn_SurroundingProse(t *testing.T) {
	parser := AssessmentParser{}

	raw := `Here is my evaluation: {"response": "I hear you.", "assessment": {"primaryCondition": "Depression", "severity": "mild", "confidence": 0.4, "riskLevel": "low", "recommendedAction": "self-care"}} Hope that helps.`

	turn, ok := parser.ParseChatTurn(raw)
	if !ok {
		t.Fatal("expected parse of embedded JSON object")
	}
	if turn.Response != "I hear you." {
		t.Fatalf("unexpected response: %q", turn.Response)
	}
}

func TestParseChatTurn_Garbage(t *testing.T) {
	parser := AssessmentParser{}

	for _, raw := range []string{"", "   ", "no json here", `{"response": ""}`, `{"assessment": {}}`} {
		if _, ok := parser.ParseChatTurn(raw); ok {
			t.Fatalf("expected parse failure for %q", raw)
		}
	}
}

func TestFallbackChatTurn(t *testing.T) {
	turn := AssessmentParser{}.FallbackChatTurn()
	if turn.Response == "" || turn.Assessment == nil {
		t.Fatal("fallback must always carry a response and assessment")
	}
	if turn.Assessment.PrimaryCondition != "Assessment Needed" {
		t.Fatalf("unexpected fallback condition: %q", turn.Assessment.PrimaryCondition)
	}
}
