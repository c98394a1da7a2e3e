package llm

import "context"

// MockClient permite tests sin llamar a un LLM real. Guarda el último prompt
// recibido para poder inspeccionarlo.
type MockClient struct {
	Response   string
	Embedding  []float32
	Err        error
	LastPrompt string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	return m.Response, m.Err
}

func (m *MockClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return m.Embedding, m.Err
}
