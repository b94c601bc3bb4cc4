package generator

import (
	"context"

	"github.com/shouni/character-sheet-kit/pkg/domain"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	calls        int
	generateFunc func(model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return imageResponse([]byte("fake")), nil
}

type mockEncoder struct {
	calls int
	out   *domain.EncodedAttachment
	err   error
}

func (m *mockEncoder) Encode(ctx context.Context, src *domain.ImageSource) (*domain.EncodedAttachment, error) {
	m.calls++
	return m.out, m.err
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}}},
			},
		}},
	}
}
