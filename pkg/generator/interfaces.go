package generator

import (
	"context"

	"github.com/shouni/character-sheet-kit/pkg/domain"
	"google.golang.org/genai"
)

// ImageGenerator はビジネスロジック層が利用する統合窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, desc domain.CharacterDescription) (*domain.GenerationResult, error)
}

// ContentGenerator は Gemini への1回の生成リクエストを抽象化します。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error)
}

// AttachmentEncoder は参照画像を送信可能な形式に変換します。
type AttachmentEncoder interface {
	Encode(ctx context.Context, src *domain.ImageSource) (*domain.EncodedAttachment, error)
}
