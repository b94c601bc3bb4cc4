package generator

import (
	"context"
	"fmt"

	"github.com/shouni/character-sheet-kit/pkg/domain"
	"github.com/shouni/character-sheet-kit/pkg/prompts"
	"google.golang.org/genai"
)

// buildParts はプロンプト、(あれば)参照画像、参照指示の順でパーツを並べます。
func (g *CharacterSheetGenerator) buildParts(ctx context.Context, desc domain.CharacterDescription, prompt prompts.Prompt) ([]*genai.Part, error) {
	parts := []*genai.Part{{Text: prompt.Text}}
	if !desc.HasImage() {
		return parts, nil
	}

	encoded, err := g.encoder.Encode(ctx, desc.Image)
	if err != nil {
		return nil, err
	}
	raw, err := encoded.Bytes()
	if err != nil {
		return nil, fmt.Errorf("参照画像のデコードに失敗しました: %w", err)
	}

	parts = append(parts,
		&genai.Part{InlineData: &genai.Blob{MIMEType: encoded.MIMEType, Data: raw}},
		&genai.Part{Text: prompt.Reference},
	)
	return parts, nil
}

// parseToResponse は Gemini のレスポンスから最初の画像パーツを取り出します。
func parseToResponse(resp *genai.GenerateContentResponse) (*ImageOutput, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: response has no candidates", ErrNoImageData)
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]
	if img, ok := firstInlineData(classifyParts(candidate.Content)); ok {
		return &ImageOutput{Data: img.Data, MimeType: img.MIMEType}, nil
	}

	// 安全フィルター等によるブロックの確認
	if reason := candidate.FinishReason; reason != "" &&
		reason != genai.FinishReasonUnspecified && reason != genai.FinishReasonStop {
		return nil, fmt.Errorf("%w (finish reason: %s)", ErrNoImageData, reason)
	}
	return nil, ErrNoImageData
}
