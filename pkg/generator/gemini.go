package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/character-sheet-kit/pkg/domain"
	"github.com/shouni/character-sheet-kit/pkg/prompts"
)

// CharacterSheetGenerator はキャラクター記述から1枚のキャラクターシートを生成します。
// 状態を持たないため並行に呼び出せます。
type CharacterSheetGenerator struct {
	cfg      Config
	aiClient ContentGenerator
	encoder  AttachmentEncoder
	prompts  prompts.PromptBuilder
}

// NewCharacterSheetGenerator は依存関係を注入して初期化します。
// promptBuilder が nil の場合はスタイル指定なしのビルダーを使います。
func NewCharacterSheetGenerator(
	cfg Config,
	aiClient ContentGenerator,
	encoder AttachmentEncoder,
	promptBuilder prompts.PromptBuilder,
) (*CharacterSheetGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if encoder == nil {
		return nil, fmt.Errorf("encoder is required")
	}
	if promptBuilder == nil {
		promptBuilder = prompts.NewCharacterSheetBuilder("")
	}

	return &CharacterSheetGenerator{
		cfg:      cfg.withDefaults(),
		aiClient: aiClient,
		encoder:  encoder,
		prompts:  promptBuilder,
	}, nil
}

// Generate はプロンプト構築、参照画像のエンコード、1回の API 呼び出し、
// レスポンス解析を順に行います。リトライやキャッシュはしません。
func (g *CharacterSheetGenerator) Generate(ctx context.Context, desc domain.CharacterDescription) (*domain.GenerationResult, error) {
	if g.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "リクエストを構築中", "state", "building", "has_image", desc.HasImage())
	prompt := g.prompts.Build(desc)
	parts, err := g.buildParts(ctx, desc, prompt)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Geminiにキャラクターシート生成をリクエストします",
		"state", "sent", "model", g.cfg.Model, "parts", len(parts),
		"aspect_ratio", g.cfg.AspectRatio, "image_size", g.cfg.ImageSize)

	opts := ImageOptions{AspectRatio: g.cfg.AspectRatio, ImageSize: g.cfg.ImageSize}
	resp, err := g.aiClient.GenerateContent(ctx, g.cfg.Model, parts, opts)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini生成エラー", "state", "failed", "error", err)
		return nil, err
	}

	out, err := parseToResponse(resp)
	if err != nil {
		slog.WarnContext(ctx, "レスポンスに画像が含まれていません", "state", "failed", "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "キャラクターシートを受信しました", "state", "success", "bytes", len(out.Data), "mime_type", out.MimeType)
	return domain.NewGenerationResult(out.Data, out.MimeType, prompt.String()), nil
}
