package builder

import (
	"fmt"

	"github.com/shouni/character-sheet-kit/internal/config"
	"github.com/shouni/character-sheet-kit/pkg/attachment"
	"github.com/shouni/character-sheet-kit/pkg/generator"
	"github.com/shouni/character-sheet-kit/pkg/prompts"
	"github.com/shouni/character-sheet-kit/pkg/session"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/httpkit"
	"golang.org/x/time/rate"
)

// BuildAppContext は設定から生成器とセッションを組み立てます。
// ここではネットワーク接続を行いません。
func BuildAppContext(cfg *config.Config) (*AppContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	storage := NewRemoteStorage()
	encoder := InitializeEncoder(cfg, storage)

	gen, err := InitializeImageGenerator(cfg, encoder)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(gen)
	if err != nil {
		return nil, fmt.Errorf("セッションの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Generator: gen,
		Session:   sess,
		Storage:   storage,
		Limiter:   rate.NewLimiter(rate.Every(cfg.RateInterval), config.DefaultRateBurst),
	}, nil
}

// InitializeEncoder は参照画像のエンコーダーを初期化します。
func InitializeEncoder(cfg *config.Config, reader attachment.InputReader) *attachment.Encoder {
	imgCache := cache.New(config.DefaultCacheExpiration, config.DefaultCacheCleanup)
	return attachment.NewEncoder(NewHTTPClient(cfg), reader, imgCache, cache.DefaultExpiration)
}

// NewHTTPClient は参照画像の取得に使う httpkit クライアントを生成します。
// AllowPrivateURLs が false の場合、接続直前にプライベート IP 宛てをブロックします。
func NewHTTPClient(cfg *config.Config) *httpkit.Client {
	return httpkit.New(cfg.HTTPTimeout, httpkit.WithSkipNetworkValidation(cfg.AllowPrivateURLs))
}

// InitializeImageGenerator は CharacterSheetGenerator を初期化します。
// API キーが空でも生成器は作られ、Generate 時に ErrMissingCredential を返します。
func InitializeImageGenerator(cfg *config.Config, encoder generator.AttachmentEncoder) (*generator.CharacterSheetGenerator, error) {
	aiClient := generator.NewGenAIClient(cfg.GeminiAPIKey)

	gen, err := generator.NewCharacterSheetGenerator(
		generator.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiImageModel,
		},
		aiClient,
		encoder,
		prompts.NewCharacterSheetBuilder(cfg.ImagePromptSuffix),
	)
	if err != nil {
		return nil, fmt.Errorf("CharacterSheetGeneratorの初期化に失敗しました: %w", err)
	}
	return gen, nil
}
