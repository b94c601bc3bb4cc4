package generator

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

// ClientOption は GenAIClient の任意設定です。
type ClientOption func(*genai.ClientConfig)

// WithBaseURL は API エンドポイントを差し替えます（プロキシやテスト用）。
func WithBaseURL(baseURL string) ClientOption {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = baseURL
	}
}

// WithHTTPClient は通信に使う *http.Client を指定します。
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *genai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// GenAIClient は genai SDK を ContentGenerator として使うアダプターです。
// SDK クライアントは最初の呼び出し時に一度だけ生成します。
type GenAIClient struct {
	config genai.ClientConfig

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGenAIClient は Gemini API バックエンド向けのクライアントを用意します。
func NewGenAIClient(apiKey string, opts ...ClientOption) *GenAIClient {
	cfg := genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GenAIClient{config: cfg}
}

// GenerateContent はパーツと画像出力設定を付けて generateContent を1回呼び出します。
func (c *GenAIClient) GenerateContent(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error) {
	client, err := c.sdkClient(ctx)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: opts.AspectRatio,
			ImageSize:   opts.ImageSize,
		},
	}
	return client.Models.GenerateContent(ctx, model, contents, config)
}

func (c *GenAIClient) sdkClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		if c.config.APIKey == "" {
			c.initErr = ErrMissingCredential
			return
		}
		client, err := genai.NewClient(ctx, &c.config)
		if err != nil {
			c.initErr = fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
			return
		}
		c.client = client
	})
	return c.client, c.initErr
}
