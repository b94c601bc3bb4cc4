package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultImageModel      = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultServerAddr      = ":8080"
	DefaultOutputDir       = "output"
	DefaultCacheExpiration = 30 * time.Minute
	DefaultCacheCleanup    = 1 * time.Hour
	DefaultRateInterval    = 5 * time.Second
	DefaultRateBurst       = 2
)

// Config はアプリケーション全体の環境設定を保持する構造体です。
type Config struct {
	GeminiAPIKey      string
	GeminiImageModel  string
	ImagePromptSuffix string
	HTTPTimeout       time.Duration
	ServerAddr        string
	// RateInterval は HTTP 経由の生成リクエストを受け付ける最小間隔です（バースト DefaultRateBurst）。
	RateInterval time.Duration
	// AllowPrivateURLs は参照画像 URL にプライベートネットワークを許可します（開発用）。
	AllowPrivateURLs bool
}

// LoadConfig は .env（あれば）と環境変数から設定を読み込みます。
// API キーは GEMINI_API_KEY を優先し、無ければ API_KEY を使います。未設定なら空文字のままです。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env ファイルが見つからないため環境変数のみを使用します")
	}

	return &Config{
		GeminiAPIKey:      envutil.GetEnv("GEMINI_API_KEY", envutil.GetEnv("API_KEY", "")),
		GeminiImageModel:  envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ImagePromptSuffix: envutil.GetEnv("IMAGE_PROMPT_SUFFIX", ""),
		HTTPTimeout:       parseDuration(envutil.GetEnv("HTTP_TIMEOUT", ""), DefaultHTTPTimeout),
		ServerAddr:        envutil.GetEnv("SERVER_ADDR", DefaultServerAddr),
		RateInterval:      parseDuration(envutil.GetEnv("GENERATE_RATE_INTERVAL", ""), DefaultRateInterval),
		AllowPrivateURLs:  envutil.GetEnv("ALLOW_PRIVATE_URLS", "") == "true",
	}
}

func parseDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("不正な時間指定のためデフォルト値を使用します", "value", v, "default", def)
		return def
	}
	return d
}
