package generator

const (
	// DefaultModel は高品質な画像生成用の Gemini モデルです。
	DefaultModel = "gemini-3-pro-image-preview"
	// SheetAspectRatio はキャラクターシートのパノラマ用アスペクト比です。
	SheetAspectRatio = "16:9"
	// ImageSize1K は標準的な解像度の設定（1024px 相当）です。
	ImageSize1K = "1K"
)

// Config は CharacterSheetGenerator の設定です。
type Config struct {
	APIKey      string // 空の場合は ErrMissingCredential
	Model       string
	AspectRatio string
	ImageSize   string
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.AspectRatio == "" {
		c.AspectRatio = SheetAspectRatio
	}
	if c.ImageSize == "" {
		c.ImageSize = ImageSize1K
	}
	return c
}

// ImageOptions は1回の生成リクエストの出力設定です。
type ImageOptions struct {
	AspectRatio string
	ImageSize   string
}

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
}
