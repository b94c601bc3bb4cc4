package generator

import "errors"

var (
	// ErrMissingCredential は API キー未設定時に、通信前に返されます。
	ErrMissingCredential = errors.New("API key is missing: set the GEMINI_API_KEY environment variable")
	// ErrNoImageData は通信は成功したが画像パーツが含まれていなかった場合のエラーです。
	ErrNoImageData = errors.New("no image data returned from Gemini")
)
