package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const (
	// ResultMIMEType はデータURIに付与する固定の MIME タイプです。
	ResultMIMEType = "image/png"
	dataURIPrefix  = "data:" + ResultMIMEType + ";base64,"
)

// EncodedAttachment は送信用に base64 化された参照画像です。
type EncodedAttachment struct {
	Data     string // base64 ペイロード（data: プレフィックスなし）
	MIMEType string
}

// Bytes はペイロードを元のバイト列に戻します。
func (a EncodedAttachment) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Data)
}

// GenerationResult は1回のリクエストで生成された1枚の画像です。
type GenerationResult struct {
	DataURI  string // data:image/png;base64,<payload>
	Data     []byte
	MimeType string // サービスが申告した MIME タイプ
	Prompt   string // 生成に使ったプロンプト
}

// NewGenerationResult は画像バイト列から表示用のデータURIを組み立てます。
func NewGenerationResult(data []byte, mimeType, prompt string) *GenerationResult {
	return &GenerationResult{
		DataURI:  dataURIPrefix + base64.StdEncoding.EncodeToString(data),
		Data:     data,
		MimeType: mimeType,
		Prompt:   prompt,
	}
}

// Base64Payload はデータURIからプレフィックスを除いた部分を返します。
func (r *GenerationResult) Base64Payload() string {
	return strings.TrimPrefix(r.DataURI, dataURIPrefix)
}

// SuggestedFileName はダウンロード時のファイル名 character_sheet_<unix millis>.png を返します。
func (r *GenerationResult) SuggestedFileName(t time.Time) string {
	return fmt.Sprintf("character_sheet_%d.png", t.UnixMilli())
}
