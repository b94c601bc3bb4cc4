package domain

import (
	"errors"
	"strings"
)

// 空欄のときにプロンプトへ差し込むフォールバック値です。
const (
	DefaultName        = "Unnamed"
	DefaultArchetype   = "Unknown"
	DefaultExpressions = "Neutral, Angry, Happy"
	DefaultSecretItem  = "None"
)

// ErrAppearanceOrImageRequired は外見の記述も参照画像も無い場合に返されます。
var ErrAppearanceOrImageRequired = errors.New("appearance description or reference image is required")

// ImageSource はユーザーが指定した参照画像です。
// Content が設定されていれば Location より優先されます。
type ImageSource struct {
	Name     string // 元のファイル名（MIME 推定にも利用）
	MIMEType string // 空なら拡張子・内容から推定
	Location string // ローカルパス、http(s):// URL、または gs:// オブジェクト
	Content  []byte // アップロード済みのバイト列
}

// CharacterDescription はキャラクターシート生成の入力です。
// リクエストごとに生成され、ビルダーへ渡した後は変更しません。
type CharacterDescription struct {
	Name        string       `json:"name"`
	Archetype   string       `json:"archetype"`
	Appearance  string       `json:"appearance"`
	Clothing    string       `json:"clothing"`
	Accessories string       `json:"accessories"`
	Expressions string       `json:"expressions"`
	SecretItem  string       `json:"secretItem"`
	Image       *ImageSource `json:"-"`
}

// HasImage は参照画像が添付されているかを返します。
func (d CharacterDescription) HasImage() bool {
	return d.Image != nil
}

// Validate はリクエスト開始前の存在チェックです。
// 外見の記述か参照画像のどちらかが必須です。
func (d CharacterDescription) Validate() error {
	if strings.TrimSpace(d.Appearance) == "" && !d.HasImage() {
		return ErrAppearanceOrImageRequired
	}
	return nil
}

// NameOrDefault は名前を返します。空なら DefaultName です。
func (d CharacterDescription) NameOrDefault() string { return orDefault(d.Name, DefaultName) }

func (d CharacterDescription) ArchetypeOrDefault() string {
	return orDefault(d.Archetype, DefaultArchetype)
}

func (d CharacterDescription) ExpressionsOrDefault() string {
	return orDefault(d.Expressions, DefaultExpressions)
}

func (d CharacterDescription) SecretItemOrDefault() string {
	return orDefault(d.SecretItem, DefaultSecretItem)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
