package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/character-sheet-kit/pkg/domain"
)

// PromptBuilder はキャラクター記述からプロンプトを構築する契約です。
type PromptBuilder interface {
	Build(desc domain.CharacterDescription) Prompt
}

// Prompt は生成モデルへ送る指示文です。
// Reference は参照画像があるときだけ ReferenceInstruction が入ります。
type Prompt struct {
	Text      string
	Reference string
}

// String は送信される指示文全体を返します。
func (p Prompt) String() string {
	if p.Reference == "" {
		return p.Text
	}
	return p.Text + "\n\n" + p.Reference
}

// CharacterSheetBuilder はキャラクターシート用のプロンプトを組み立てます。
type CharacterSheetBuilder struct {
	styleSuffix string // 空でなければ GLOBAL STYLE として追記
}

// NewCharacterSheetBuilder は新しい CharacterSheetBuilder を生成します。
func NewCharacterSheetBuilder(styleSuffix string) *CharacterSheetBuilder {
	return &CharacterSheetBuilder{styleSuffix: strings.TrimSpace(styleSuffix)}
}

// Build は同じ入力に対して常に同じ Prompt を返す純粋関数です。
// 入力のバリデーションは呼び出し元の責務です。
func (b *CharacterSheetBuilder) Build(desc domain.CharacterDescription) Prompt {
	var sb strings.Builder
	sb.WriteString(SheetPreamble)
	sb.WriteString("\n\n")
	sb.WriteString(buildCharacterSection(desc))
	sb.WriteString("\n")
	sb.WriteString(VisualGuidelines)
	sb.WriteString("\n")
	if b.styleSuffix != "" {
		sb.WriteString(fmt.Sprintf("6. GLOBAL STYLE: %s\n", b.styleSuffix))
	}
	sb.WriteString("\n")
	sb.WriteString(ResolutionDirective)

	p := Prompt{Text: sb.String()}
	if desc.HasImage() {
		p.Reference = ReferenceInstruction
	}
	return p
}

// buildCharacterSection はラベル付きのフィールド一覧を出力します。
// 外見・服装・持ち物は空でもそのまま渡します。
func buildCharacterSection(desc domain.CharacterDescription) string {
	fields := []struct {
		label string
		value string
	}{
		{"Character Name", desc.NameOrDefault()},
		{"Archetype", desc.ArchetypeOrDefault()},
		{"Core Appearance", desc.Appearance},
		{"Clothing/Outfit", desc.Clothing},
		{"Accessories/Inventory", desc.Accessories},
		{"Key Expressions", desc.ExpressionsOrDefault()},
		{"Secret/Private Item", desc.SecretItemOrDefault()},
	}

	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("%s: %s\n", f.label, f.value))
	}
	return sb.String()
}
