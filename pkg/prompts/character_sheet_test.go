package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/character-sheet-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func unit01() domain.CharacterDescription {
	return domain.CharacterDescription{
		Name:       "Unit-01",
		Archetype:  "Cyber-Assassin",
		Appearance: "tall android",
	}
}

func TestCharacterSheetBuilder_Build(t *testing.T) {
	b := NewCharacterSheetBuilder("")

	t.Run("Scenario/Unit01WithoutImage", func(t *testing.T) {
		p := b.Build(unit01())
		full := p.String()

		for _, want := range []string{"Unit-01", "Cyber-Assassin", "tall android", "Neutral, Angry, Happy", "Secret/Private Item: None"} {
			assert.Contains(t, full, want)
		}
		assert.Empty(t, p.Reference)
		assert.NotContains(t, full, ReferenceInstruction)
	})

	t.Run("Scenario/Unit01WithImage", func(t *testing.T) {
		desc := unit01()
		desc.Image = &domain.ImageSource{Location: "ref.png"}
		p := b.Build(desc)

		assert.Equal(t, ReferenceInstruction, p.Reference)
		assert.True(t, strings.HasSuffix(p.String(), ReferenceInstruction))
		assert.NotContains(t, p.Text, ReferenceInstruction, "the reference sentence travels as its own part")
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, b.Build(unit01()), b.Build(unit01()))
	})

	t.Run("DefaultsAreSubstitutedInPlace", func(t *testing.T) {
		p := b.Build(domain.CharacterDescription{})
		assert.Contains(t, p.Text, "Character Name: Unnamed\n")
		assert.Contains(t, p.Text, "Archetype: Unknown\n")
		assert.Contains(t, p.Text, "Key Expressions: Neutral, Angry, Happy\n")
		assert.Contains(t, p.Text, "Secret/Private Item: None\n")
	})

	t.Run("VerbatimFieldsStayEmpty", func(t *testing.T) {
		p := b.Build(domain.CharacterDescription{})
		assert.Contains(t, p.Text, "Core Appearance: \n")
		assert.Contains(t, p.Text, "Clothing/Outfit: \n")
		assert.Contains(t, p.Text, "Accessories/Inventory: \n")
	})

	t.Run("NonEmptyFieldsAreVerbatim", func(t *testing.T) {
		desc := domain.CharacterDescription{
			Clothing:    "trench coat over kevlar",
			Accessories: "grappling hook",
			Expressions: "Smirk",
			SecretItem:  "faded photograph",
		}
		p := b.Build(desc)
		assert.Contains(t, p.Text, "Clothing/Outfit: trench coat over kevlar\n")
		assert.Contains(t, p.Text, "Accessories/Inventory: grappling hook\n")
		assert.Contains(t, p.Text, "Key Expressions: Smirk\n")
		assert.Contains(t, p.Text, "Secret/Private Item: faded photograph\n")
		assert.NotContains(t, p.Text, "Neutral, Angry, Happy")
	})

	t.Run("FixedBlocksArePresent", func(t *testing.T) {
		p := b.Build(unit01())
		assert.True(t, strings.HasPrefix(p.Text, SheetPreamble))
		assert.Contains(t, p.Text, VisualGuidelines)
		assert.True(t, strings.HasSuffix(p.Text, ResolutionDirective))
	})
}

func TestCharacterSheetBuilder_StyleSuffix(t *testing.T) {
	p := NewCharacterSheetBuilder("  watercolor wash  ").Build(unit01())
	assert.Contains(t, p.Text, "6. GLOBAL STYLE: watercolor wash\n")

	plain := NewCharacterSheetBuilder("").Build(unit01())
	assert.NotContains(t, plain.Text, "GLOBAL STYLE")
}
