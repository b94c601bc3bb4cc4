package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseToResponse(t *testing.T) {
	t.Run("正常系: 最初の画像パーツを返す", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "here is your sheet"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("second")}},
				}},
			}},
		}

		out, err := parseToResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), out.Data)
		assert.Equal(t, "image/png", out.MimeType)
	})

	t.Run("空の InlineData は読み飛ばす", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{InlineData: &genai.Blob{MIMEType: "image/png"}},
					{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("jpeg")}},
				}},
			}},
		}

		out, err := parseToResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", out.MimeType)
	})

	t.Run("異常系: 候補なし", func(t *testing.T) {
		_, err := parseToResponse(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, ErrNoImageData)

		_, err = parseToResponse(nil)
		assert.ErrorIs(t, err, ErrNoImageData)
	})

	t.Run("異常系: テキストのみ", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "just text"}}}},
			},
		}
		_, err := parseToResponse(resp)
		assert.ErrorIs(t, err, ErrNoImageData)
	})

	t.Run("異常系: Content が nil", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}
		_, err := parseToResponse(resp)
		assert.ErrorIs(t, err, ErrNoImageData)
	})

	t.Run("異常系: FinishReason が SAFETY の場合は理由を含める", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}
		_, err := parseToResponse(resp)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoImageData)
		assert.Contains(t, err.Error(), "SAFETY")
	})
}

func TestClassifyParts(t *testing.T) {
	content := &genai.Content{Parts: []*genai.Part{
		nil,
		{Text: "caption"},
		{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("img")}},
		{},
	}}

	parts := classifyParts(content)
	require.Len(t, parts, 2)
	assert.Equal(t, TextPart{Text: "caption"}, parts[0])
	assert.Equal(t, InlineDataPart{MIMEType: "image/png", Data: []byte("img")}, parts[1])

	assert.Nil(t, classifyParts(nil))

	_, ok := firstInlineData([]ResponsePart{TextPart{Text: "a"}})
	assert.False(t, ok)
}
