package generator

import "google.golang.org/genai"

// ResponsePart はレスポンスのパーツを種類ごとに区別したものです。
// TextPart か InlineDataPart のいずれかです。
type ResponsePart interface {
	isResponsePart()
}

// TextPart はテキストだけを含むパーツです。
type TextPart struct {
	Text string
}

// InlineDataPart はバイナリを直接含むパーツです。
type InlineDataPart struct {
	MIMEType string
	Data     []byte
}

func (TextPart) isResponsePart()       {}
func (InlineDataPart) isResponsePart() {}

// classifyParts は SDK のパーツを ResponsePart に変換します。
// どちらにも当てはまらないパーツ（関数呼び出し等）は捨てます。
func classifyParts(content *genai.Content) []ResponsePart {
	if content == nil {
		return nil
	}
	out := make([]ResponsePart, 0, len(content.Parts))
	for _, p := range content.Parts {
		switch {
		case p == nil:
			continue
		case p.InlineData != nil:
			out = append(out, InlineDataPart{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data})
		case p.Text != "":
			out = append(out, TextPart{Text: p.Text})
		}
	}
	return out
}

// firstInlineData は順番に走査して最初の空でない InlineDataPart を返します。
func firstInlineData(parts []ResponsePart) (InlineDataPart, bool) {
	for _, p := range parts {
		if img, ok := p.(InlineDataPart); ok && len(img.Data) > 0 {
			return img, true
		}
	}
	return InlineDataPart{}, false
}
