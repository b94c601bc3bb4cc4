package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenAIClient_GenerateContent(t *testing.T) {
	payload := []byte("generated-png")

	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"image/png","data":%q}}]},"finishReason":"STOP"}]}`,
			base64.StdEncoding.EncodeToString(payload))
	}))
	defer server.Close()

	client := NewGenAIClient("test-key", WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	parts := []*genai.Part{{Text: "draw a sheet"}}

	resp, err := client.GenerateContent(context.Background(), DefaultModel, parts, ImageOptions{AspectRatio: "16:9", ImageSize: "1K"})
	require.NoError(t, err)

	out, err := parseToResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, payload, out.Data)

	assert.True(t, strings.HasSuffix(gotPath, DefaultModel+":generateContent"), "unexpected path %s", gotPath)
	assert.Contains(t, gotBody, `"aspectRatio":"16:9"`)
	assert.Contains(t, gotBody, `"imageSize":"1K"`)
	assert.Contains(t, gotBody, "draw a sheet")
	assert.Contains(t, gotBody, `"responseModalities":["TEXT","IMAGE"]`)
}

func TestGenAIClient_MissingKey(t *testing.T) {
	client := NewGenAIClient("")
	_, err := client.GenerateContent(context.Background(), DefaultModel, nil, ImageOptions{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}
