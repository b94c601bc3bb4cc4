package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/character-sheet-kit/pkg/domain"

	"github.com/shouni/go-http-kit/httpkit"
)

const cacheKeyPrefix = "attachment:"

// ErrReadAttachment は参照画像を読み込めなかった場合のエラーです。
var ErrReadAttachment = errors.New("failed to read attachment")

// Encoder は参照画像を base64 ペイロードと MIME タイプに変換します。
// ローカルファイルのみ扱う場合、依存関係はすべて nil で構いません。
// URL の接続先制限（SSRF 対策）は httpClient 側のポリシーに従います。
type Encoder struct {
	httpClient HTTPClient
	reader     InputReader
	cache      ImageCacher
	cacheTTL   time.Duration
}

// NewEncoder は依存関係を注入して Encoder を初期化します。
func NewEncoder(httpClient HTTPClient, reader InputReader, cache ImageCacher, cacheTTL time.Duration) *Encoder {
	return &Encoder{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Encode は画像全体をメモリに読み込み、データURIに変換した上で
// スキームと MIME のプレフィックスを取り除いたペイロードを返します。
// MIME タイプの検証（ホワイトリスト）は行いません。
func (e *Encoder) Encode(ctx context.Context, src *domain.ImageSource) (*domain.EncodedAttachment, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: image source is nil", ErrReadAttachment)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := e.readAll(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadAttachment, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mimeType := resolveMIMEType(src, data)
	payload, err := payloadFromDataURI(toDataURI(data, mimeType))
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "参照画像をエンコードしました", "mime_type", mimeType, "bytes", len(data))
	return &domain.EncodedAttachment{Data: payload, MIMEType: mimeType}, nil
}

func (e *Encoder) readAll(ctx context.Context, src *domain.ImageSource) ([]byte, error) {
	if src.Content != nil {
		return src.Content, nil
	}

	loc := src.Location
	switch {
	case loc == "":
		return nil, errors.New("image source has neither content nor location")
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return e.fetchRemote(ctx, loc)
	case strings.HasPrefix(loc, "gs://"):
		return e.openRemote(ctx, loc)
	default:
		return os.ReadFile(loc)
	}
}

func (e *Encoder) fetchRemote(ctx context.Context, rawURL string) ([]byte, error) {
	cacheKey := cacheKeyPrefix + rawURL
	if e.cache != nil {
		if cached, found := e.cache.Get(cacheKey); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	if e.httpClient == nil {
		return nil, errors.New("http client is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpkit.UserAgent)

	// 読み込み失敗はリトライせずにそのまま返す
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	data, err := httpkit.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(cacheKey, data, e.cacheTTL)
	}
	return data, nil
}

func (e *Encoder) openRemote(ctx context.Context, uri string) ([]byte, error) {
	if e.reader == nil {
		return nil, fmt.Errorf("remote reader is not configured for %s", uri)
	}
	rc, err := e.reader.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// resolveMIMEType は明示指定、拡張子、内容の順で MIME タイプを決めます。
func resolveMIMEType(src *domain.ImageSource, data []byte) string {
	if src.MIMEType != "" {
		return src.MIMEType
	}

	name := src.Name
	if name == "" {
		name = src.Location
	}
	if ext := extension(name); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			if mediaType, _, err := mime.ParseMediaType(t); err == nil {
				return mediaType
			}
			return t
		}
	}
	return http.DetectContentType(data)
}

func extension(name string) string {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Host != "" {
		return path.Ext(u.Path)
	}
	return filepath.Ext(name)
}

func toDataURI(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// payloadFromDataURI は "data:<mime>;base64," を取り除きます。
func payloadFromDataURI(dataURI string) (string, error) {
	_, payload, found := strings.Cut(dataURI, ",")
	if !found {
		return "", fmt.Errorf("malformed data URI")
	}
	return payload, nil
}
