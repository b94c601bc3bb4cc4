package attachment

import (
	"context"
	"io"
	"net/http"
	"time"
)

// HTTPClient は URL から参照画像を1回だけ取得するためのクライアントです。
// *httpkit.Client（httpkit.Doer）が満たします。
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// InputReader は gs:// 等のリモートストレージを読み込みます。remoteio.InputReader が満たします。
type InputReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// ImageCacher は取得済み画像のキャッシュです。go-cache の *cache.Cache が満たします。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
