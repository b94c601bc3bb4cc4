package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shouni/character-sheet-kit/pkg/session"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxUploadBytes はアップロードされる参照画像の上限です。
	DefaultMaxUploadBytes = 20 << 20
	shutdownTimeout       = 10 * time.Second
	readHeaderTimeout     = 10 * time.Second
)

// Server はキャラクターシート生成の HTTP 境界です。
// 入力フォーム、状態表示、画像のダウンロードを提供します。
type Server struct {
	sess           *session.Session
	limiter        *rate.Limiter
	maxUploadBytes int64
}

// New は Session をラップした Server を生成します。
// limiter が nil の場合、生成リクエストの頻度は制限しません。
func New(sess *session.Session, limiter *rate.Limiter) (*Server, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	return &Server{sess: sess, limiter: limiter, maxUploadBytes: DefaultMaxUploadBytes}, nil
}

// Routes はエンドポイントを登録した http.Handler を返します。
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/image", s.handleImage)
	return logRequests(mux)
}

// ListenAndServe は ctx がキャンセルされるまで addr で待ち受けます。
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("HTTPサーバーを起動します", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("HTTPサーバーを停止します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// logRequests は各リクエストの処理時間をログに出力します。
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
