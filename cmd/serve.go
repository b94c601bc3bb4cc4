package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/shouni/character-sheet-kit/internal/builder"
	"github.com/shouni/character-sheet-kit/internal/config"
	"github.com/shouni/character-sheet-kit/internal/server"

	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd はフォーム入力を受け付ける HTTP サーバーを起動します。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "生成 API を HTTP で公開します。",
	RunE:  serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "待ち受けアドレス（未指定なら SERVER_ADDR）")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}

	appCtx, err := builder.BuildAppContext(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := appCtx.Storage.Close(); err != nil {
			slog.Warn("GCSクライアントのクローズに失敗しました", "error", err)
		}
	}()
	srv, err := server.New(appCtx.Session, appCtx.Limiter)
	if err != nil {
		return fmt.Errorf("サーバーの初期化に失敗しました: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.ServerAddr)
}
