package builder

import (
	"github.com/shouni/character-sheet-kit/internal/config"
	"github.com/shouni/character-sheet-kit/pkg/generator"
	"github.com/shouni/character-sheet-kit/pkg/session"

	"golang.org/x/time/rate"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config           // 環境変数から読み込まれた設定
	Generator generator.ImageGenerator // キャラクターシートの生成器（ステートレス）
	Session   *session.Session         // UI 向けの単一実行ゲート
	Storage   *RemoteStorage           // gs:// の読み書き。初回利用時に初期化される
	Limiter   *rate.Limiter            // HTTP 経由の生成リクエストのレート制限
}
