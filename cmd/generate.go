package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/shouni/character-sheet-kit/internal/builder"
	"github.com/shouni/character-sheet-kit/internal/config"
	"github.com/shouni/character-sheet-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// generateOptions は generate コマンドのフラグです。
type generateOptions struct {
	desc      domain.CharacterDescription
	image     string
	outputDir string
	model     string
}

var genOpts generateOptions

// generateCmd はキャラクター記述からシート画像を1枚生成して保存します。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "キャラクター設定シートを1枚生成して保存します。",
	Long: `指定したキャラクター記述からプロンプトを組み立てて Gemini に送信し、
返ってきた画像を character_sheet_<timestamp>.png として保存します。
--appearance か --image のどちらかは必須です。`,
	RunE: generateCommand,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genOpts.desc.Name, "name", "", "キャラクター名（未指定なら Unnamed）")
	f.StringVar(&genOpts.desc.Archetype, "archetype", "", "役割・アーキタイプ（未指定なら Unknown）")
	f.StringVar(&genOpts.desc.Appearance, "appearance", "", "外見の説明")
	f.StringVar(&genOpts.desc.Clothing, "clothing", "", "服装")
	f.StringVar(&genOpts.desc.Accessories, "accessories", "", "装備・アクセサリー")
	f.StringVar(&genOpts.desc.Expressions, "expressions", "", "表情（未指定なら Neutral, Angry, Happy）")
	f.StringVar(&genOpts.desc.SecretItem, "secret-item", "", "秘密のアイテム（未指定なら None）")
	f.StringVarP(&genOpts.image, "image", "i", "", "参照画像（ローカルパス、http(s):// または gs://）")
	f.StringVarP(&genOpts.outputDir, "output-dir", "o", config.DefaultOutputDir, "保存先ディレクトリ（ローカル or gs://...）")
	f.StringVar(&genOpts.model, "image-model", "", "使用する Gemini モデル名（未指定なら IMAGE_GEMINI_MODEL）")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	desc := genOpts.desc
	if genOpts.image != "" {
		desc.Image = &domain.ImageSource{Name: path.Base(genOpts.image), Location: genOpts.image}
	}
	if err := desc.Validate(); err != nil {
		return err
	}

	cfg := config.LoadConfig()
	if genOpts.model != "" {
		cfg.GeminiImageModel = genOpts.model
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

	slog.Info("キャラクターシートの生成を開始します",
		"name", desc.NameOrDefault(),
		"image_model", cfg.GeminiImageModel,
		"has_image", desc.HasImage())

	res, err := appCtx.Session.Submit(ctx, desc)
	if err != nil {
		return fmt.Errorf("キャラクターシートの生成に失敗しました: %w", err)
	}

	out, err := saveImage(ctx, appCtx.Storage, genOpts.outputDir, res.SuggestedFileName(time.Now()), res.Data)
	if err != nil {
		return err
	}

	slog.Info("キャラクターシートを保存しました", "path", out)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// imageWriter は gs:// への書き込み先です。builder.RemoteStorage が満たします。
type imageWriter interface {
	Write(ctx context.Context, uri string, r io.Reader, contentType string) error
}

// saveImage は dir 配下に画像を保存し、保存先のパスを返します。
func saveImage(ctx context.Context, remote imageWriter, dir, name string, data []byte) (string, error) {
	if builder.IsRemotePath(dir) {
		uri := dir + "/" + name
		if dir[len(dir)-1] == '/' {
			uri = dir + name
		}
		if err := remote.Write(ctx, uri, bytes.NewReader(data), domain.ResultMIMEType); err != nil {
			return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
		}
		return uri, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
	}
	return p, nil
}
