package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "character-sheet",
	Short: "Gemini でキャラクター設定シートを生成します。",
	Long: `キャラクターの名前、外見、服装などの記述（と任意の参照画像）から
パノラマ形式のキャラクター設定シート画像を Gemini で生成します。`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを出力します。")
	rootCmd.AddCommand(generateCmd, serveCmd)
}

// setupLogger は slog のデフォルトロガーを標準エラー出力のテキスト形式に設定します。
func setupLogger(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Execute は main.go から呼び出されるエントリポイントです。
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
