package domain

// GenerationStatus は画面に表示すべき状態を表します。常にいずれか1つだけが有効です。
type GenerationStatus string

const (
	StatusIdle       GenerationStatus = "IDLE"
	StatusGenerating GenerationStatus = "GENERATING"
	StatusSuccess    GenerationStatus = "SUCCESS"
	StatusError      GenerationStatus = "ERROR"
)

var transitions = map[GenerationStatus][]GenerationStatus{
	StatusIdle:       {StatusGenerating},
	StatusGenerating: {StatusSuccess, StatusError},
	StatusSuccess:    {StatusGenerating},
	StatusError:      {StatusGenerating},
}

// CanTransition は from から to への遷移が許されるかを返します。
// 終端状態は無く、SUCCESS / ERROR からはいつでも再実行できます。
func CanTransition(from, to GenerationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanSubmit は新しいリクエストを受け付けられる状態かを返します。
func (s GenerationStatus) CanSubmit() bool {
	return CanTransition(s, StatusGenerating)
}
