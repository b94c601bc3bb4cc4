package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shouni/character-sheet-kit/pkg/domain"
	"github.com/shouni/character-sheet-kit/pkg/generator"
)

// UnknownErrorMessage はエラー文言が空のときに表示する文言です。
const UnknownErrorMessage = "An unknown error occurred during generation."

// ErrBusy は生成中に次のリクエストが来た場合に返されます。
var ErrBusy = errors.New("a generation request is already in progress")

// State は表示すべき状態のスナップショットです。
type State struct {
	Status    domain.GenerationStatus  `json:"status"`
	Result    *domain.GenerationResult `json:"-"`
	Error     string                   `json:"error,omitempty"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Session は IDLE / GENERATING / SUCCESS / ERROR の状態機械です。
// 同時に実行できるリクエストは1件だけで、新しい結果は前の結果を完全に置き換えます。
type Session struct {
	gen generator.ImageGenerator
	now func() time.Time

	mu    sync.Mutex
	state State
}

// New は IDLE 状態の Session を生成します。
func New(gen generator.ImageGenerator) (*Session, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	s := &Session{gen: gen, now: time.Now}
	s.state = State{Status: domain.StatusIdle, UpdatedAt: s.now()}
	return s, nil
}

// Submit は存在チェックの後 GENERATING に遷移し、生成が終わるまでブロックします。
// 入力が不正な場合は状態を変えずにエラーを返します。
func (s *Session) Submit(ctx context.Context, desc domain.CharacterDescription) (*domain.GenerationResult, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if err := s.begin(); err != nil {
		return nil, err
	}

	res, err := s.gen.Generate(ctx, desc)
	if err == nil && res == nil {
		err = generator.ErrNoImageData
	}
	s.finish(res, err)
	return res, err
}

// Snapshot は現在の状態のコピーを返します。
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Status.CanSubmit() {
		return ErrBusy
	}
	s.state = State{Status: domain.StatusGenerating, UpdatedAt: s.now()}
	return nil
}

func (s *Session) finish(res *domain.GenerationResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = State{Status: domain.StatusError, Error: errorMessage(err), UpdatedAt: s.now()}
		return
	}
	s.state = State{Status: domain.StatusSuccess, Result: res, UpdatedAt: s.now()}
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
