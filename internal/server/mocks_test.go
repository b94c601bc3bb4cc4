package server

import (
	"context"
	"sync"

	"github.com/shouni/character-sheet-kit/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	mu           sync.Mutex
	calls        int
	lastDesc     domain.CharacterDescription
	generateFunc func(ctx context.Context, desc domain.CharacterDescription) (*domain.GenerationResult, error)
}

func (m *mockGenerator) Generate(ctx context.Context, desc domain.CharacterDescription) (*domain.GenerationResult, error) {
	m.mu.Lock()
	m.calls++
	m.lastDesc = desc
	m.mu.Unlock()

	if m.generateFunc != nil {
		return m.generateFunc(ctx, desc)
	}
	return domain.NewGenerationResult([]byte("fake-png"), "image/png", "prompt text"), nil
}

func (m *mockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockGenerator) LastDesc() domain.CharacterDescription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastDesc
}
