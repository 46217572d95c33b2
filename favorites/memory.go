package favorites

import (
	"context"
	"slices"
	"sync"

	"mykitchen_backend/models"
)

// Memory keeps favorites for the lifetime of the process.
type Memory struct {
	mu    sync.Mutex
	items []models.Favorite
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) List(_ context.Context) ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *Memory) Add(_ context.Context, fav models.Favorite) ([]models.Favorite, error) {
	if fav.ID == "" {
		return nil, ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(fav.ID) < 0 {
		m.items = append(m.items, fav)
	}
	return m.snapshot(), nil
}

func (m *Memory) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = slices.DeleteFunc(m.items, func(f models.Favorite) bool { return f.ID == id })
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) indexOf(id string) int {
	for i, f := range m.items {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies the list so callers never share the backing array.
func (m *Memory) snapshot() []models.Favorite {
	out := make([]models.Favorite, len(m.items))
	copy(out, m.items)
	return out
}
