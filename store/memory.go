package store

import (
	"context"
	"sync"

	"github.com/raushankrgupta/price-watcher/models"
)

// MemoryStore is an in-process ProductStore used by tests and by runs
// without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	language string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[string]models.Product)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) Language(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.language == "" {
		return "", ErrNotFound
	}
	return s.language, nil
}

func (s *MemoryStore) SetLanguage(_ context.Context, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	return nil
}
