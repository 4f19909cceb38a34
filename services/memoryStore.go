package services

import (
	"context"
	"sync"
	"time"

	"github.com/Omthube23/fastapi-elk-project/models"
)

// MemoryStore keeps items in process memory. It is safe for concurrent use
// and is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []models.Item
	lastID uint
	now    func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: []models.Item{},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Create(_ context.Context, in NewItem) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	item := models.Item{
		ID:          s.lastID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CreatedAt:   s.now(),
	}
	s.items = append(s.items, item)
	return item, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id uint) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (s *MemoryStore) Delete(_ context.Context, id uint) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

// Close is a no-op; the items go away with the store.
func (s *MemoryStore) Close() error {
	return nil
}
