package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	m      map[int64]Product
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[int64]Product{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Insert(ctx context.Context, p Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	p.ID = &id
	s.m[id] = p
	return id, nil
}

// Update leaves the map untouched when the id is unknown, the same as an
// UPDATE that matches no row.
func (s *MemStore) Update(ctx context.Context, id int64, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[id]; !ok {
		return nil
	}
	p.ID = &id
	s.m[id] = p
	return nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}
	p.ID = &id
	return p, true, nil
}

func (s *MemStore) List(ctx context.Context, f Filter) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for id, p := range s.m {
		if f.Match(p) {
			p.ID = &id
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out, nil
}
