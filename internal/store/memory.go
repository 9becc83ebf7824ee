package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps submissions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	opts    options
	byShort map[string]*Submission
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns an empty MemoryStore.
func NewMemory(opts ...Option) *MemoryStore {
	return &MemoryStore{
		opts:    buildOptions(opts),
		byShort: make(map[string]*Submission),
	}
}

func (m *MemoryStore) taken(id string) bool {
	_, ok := m.byShort[id]
	return ok
}

func (m *MemoryStore) Create(ctx context.Context, sub *Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opts.prepare(sub, m.taken); err != nil {
		return err
	}
	m.byShort[sub.ShortID] = sub.Clone()
	return nil
}

func (m *MemoryStore) GetByShortID(ctx context.Context, shortID string) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.byShort[shortID]
	if !ok {
		return nil, ErrNotFound
	}
	return sub.Clone(), nil
}

func (m *MemoryStore) SetEmail(ctx context.Context, shortID, email string) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.byShort[shortID]
	if !ok {
		return nil, ErrNotFound
	}
	sub.Email = email
	sub.Updated = m.opts.now().UTC()
	return sub.Clone(), nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Submission, 0, len(m.byShort))
	for _, sub := range m.byShort {
		out = append(out, sub.Clone())
	}
	sortByCreated(out)
	return out, nil
}

func sortByCreated(subs []*Submission) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Created.Equal(subs[j].Created) {
			return subs[i].ShortID < subs[j].ShortID
		}
		return subs[i].Created.Before(subs[j].Created)
	})
}
