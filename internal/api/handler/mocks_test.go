package handler_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iiTzIsh/reviewlens/internal/cache"
	"github.com/iiTzIsh/reviewlens/internal/store"
	"github.com/iiTzIsh/reviewlens/pkg/models"
)

// mockStore is an in-memory store.Store with injectable failures.
type mockStore struct {
	keys     map[uuid.UUID]*models.APIKey
	analyses map[uuid.UUID]*models.StoredAnalysis
	saved    []*models.StoredAnalysis
	err      error
}

func newMockStore() *mockStore {
	return &mockStore{
		keys:     make(map[uuid.UUID]*models.APIKey),
		analyses: make(map[uuid.UUID]*models.StoredAnalysis),
	}
}

func (m *mockStore) Ping(_ context.Context) error { return m.err }

func (m *mockStore) GetAPIKeyByPrefix(_ context.Context, prefix string) ([]*models.APIKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.APIKey
	for _, k := range m.keys {
		if k.KeyPrefix == prefix {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateAPIKeyLastUsed(_ context.Context, _ uuid.UUID) error { return m.err }

func (m *mockStore) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	if m.err != nil {
		return m.err
	}
	m.keys[key.ID] = key
	return nil
}

func (m *mockStore) ListAPIKeys(_ context.Context) ([]*models.APIKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.APIKey, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, k)
	}
	return out, nil
}

func (m *mockStore) RevokeAPIKey(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.keys[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.keys, id)
	return nil
}

func (m *mockStore) SaveAnalysis(_ context.Context, analysis *models.StoredAnalysis) error {
	if m.err != nil {
		return m.err
	}
	m.analyses[analysis.ID] = analysis
	m.saved = append(m.saved, analysis)
	return nil
}

func (m *mockStore) GetAnalysis(_ context.Context, id uuid.UUID) (*models.StoredAnalysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.analyses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (m *mockStore) ListRecentAnalyses(_ context.Context, filter store.AnalysisFilter) ([]*models.StoredAnalysis, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	out := make([]*models.StoredAnalysis, 0, len(m.analyses))
	for _, a := range m.analyses {
		out = append(out, a)
	}
	return out, len(out), nil
}

var _ store.Store = (*mockStore)(nil)

// mockCache is an in-memory cache.Cache with injectable failures.
type mockCache struct {
	data map[string][]byte
	err  error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func (m *mockCache) Ping(_ context.Context) error { return m.err }

func (m *mockCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 1, m.err
}

var _ cache.Cache = (*mockCache)(nil)
