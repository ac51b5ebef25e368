package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

type item struct {
	artistID string
	order    int
}

// memOrderStore keeps positions in memory and can fail the n-th write.
type memOrderStore struct {
	items     map[model.Collection]map[string]*item
	failAt    int // 1-based write index to fail; 0 disables
	failErr   error
	writes    int
	listCalls int
}

func newMemStore() *memOrderStore {
	return &memOrderStore{items: map[model.Collection]map[string]*item{}}
}

func (m *memOrderStore) put(c model.Collection, artistID, id string, order int) {
	if m.items[c] == nil {
		m.items[c] = map[string]*item{}
	}
	m.items[c][id] = &item{artistID: artistID, order: order}
}

func (m *memOrderStore) ListIDs(_ context.Context, c model.Collection, artistID string) ([]string, error) {
	m.listCalls++
	var ids []string
	for id, it := range m.items[c] {
		if it.artistID == artistID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return m.items[c][ids[i]].order < m.items[c][ids[j]].order })
	return ids, nil
}

func (m *memOrderStore) SetSortOrder(_ context.Context, c model.Collection, artistID, id string, pos int) error {
	m.writes++
	if m.failAt > 0 && m.writes == m.failAt {
		return m.failErr
	}
	if it, ok := m.items[c][id]; ok && it.artistID == artistID {
		it.order = pos
	}
	return nil
}

func (m *memOrderStore) order(c model.Collection, id string) int { return m.items[c][id].order }

var operator = &model.Operator{ID: "op1", Role: model.RoleEditor}

func seeded() *memOrderStore {
	m := newMemStore()
	m.put(model.CollectionPhotos, "a1", "a", 0)
	m.put(model.CollectionPhotos, "a1", "b", 1)
	m.put(model.CollectionPhotos, "a1", "c", 2)
	m.put(model.CollectionPhotos, "a2", "z", 0)
	return m
}

func TestReorderAssignsPositions(t *testing.T) {
	store := seeded()
	svc := NewReorderService(store, logger.Discard())

	require.NoError(t, svc.Reorder(context.Background(), operator, model.CollectionPhotos, "a1", []string{"c", "a", "b"}))
	assert.Equal(t, 0, store.order(model.CollectionPhotos, "c"))
	assert.Equal(t, 1, store.order(model.CollectionPhotos, "a"))
	assert.Equal(t, 2, store.order(model.CollectionPhotos, "b"))
}

func TestReorderIsIdempotent(t *testing.T) {
	store := seeded()
	svc := NewReorderService(store, logger.Discard())
	ids := []string{"b", "c", "a"}

	require.NoError(t, svc.Reorder(context.Background(), operator, model.CollectionPhotos, "a1", ids))
	first := map[string]int{}
	for _, id := range ids {
		first[id] = store.order(model.CollectionPhotos, id)
	}
	require.NoError(t, svc.Reorder(context.Background(), operator, model.CollectionPhotos, "a1", ids))
	for _, id := range ids {
		assert.Equal(t, first[id], store.order(model.CollectionPhotos, id))
	}
}

func TestReorderRejectsForeignIDs(t *testing.T) {
	store := seeded()
	svc := NewReorderService(store, logger.Discard())

	err := svc.Reorder(context.Background(), operator, model.CollectionPhotos, "a1", []string{"c", "z", "a"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, store.writes, "no position may change when any id is foreign")
	assert.Equal(t, 0, store.order(model.CollectionPhotos, "z"))
}

func TestReorderRejectsOtherCollectionIDs(t *testing.T) {
	store := seeded()
	store.put(model.CollectionVideos, "a1", "v1", 0)
	svc := NewReorderService(store, logger.Discard())

	err := svc.Reorder(context.Background(), operator, model.CollectionPhotos, "a1", []string{"v1"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReorderValidation(t *testing.T) {
	tests := []struct {
		name       string
		op         *model.Operator
		collection model.Collection
		artistID   string
		ids        []string
		want       error
	}{
		{"no operator", nil, model.CollectionPhotos, "a1", []string{"a"}, ErrUnauthorized},
		{"unknown collection", operator, model.Collection("shows"), "a1", []string{"a"}, ErrInvalidRequest},
		{"missing artist", operator, model.CollectionPhotos, "", []string{"a"}, ErrInvalidRequest},
		{"empty id", operator, model.CollectionPhotos, "a1", []string{"a", ""}, ErrInvalidRequest},
		{"duplicate id", operator, model.CollectionPhotos, "a1", []string{"a", "b", "a"}, ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seeded()
			err := NewReorderService(store, logger.Discard()).Reorder(context.Background(), tt.op, tt.collection, tt.artistID, tt.ids)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, store.listCalls, "validation happens before store access")
		})
	}
}

func TestReorderEmptyListIsNoop(t *testing.T) {
	store := seeded()
	require.NoError(t, NewReorderService(store, logger.Discard()).Reorder(context.Background(), operator, model.CollectionPhotos, "a1", nil))
	assert.Zero(t, store.writes)
}

func TestReorderPartialFailure(t *testing.T) {
	store := seeded()
	store.failAt = 2
	store.failErr = errors.New("lock wait timeout")
	svc := NewReorderService(store, logger.Discard())

	err := svc.Reorder(context.Background(), operator, model.CollectionPhotos, "a1", []string{"c", "a", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialFailure)

	var re *ReorderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 1, re.Applied)
	assert.Equal(t, 3, re.Total)
	assert.ErrorIs(t, err, store.failErr)
	assert.Equal(t, 0, store.order(model.CollectionPhotos, "c"), "the first update stays applied")
}

func TestReorderFirstWriteFailureIsNotPartial(t *testing.T) {
	store := seeded()
	store.failAt = 1
	store.failErr = context.DeadlineExceeded

	err := NewReorderService(store, logger.Discard()).Reorder(context.Background(), operator, model.CollectionPhotos, "a1", []string{"c", "a"})
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.NotErrorIs(t, err, ErrPartialFailure)
}
