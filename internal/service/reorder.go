package service

import (
	"context"
	"strings"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

// SortOrderStore persists per-item positions of an artist's collection.
type SortOrderStore interface {
	ListIDs(ctx context.Context, c model.Collection, artistID string) ([]string, error)
	SetSortOrder(ctx context.Context, c model.Collection, artistID, id string, pos int) error
}

// ReorderService applies an operator-submitted ordering to a collection.
//
// Updates are issued one item at a time in list order and are not wrapped
// in a transaction.  A failure after the first update is reported as a
// *ReorderError so the caller refetches instead of assuming success.  There
// is no optimistic-concurrency check: when two operators reorder the same
// collection concurrently, the last writer wins.
type ReorderService struct {
	store SortOrderStore
	log   *logger.Logger
}

func NewReorderService(store SortOrderStore, log *logger.Logger) *ReorderService {
	return &ReorderService{store: store, log: log}
}

// Reorder sets sortOrder(ids[i]) = i for every id.  Every id must currently
// belong to (collection, artistID); otherwise nothing is written and
// ErrForbidden is returned.
func (s *ReorderService) Reorder(ctx context.Context, op *model.Operator, collection model.Collection, artistID string, ids []string) error {
	if op == nil {
		return ErrUnauthorized
	}
	if collection.Table() == "" {
		return invalid("unknown collection %q", collection)
	}
	if strings.TrimSpace(artistID) == "" {
		return invalid("artistId is required")
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return invalid("empty item id")
		}
		if _, dup := seen[id]; dup {
			return invalid("duplicate item id %q", id)
		}
		seen[id] = struct{}{}
	}
	if len(ids) == 0 {
		return nil
	}

	owned, err := s.store.ListIDs(ctx, collection, artistID)
	if err != nil {
		return classifyStoreError(err)
	}
	belongs := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		belongs[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := belongs[id]; !ok {
			s.log.Warn("reorder rejected: foreign item id",
				"operator_id", op.ID, "artist_id", artistID, "collection", string(collection), "item_id", id)
			return ErrForbidden
		}
	}

	for i, id := range ids {
		if err := s.store.SetSortOrder(ctx, collection, artistID, id, i); err != nil {
			if i == 0 {
				return classifyStoreError(err)
			}
			s.log.Warn("reorder partially applied",
				"artist_id", artistID, "collection", string(collection), "applied", i, "total", len(ids), "error", err)
			return &ReorderError{Applied: i, Total: len(ids), Err: classifyStoreError(err)}
		}
	}
	s.log.Info("collection reordered",
		"operator_id", op.ID, "artist_id", artistID, "collection", string(collection), "items", len(ids))
	return nil
}
