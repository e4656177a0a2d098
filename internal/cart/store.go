package cart

import (
	"context"
	"sync"
	"time"

	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
	"github.com/google/uuid"
)

// Store keeps the live cart for every signed-in user. Reads and writes go
// through an in-memory map guarded by a mutex; every mutation is mirrored to
// the snapshot store so the cart survives restarts. Mutations hydrate from
// the snapshot first, so the first request after a restart operates on the
// persisted cart instead of clobbering it. A snapshot write failure is
// logged and swallowed: the in-memory cart stays authoritative and the user
// keeps shopping.
type Store struct {
	mu        sync.Mutex
	carts     map[string][]Item
	snapshots SnapshotStore
	logg      *logger.Logger
	now       func() time.Time
}

// NewStore builds a cart store. The snapshot store may be nil, in which case
// carts live only in memory.
func NewStore(snapshots SnapshotStore, logg *logger.Logger) *Store {
	return &Store{
		carts:     make(map[string][]Item),
		snapshots: snapshots,
		logg:      logg,
		now:       time.Now,
	}
}

// AddOrIncrement inserts the item, or adjusts the quantity of an existing
// line by delta. Quantities are clamped so no line ever drops below 1; a new
// line starts at max(1, delta). The stored name, price and image always come
// from the first add.
func (s *Store) AddOrIncrement(ctx context.Context, userID string, item Item, delta int) []Item {
	s.Hydrate(ctx, userID)

	s.mu.Lock()
	items := s.carts[userID]
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity = clampQty(items[i].Quantity + delta)
			found = true
			break
		}
	}
	if !found {
		item.Quantity = clampQty(delta)
		items = append(items, item)
	}
	s.carts[userID] = items
	out := cloneItems(items)
	s.mu.Unlock()

	s.persist(ctx, userID, out)
	return out
}

// Increment bumps an existing line by one. Unknown products are a no-op.
func (s *Store) Increment(ctx context.Context, userID string, productID uuid.UUID) []Item {
	s.Hydrate(ctx, userID)

	s.mu.Lock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			break
		}
	}
	s.carts[userID] = items
	out := cloneItems(items)
	s.mu.Unlock()

	s.persist(ctx, userID, out)
	return out
}

// Decrement lowers a line by one. When the line sits at quantity 1 the whole
// line is removed, so a quantity of zero is never stored.
func (s *Store) Decrement(ctx context.Context, userID string, productID uuid.UUID) []Item {
	s.Hydrate(ctx, userID)

	s.mu.Lock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if items[i].Quantity <= 1 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity--
		}
		break
	}
	s.carts[userID] = items
	out := cloneItems(items)
	s.mu.Unlock()

	s.persist(ctx, userID, out)
	return out
}

// Remove drops the line for productID regardless of quantity.
func (s *Store) Remove(ctx context.Context, userID string, productID uuid.UUID) []Item {
	s.Hydrate(ctx, userID)

	s.mu.Lock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	s.carts[userID] = items
	out := cloneItems(items)
	s.mu.Unlock()

	s.persist(ctx, userID, out)
	return out
}

// Clear empties the cart and deletes the persisted snapshot.
func (s *Store) Clear(ctx context.Context, userID string) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()

	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Delete(ctx, userID); err != nil {
		s.warnPersist(ctx, userID, err)
	}
}

// Items returns a copy of the user's current cart lines.
func (s *Store) Items(userID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.carts[userID])
}

// Hydrate loads the persisted snapshot into memory. It only applies when the
// user has no live cart yet, so a running session is never clobbered by an
// older snapshot.
func (s *Store) Hydrate(ctx context.Context, userID string) []Item {
	s.mu.Lock()
	if existing, ok := s.carts[userID]; ok {
		out := cloneItems(existing)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	if s.snapshots == nil {
		return nil
	}
	snap, ok, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		s.warnPersist(ctx, userID, err)
		return nil
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, raced := s.carts[userID]; raced {
		return cloneItems(s.carts[userID])
	}
	s.carts[userID] = cloneItems(snap.Items)
	return cloneItems(snap.Items)
}

// Evict drops the in-memory cart without touching the snapshot. Used on
// sign-out so the cart comes back on the next sign-in.
func (s *Store) Evict(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

func (s *Store) persist(ctx context.Context, userID string, items []Item) {
	if s.snapshots == nil {
		return
	}
	snap := Snapshot{Items: items, UpdatedAt: s.now()}
	if err := s.snapshots.Save(ctx, userID, snap); err != nil {
		s.warnPersist(ctx, userID, err)
	}
}

func (s *Store) warnPersist(ctx context.Context, userID string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "user_id", userID)
	s.logg.Warn(ctx, "cart snapshot persistence failed: "+err.Error())
}

func clampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
