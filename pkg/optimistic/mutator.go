// Package optimistic applies local state transitions before the server
// confirms them, then reconciles on the outcome. It is the one place in
// the client that knows how to roll back: every feature (likes, saves,
// comments, messages) goes through the same three operations instead of
// reimplementing the pattern with its own drift.
package optimistic

import (
	"context"

	"github.com/arslanonur06/connectme/cli/pkg/cache"
	clierrors "github.com/arslanonur06/connectme/cli/pkg/errors"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// Mutator mutates a cache optimistically and reconciles with remote call
// results. It is bound to a scope context: once the scope is cancelled
// (the owning view went away), late confirmations and failures no longer
// touch the cache.
type Mutator[E cache.Entity] struct {
	cache    *cache.Cache[E]
	scope    context.Context
	identity func() string
}

// New creates a mutator over c. identity yields the current user id and
// must return "" when nobody is signed in; every operation is refused
// before any local mutation when there is no identity.
func New[E cache.Entity](c *cache.Cache[E], scope context.Context, identity func() string) *Mutator[E] {
	if scope == nil {
		scope = context.Background()
	}
	if identity == nil {
		identity = func() string { return "" }
	}
	return &Mutator[E]{cache: c, scope: scope, identity: identity}
}

// Cache returns the cache this mutator operates on
func (m *Mutator[E]) Cache() *cache.Cache[E] {
	return m.cache
}

func (m *Mutator[E]) alive() bool {
	select {
	case <-m.scope.Done():
		return false
	default:
		return true
	}
}

// Create inserts pending into the cache synchronously, then runs send.
// On success the temporary id entry is replaced by the confirmed entity,
// keeping its list position. If a realtime echo of the same entity was
// merged first, the replace degrades to an idempotent refresh and no
// duplicate appears. On failure the pending entry is removed.
func (m *Mutator[E]) Create(ctx context.Context, pending E, send func(context.Context) (E, error)) (E, error) {
	var zero E
	if m.identity() == "" {
		return zero, clierrors.NoIdentityError()
	}

	tempID := pending.EntityID()
	m.cache.Upsert(pending)

	confirmed, err := send(ctx)
	if !m.alive() {
		// Scope ended while the call was in flight; the cache belongs
		// to a view that no longer exists.
		logger.Debug("Create resolved after scope end", "temp_id", tempID)
		return confirmed, err
	}
	if err != nil {
		m.cache.Remove(tempID)
		logger.Debug("Create rolled back", "temp_id", tempID, "error", err)
		return zero, err
	}

	m.cache.ReplaceKey(tempID, confirmed.EntityID(), confirmed)
	return confirmed, nil
}

// Toggle applies the apply transform synchronously and runs send. On
// failure the revert transform is applied to the cache's *latest* state,
// so a rollback undoes only the fields this mutation touched and never
// clobbers an unrelated mutation that resolved in between. apply and
// revert must be exact inverses over the fields they touch, and must
// move dependent fields (a boolean flag and its counter) together in the
// same transform.
func (m *Mutator[E]) Toggle(ctx context.Context, id string, apply, revert func(E) E, send func(context.Context) error) error {
	if m.identity() == "" {
		return clierrors.NoIdentityError()
	}

	if !m.cache.Update(id, apply) {
		return clierrors.NotFoundError("Entity", id)
	}

	err := send(ctx)
	if err != nil && m.alive() {
		m.cache.Update(id, revert)
		logger.Debug("Toggle rolled back", "id", id, "error", err)
	}
	return err
}

// Delete removes the entity synchronously and runs send. On failure the
// entity is restored at the ordinal position it occupied.
func (m *Mutator[E]) Delete(ctx context.Context, id string, send func(context.Context) error) error {
	if m.identity() == "" {
		return clierrors.NoIdentityError()
	}

	removed, idx, ok := m.cache.Remove(id)
	if !ok {
		return clierrors.NotFoundError("Entity", id)
	}

	err := send(ctx)
	if err != nil && m.alive() {
		m.cache.InsertAt(idx, removed)
		logger.Debug("Delete rolled back", "id", id, "error", err)
	}
	return err
}
