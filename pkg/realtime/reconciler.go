package realtime

import (
	"time"

	"github.com/arslanonur06/connectme/cli/pkg/cache"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// ReconcilerConfig parameterizes reconciliation for one entity kind.
type ReconcilerConfig[E cache.Entity] struct {
	// IsPending reports whether a cached entry is a local-only entity
	// still awaiting server confirmation.
	IsPending func(E) bool
	// Matches reports whether a pending entry and an incoming confirmed
	// entity represent the same logical entity (same author, same
	// content). The creation-time window is checked separately.
	Matches func(pending, incoming E) bool
	// CreatedAt extracts the entity creation time, used for the match
	// window and for ordered insertion. Zero times sort last.
	CreatedAt func(E) time.Time
	// Window bounds how far apart a pending entry and its echo may be
	// created and still be considered the same entity.
	Window time.Duration
	// Identity yields the current user id; merges are no-ops when it
	// returns "" (signed out).
	Identity func() string
}

// Reconciler merges server-pushed entities into a cache without creating
// duplicates against optimistic local entries. Merge is idempotent:
// applying the same push twice leaves the cache as after the first.
//
// Merge must be called from a single goroutine (the realtime client
// dispatches on its read goroutine, in arrival order).
type Reconciler[E cache.Entity] struct {
	cache *cache.Cache[E]
	cfg   ReconcilerConfig[E]
}

// NewReconciler creates a reconciler over c
func NewReconciler[E cache.Entity](c *cache.Cache[E], cfg ReconcilerConfig[E]) *Reconciler[E] {
	if cfg.Window == 0 {
		cfg.Window = 10 * time.Second
	}
	return &Reconciler[E]{cache: c, cfg: cfg}
}

// Merge folds one confirmed, server-pushed entity into the cache.
func (r *Reconciler[E]) Merge(incoming E) {
	if r.cfg.Identity != nil && r.cfg.Identity() == "" {
		return
	}

	id := incoming.EntityID()

	// Already known under its server id: refresh in place. Handles both
	// a repeated push and the echo of a create the HTTP path confirmed
	// first, without duplication or reordering.
	if _, ok := r.cache.Get(id); ok {
		r.cache.Upsert(incoming)
		return
	}

	// The echo of our own optimistic write: promote the pending entry,
	// keeping its list position.
	if pendingID, ok := r.findPending(incoming); ok {
		r.cache.ReplaceKey(pendingID, id, incoming)
		logger.Debug("Promoted pending entity", "temp_id", pendingID, "id", id)
		return
	}

	r.insertOrdered(incoming)
}

func (r *Reconciler[E]) findPending(incoming E) (string, bool) {
	if r.cfg.IsPending == nil || r.cfg.Matches == nil {
		return "", false
	}
	for _, entry := range r.cache.List() {
		if !r.cfg.IsPending(entry) || !r.cfg.Matches(entry, incoming) {
			continue
		}
		if r.cfg.CreatedAt != nil {
			gap := r.cfg.CreatedAt(incoming).Sub(r.cfg.CreatedAt(entry))
			if gap < 0 {
				gap = -gap
			}
			if gap > r.cfg.Window {
				continue
			}
		}
		return entry.EntityID(), true
	}
	return "", false
}

// insertOrdered places the entity so the list stays in ascending
// creation-time order.
func (r *Reconciler[E]) insertOrdered(incoming E) {
	if r.cfg.CreatedAt == nil {
		r.cache.Upsert(incoming)
		return
	}

	createdAt := r.cfg.CreatedAt(incoming)
	idx := r.cache.Len()
	for i, entry := range r.cache.List() {
		at := r.cfg.CreatedAt(entry)
		if !at.IsZero() && at.After(createdAt) {
			idx = i
			break
		}
	}
	r.cache.InsertAt(idx, incoming)
}
