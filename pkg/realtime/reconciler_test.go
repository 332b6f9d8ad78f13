package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslanonur06/connectme/cli/pkg/cache"
)

type message struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	Pending   bool
}

func (m message) EntityID() string { return m.ID }

func newMessageReconciler(c *cache.Cache[message], identity func() string) *Reconciler[message] {
	return NewReconciler(c, ReconcilerConfig[message]{
		IsPending: func(m message) bool { return m.Pending },
		Matches: func(pending, incoming message) bool {
			return pending.AuthorID == incoming.AuthorID && pending.Content == incoming.Content
		},
		CreatedAt: func(m message) time.Time { return m.CreatedAt },
		Window:    10 * time.Second,
		Identity:  identity,
	})
}

func TestMergePromotesMatchingPending(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Upsert(message{ID: "m1", CreatedAt: base.Add(-time.Minute)})
	c.Upsert(message{ID: "temp-1700000000", AuthorID: "user-1", Content: "hello", CreatedAt: base, Pending: true})
	c.Upsert(message{ID: "m2", CreatedAt: base.Add(time.Minute)})

	r.Merge(message{ID: "msg_abc", AuthorID: "user-1", Content: "hello", CreatedAt: base.Add(time.Second)})

	require.Equal(t, 3, c.Len(), "echo of own write must not duplicate")
	assert.Equal(t, 1, c.IndexOf("msg_abc"), "promotion keeps the pending slot")
	assert.Equal(t, -1, c.IndexOf("temp-1700000000"))
	got, _ := c.Get("msg_abc")
	assert.False(t, got.Pending)
}

func TestMergeAppendsForeignEntity(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	base := time.Now()
	c.Upsert(message{ID: "m1", CreatedAt: base.Add(-time.Minute)})

	r.Merge(message{ID: "m2", AuthorID: "user-2", Content: "hi there", CreatedAt: base})

	require.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.IndexOf("m2"))
}

func TestMergeIsIdempotent(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	incoming := message{ID: "m1", AuthorID: "user-2", Content: "hi", CreatedAt: time.Now()}
	r.Merge(incoming)
	after := c.Snapshot()

	r.Merge(incoming)

	assert.Equal(t, after, c.Snapshot(), "applying the same push twice equals applying it once")
}

func TestMergeAfterHTTPConfirmationDoesNotDuplicate(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	// HTTP confirmation already promoted the pending entry.
	confirmed := message{ID: "msg_abc", AuthorID: "user-1", Content: "hello", CreatedAt: time.Now()}
	c.Upsert(confirmed)

	r.Merge(confirmed)

	assert.Equal(t, 1, c.Len())
}

func TestMergeInsertsInCreationTimeOrder(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Upsert(message{ID: "m1", CreatedAt: base})
	c.Upsert(message{ID: "m3", CreatedAt: base.Add(2 * time.Minute)})

	// Push arrives out of order relative to creation time.
	r.Merge(message{ID: "m2", AuthorID: "user-2", Content: "late", CreatedAt: base.Add(time.Minute)})

	assert.Equal(t, 0, c.IndexOf("m1"))
	assert.Equal(t, 1, c.IndexOf("m2"))
	assert.Equal(t, 2, c.IndexOf("m3"))
}

func TestMergeOutsideWindowDoesNotPromote(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Upsert(message{ID: "temp-1", AuthorID: "user-1", Content: "hello", CreatedAt: base, Pending: true})

	// Same author and content, but created a minute apart: a different
	// logical message, not an echo.
	r.Merge(message{ID: "msg_new", AuthorID: "user-1", Content: "hello", CreatedAt: base.Add(time.Minute)})

	assert.Equal(t, 2, c.Len())
	assert.NotEqual(t, -1, c.IndexOf("temp-1"))
	assert.NotEqual(t, -1, c.IndexOf("msg_new"))
}

func TestMergeNoopWhenSignedOut(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "" })

	r.Merge(message{ID: "m1", AuthorID: "user-2", Content: "hi", CreatedAt: time.Now()})

	assert.Equal(t, 0, c.Len())
}

func TestMergeContentMismatchDoesNotPromote(t *testing.T) {
	c := cache.New[message]()
	r := newMessageReconciler(c, func() string { return "user-1" })

	base := time.Now()
	c.Upsert(message{ID: "temp-1", AuthorID: "user-1", Content: "hello", CreatedAt: base, Pending: true})

	r.Merge(message{ID: "msg_x", AuthorID: "user-1", Content: "different", CreatedAt: base})

	assert.Equal(t, 2, c.Len())
}

func TestDefaultWindowApplied(t *testing.T) {
	c := cache.New[message]()
	r := NewReconciler(c, ReconcilerConfig[message]{})

	assert.Equal(t, 10*time.Second, r.cfg.Window)
}
