package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntity struct {
	ID    string
	Body  string
	Likes int
}

func (e testEntity) EntityID() string { return e.ID }

func TestUpsertPreservesInsertionOrder(t *testing.T) {
	c := New[testEntity]()

	c.Upsert(testEntity{ID: "a"})
	c.Upsert(testEntity{ID: "b"})
	c.Upsert(testEntity{ID: "c"})

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	c := New[testEntity]()

	c.Upsert(testEntity{ID: "a", Body: "first"})
	c.Upsert(testEntity{ID: "b", Body: "second"})
	c.Upsert(testEntity{ID: "a", Body: "updated"})

	require.Equal(t, 2, c.Len())
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "updated", got.Body)
	assert.Equal(t, 0, c.IndexOf("a"))
}

func TestUpdateIsAtomicReadModifyWrite(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "p1", Likes: 4})

	ok := c.Update("p1", func(e testEntity) testEntity {
		e.Likes++
		return e
	})

	require.True(t, ok)
	got, _ := c.Get("p1")
	assert.Equal(t, 5, got.Likes)

	assert.False(t, c.Update("missing", func(e testEntity) testEntity { return e }))
}

func TestRemoveReturnsOrdinal(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "a"})
	c.Upsert(testEntity{ID: "b"})
	c.Upsert(testEntity{ID: "c"})

	removed, idx, ok := c.Remove("b")
	require.True(t, ok)
	assert.Equal(t, "b", removed.ID)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, c.Len())

	_, idx, ok = c.Remove("b")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestInsertAtRestoresPosition(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "a"})
	c.Upsert(testEntity{ID: "b"})
	c.Upsert(testEntity{ID: "c"})

	removed, idx, ok := c.Remove("b")
	require.True(t, ok)

	c.InsertAt(idx, removed)

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[1].ID)
}

func TestInsertAtBeyondEndAppends(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "a"})

	c.InsertAt(99, testEntity{ID: "z"})

	assert.Equal(t, 1, c.IndexOf("z"))
}

func TestReplaceKeyPreservesOrdinal(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "m1"})
	c.Upsert(testEntity{ID: "temp-1700000000"})
	c.Upsert(testEntity{ID: "m2"})

	ok := c.ReplaceKey("temp-1700000000", "msg_abc", testEntity{ID: "msg_abc", Body: "hi"})

	require.True(t, ok)
	assert.Equal(t, 1, c.IndexOf("msg_abc"))
	assert.Equal(t, -1, c.IndexOf("temp-1700000000"))
	assert.Equal(t, 3, c.Len())
}

func TestReplaceKeyDeduplicatesAgainstEcho(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "temp-1"})
	// Realtime echo arrived first under the server id.
	c.Upsert(testEntity{ID: "msg_abc"})

	ok := c.ReplaceKey("temp-1", "msg_abc", testEntity{ID: "msg_abc", Body: "confirmed"})

	require.True(t, ok)
	assert.Equal(t, 1, c.Len())
	got, _ := c.Get("msg_abc")
	assert.Equal(t, "confirmed", got.Body)
}

func TestReplaceKeyIdempotentWhenAlreadyPromoted(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "msg_abc", Body: "old"})

	ok := c.ReplaceKey("temp-gone", "msg_abc", testEntity{ID: "msg_abc", Body: "new"})

	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
	got, _ := c.Get("msg_abc")
	assert.Equal(t, "new", got.Body)
}

func TestReplaceKeyMissingBothIsNoop(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "a"})

	ok := c.ReplaceKey("x", "y", testEntity{ID: "y"})

	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
	_, found := c.Get("y")
	assert.False(t, found)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "a", Likes: 1})

	snap := c.Snapshot()
	c.Update("a", func(e testEntity) testEntity {
		e.Likes = 99
		return e
	})

	assert.Equal(t, 1, snap[0].Likes)
}

func TestClear(t *testing.T) {
	c := New[testEntity]()
	c.Upsert(testEntity{ID: "a"})
	c.Upsert(testEntity{ID: "b"})

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.List())
}
