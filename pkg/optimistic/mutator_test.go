package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arslanonur06/connectme/cli/pkg/cache"
	clierrors "github.com/arslanonur06/connectme/cli/pkg/errors"
)

type post struct {
	ID      string
	Body    string
	Liked   bool
	Likes   int
	Saved   bool
	Saves   int
	Pending bool
}

func (p post) EntityID() string { return p.ID }

func signedIn() string  { return "user-1" }
func signedOut() string { return "" }

func likeApply(p post) post {
	p.Liked = true
	p.Likes++
	return p
}

func likeRevert(p post) post {
	p.Liked = false
	p.Likes--
	return p
}

func ok(context.Context) error   { return nil }
func boom(context.Context) error { return errors.New("remote failed") }

func newMutator(t *testing.T, identity func() string) (*Mutator[post], *cache.Cache[post]) {
	t.Helper()
	c := cache.New[post]()
	return New(c, context.Background(), identity), c
}

func TestToggleAppliesFlagAndCounterTogether(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "p1", Likes: 4})

	err := m.Toggle(context.Background(), "p1", likeApply, likeRevert, ok)

	require.NoError(t, err)
	got, _ := c.Get("p1")
	assert.True(t, got.Liked)
	assert.Equal(t, 5, got.Likes)
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "p1", Likes: 4})
	before := c.Snapshot()

	err := m.Toggle(context.Background(), "p1", likeApply, likeRevert, boom)

	require.Error(t, err)
	assert.Equal(t, before, c.Snapshot(), "cache after rollback must deep-equal pre-mutation cache")
}

// Flag and counter always move together, whatever the order of outcomes.
func TestToggleConsistencyAcrossSequences(t *testing.T) {
	type step struct {
		apply, revert func(post) post
		fail          bool
	}
	unlikeApply := likeRevert
	unlikeRevert := likeApply

	sequences := [][]step{
		{{likeApply, likeRevert, false}},
		{{likeApply, likeRevert, true}},
		{{likeApply, likeRevert, false}, {unlikeApply, unlikeRevert, false}},
		{{likeApply, likeRevert, false}, {unlikeApply, unlikeRevert, true}},
		{{likeApply, likeRevert, true}, {likeApply, likeRevert, false}},
	}

	for i, seq := range sequences {
		m, c := newMutator(t, signedIn)
		baseline := 4
		c.Upsert(post{ID: "p1", Likes: baseline})

		for _, s := range seq {
			send := ok
			if s.fail {
				send = boom
			}
			_ = m.Toggle(context.Background(), "p1", s.apply, s.revert, send)
		}

		got, _ := c.Get("p1")
		if got.Liked {
			assert.Equal(t, baseline+1, got.Likes, "sequence %d: flag true implies counter incremented", i)
		} else {
			assert.Equal(t, baseline, got.Likes, "sequence %d: flag false implies baseline counter", i)
		}
	}
}

// A rollback reverts only its own fields; an unrelated mutation that
// resolved in between survives.
func TestRollbackDoesNotClobberInterleavedMutation(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "p1", Likes: 4, Saves: 2})

	saveApply := func(p post) post { p.Saved = true; p.Saves++; return p }
	saveRevert := func(p post) post { p.Saved = false; p.Saves--; return p }

	// Like is issued first and will fail; while it is in flight, a save
	// is issued and succeeds.
	likeDone := make(chan struct{})
	likeSend := func(ctx context.Context) error {
		require.NoError(t, m.Toggle(ctx, "p1", saveApply, saveRevert, ok))
		close(likeDone)
		return errors.New("like failed")
	}

	err := m.Toggle(context.Background(), "p1", likeApply, likeRevert, likeSend)
	<-likeDone

	require.Error(t, err)
	got, _ := c.Get("p1")
	assert.False(t, got.Liked)
	assert.Equal(t, 4, got.Likes)
	assert.True(t, got.Saved, "interleaved successful save must survive the like rollback")
	assert.Equal(t, 3, got.Saves)
}

func TestCreateReplacesTempIDPreservingPosition(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "m1"})
	c.Upsert(post{ID: "m2"})

	tempID := NewTempID()
	pending := post{ID: tempID, Body: "hello", Pending: true}

	confirmed, err := m.Create(context.Background(), pending, func(context.Context) (post, error) {
		// Another entity lands behind the pending one while the send
		// is in flight; the promotion must not move the pending slot.
		c.Upsert(post{ID: "m3"})
		return post{ID: "msg_abc", Body: "hello"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "msg_abc", confirmed.ID)
	// Pending was appended at position 2; msg_abc must sit there now.
	assert.Equal(t, 2, c.IndexOf("msg_abc"))
	assert.Equal(t, 3, c.IndexOf("m3"))
	assert.Equal(t, -1, c.IndexOf(tempID))

	count := 0
	for _, p := range c.List() {
		if p.Body == "hello" {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one representation of the created entity")
}

func TestCreateRollsBackOnFailure(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "m1"})
	before := c.Snapshot()

	pending := post{ID: NewTempID(), Body: "hello", Pending: true}
	_, err := m.Create(context.Background(), pending, func(context.Context) (post, error) {
		return post{}, errors.New("send failed")
	})

	require.Error(t, err)
	assert.Equal(t, before, c.Snapshot())
}

func TestCreateToleratesEchoWinningRace(t *testing.T) {
	m, c := newMutator(t, signedIn)

	tempID := NewTempID()
	pending := post{ID: tempID, Body: "hello", Pending: true}

	_, err := m.Create(context.Background(), pending, func(context.Context) (post, error) {
		// Simulate the realtime echo merging the confirmed entity
		// before the HTTP response lands.
		c.ReplaceKey(tempID, "msg_abc", post{ID: "msg_abc", Body: "hello"})
		return post{ID: "msg_abc", Body: "hello"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	_, found := c.Get("msg_abc")
	assert.True(t, found)
}

func TestDeleteRestoresAtOriginalOrdinal(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "a"})
	c.Upsert(post{ID: "b"})
	c.Upsert(post{ID: "c"})
	before := c.Snapshot()

	err := m.Delete(context.Background(), "b", boom)

	require.Error(t, err)
	assert.Equal(t, before, c.Snapshot(), "failed delete must restore the exact pre-mutation cache")
}

func TestDeleteRemovesOnSuccess(t *testing.T) {
	m, c := newMutator(t, signedIn)
	c.Upsert(post{ID: "a"})

	err := m.Delete(context.Background(), "a", ok)

	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestOperationsRefusedWithoutIdentity(t *testing.T) {
	m, c := newMutator(t, signedOut)
	c.Upsert(post{ID: "p1", Likes: 4})
	before := c.Snapshot()

	err := m.Toggle(context.Background(), "p1", likeApply, likeRevert, ok)
	var cliErr *clierrors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierrors.ErrorTypeNoIdentity, cliErr.Type)
	assert.Equal(t, before, c.Snapshot(), "no local mutation without an identity")

	_, err = m.Create(context.Background(), post{ID: NewTempID()}, func(context.Context) (post, error) {
		return post{}, nil
	})
	require.ErrorAs(t, err, &cliErr)

	err = m.Delete(context.Background(), "p1", ok)
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, before, c.Snapshot())
}

func TestScopeEndStopsCacheWrites(t *testing.T) {
	c := cache.New[post]()
	scope, cancel := context.WithCancel(context.Background())
	m := New(c, scope, signedIn)
	c.Upsert(post{ID: "p1", Likes: 4})

	err := m.Toggle(context.Background(), "p1", likeApply, likeRevert, func(context.Context) error {
		cancel() // view unmounts while the call is in flight
		return errors.New("remote failed")
	})

	require.Error(t, err)
	got, _ := c.Get("p1")
	// No rollback after scope end: the cache is dead, nothing may touch it.
	assert.True(t, got.Liked)
	assert.Equal(t, 5, got.Likes)
}

func TestNewTempID(t *testing.T) {
	id1 := NewTempID()
	id2 := NewTempID()

	assert.True(t, IsTempID(id1))
	assert.True(t, IsTempID(id2))
	assert.NotEqual(t, id1, id2)
	assert.False(t, IsTempID("msg_abc"))
}
