package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "github.com/caerux/e-commerce-website/internal/domain/cart"
)

func tempStore(t *testing.T) (*FileCartStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carts.json")
	return NewFileCartStore(path, nil), path
}

func TestFileCartStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	s, _ := tempStore(t)

	snap, err := s.Load(context.Background(), "guest")
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestFileCartStore_LoadCorruptBlobReturnsEmpty(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o644))

	snap, err := s.Load(context.Background(), "guest")
	require.NoError(t, err, "corrupt blob must recover, never error")
	assert.True(t, snap.IsEmpty())
}

func TestFileCartStore_SaveLoadRoundTrip(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "guest", cartdom.Snapshot{"A": 2, "B": 1}))
	require.NoError(t, s.Save(ctx, "7", cartdom.Snapshot{"A": 3}))

	guest, err := s.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, cartdom.Snapshot{"A": 2, "B": 1}, guest)

	user, err := s.Load(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, cartdom.Snapshot{"A": 3}, user)
}

func TestFileCartStore_SavePreservesOtherKeys(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "guest", cartdom.Snapshot{"A": 1}))
	require.NoError(t, s.Save(ctx, "7", cartdom.Snapshot{"B": 2}))
	require.NoError(t, s.Save(ctx, "guest", cartdom.Snapshot{"A": 5}))

	user, err := s.Load(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, cartdom.Snapshot{"B": 2}, user)
}

func TestFileCartStore_Delete(t *testing.T) {
	s, _ := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "guest", cartdom.Snapshot{"A": 1}))
	require.NoError(t, s.Delete(ctx, "guest"))

	snap, err := s.Load(ctx, "guest")
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())

	// Deleting an absent key is a no-op.
	require.NoError(t, s.Delete(ctx, "nobody"))
}

func TestFileCartStore_CorruptEntryDoesNotBlockOthers(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	// Entry for "a" is malformed; "b" must still load.
	blob := `{"a": "garbage", "b": {"X": 2}}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	snapA, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, snapA.IsEmpty())

	snapB, err := s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, cartdom.Snapshot{"X": 2}, snapB)
}

func TestFileCartStore_UnknownTopLevelKeysIgnoredButKept(t *testing.T) {
	s, path := tempStore(t)
	ctx := context.Background()

	blob := `{"guest": {"A": 1}, "futureField": {"whatever": 3}}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	snap, err := s.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, cartdom.Snapshot{"A": 1}, snap)
}

func TestMemoryCartStore_Isolation(t *testing.T) {
	s := NewMemoryCartStore()
	ctx := context.Background()

	in := cartdom.Snapshot{"A": 1}
	require.NoError(t, s.Save(ctx, "guest", in))
	in["A"] = 99

	out, err := s.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, 1, out["A"], "store must hold its own copy")

	out["A"] = 42
	again, err := s.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, 1, again["A"], "loads must return independent copies")
}

func TestBuildCartStore(t *testing.T) {
	st, err := BuildCartStore("", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCartStore{}, st)

	st, err = BuildCartStore("file", FactoryOptions{FilePath: filepath.Join(t.TempDir(), "c.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileCartStore{}, st)

	_, err = BuildCartStore("firestore", FactoryOptions{})
	assert.Error(t, err, "firestore without a client must fail loudly")

	_, err = BuildCartStore("bogus", FactoryOptions{})
	assert.Error(t, err)
}
