package iavl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func TestCommitStoreWriteCommit(t *testing.T) {
	db := CommitStoreWithDB(dbm.NewMemDB())
	require.NoError(t, db.LoadLatestVersion())

	k, v := []byte("key"), []byte("value")

	cache := db.CacheWrap()
	require.NoError(t, cache.Set(k, v))

	// not visible on the committed store before Write
	got, err := db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	got, err = db.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	id, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)
	assert.Equal(t, id.Version, db.LatestVersion().Version)
}

func TestCommitStoreDiscard(t *testing.T) {
	db := CommitStoreWithDB(dbm.NewMemDB())
	require.NoError(t, db.LoadLatestVersion())

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("gone"), []byte("soon")))
	cache.Discard()

	got, err := db.Get([]byte("gone"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
