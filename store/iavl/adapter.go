package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/iov-one/sigvault/errors"
	"github.com/iov-one/sigvault/store"
)

// number of tree nodes kept in memory before evicting to disk
const cacheSize = 10000

// CommitStore manages a iavl committed state backed by a disk database.
// All writes must go through a CacheWrap and become durable on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with a leveldb backing in the
// given directory.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, errors.Wrap(err, "leveldb open")
	}
	return CommitStoreWithDB(db), nil
}

// CommitStoreWithDB creates a store on top of any tendermint compatible
// database engine. Use dbm.NewMemDB() for a throwaway instance in tests.
func CommitStoreWithDB(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}
}

// Get returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// Has checks if a key exists.
func (s CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// CacheWrap gives us a savepoint to perform actions. All writes stay in
// memory until Write is called on the wrap and Commit on this store.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, &treeBatch{tree: s.tree}, nil)
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "save version")
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return errors.Wrap(err, "load tree")
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// treeBatch applies parked operations to the working tree on Write.
type treeBatch struct {
	tree *iavl.MutableTree
	ops  []store.Op
}

var _ store.Batch = (*treeBatch)(nil)

func (b *treeBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *treeBatch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *treeBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(treeWriter{b.tree}); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// treeWriter adapts the tree to the SetDeleter interface used by Op.
type treeWriter struct {
	tree *iavl.MutableTree
}

func (w treeWriter) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w treeWriter) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}
