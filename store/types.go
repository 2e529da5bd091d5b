package store

import "github.com/iov-one/sigvault"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = sigvault.ReadOnlyKVStore
type KVStore = sigvault.KVStore
type SetDeleter = sigvault.SetDeleter
type Batch = sigvault.Batch
type CacheableKVStore = sigvault.CacheableKVStore
type KVCacheWrap = sigvault.KVCacheWrap
type CommitKVStore = sigvault.CommitKVStore
type CommitID = sigvault.CommitID
