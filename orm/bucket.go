package orm

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a Bucket.
// Models are serialized as JSON documents, so all persisted fields must
// be exported.
type Model interface {
	Validate() error
}

// Bucket is a generic holder that stores data under a common key prefix,
// so that the same store can be shared by many packages without key
// collisions.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data. Bucket name must be a valid
// lowercase identifier, otherwise this function panics. Call it only
// during a program initialization phase.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	return append(b.prefix, key...)
}

// One loads the entity stored under given key into dest. It returns
// ErrNotFound when no entity is stored under that key.
func (b Bucket) One(db sigvault.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "bucket lookup")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot deserialize %s %X: %s", b.name, key, err)
	}
	return nil
}

// Put validates the entity and stores it under given key,
// overwriting any previous version.
func (b Bucket) Put(db sigvault.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", b.name)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot serialize %s: %s", b.name, err)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the entity stored under given key. Deleting a missing
// key is not an error.
func (b Bucket) Delete(db sigvault.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Has checks if any entity is stored under given key.
func (b Bucket) Has(db sigvault.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Sequence returns a counter scoped to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
