package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/sigvault/errors"
	"github.com/iov-one/sigvault/store"
)

type counterModel struct {
	Count int64 `json:"count"`
}

func (c *counterModel) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func TestBucketPutOneRoundTrip(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	key := []byte("first")
	if err := b.Put(db, key, &counterModel{Count: 11}); err != nil {
		t.Fatalf("cannot store: %+v", err)
	}

	var loaded counterModel
	if err := b.One(db, key, &loaded); err != nil {
		t.Fatalf("cannot load: %+v", err)
	}
	if loaded.Count != 11 {
		t.Fatalf("unexpected state: %d", loaded.Count)
	}

	if ok, err := b.Has(db, key); err != nil || !ok {
		t.Fatalf("entity must exist: %v %+v", ok, err)
	}
}

func TestBucketOneMissing(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	var dest counterModel
	if err := b.One(db, []byte("unknown"), &dest); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want a not found error, got %+v", err)
	}
}

func TestBucketPutRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	err := b.Put(db, []byte("bad"), &counterModel{Count: -1})
	if !errors.ErrModel.Is(err) {
		t.Fatalf("want a model error, got %+v", err)
	}
}

func TestBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts")

	key := []byte("gone")
	if err := b.Put(db, key, &counterModel{Count: 1}); err != nil {
		t.Fatalf("cannot store: %+v", err)
	}
	if err := b.Delete(db, key); err != nil {
		t.Fatalf("cannot delete: %+v", err)
	}
	if ok, _ := b.Has(db, key); ok {
		t.Fatal("entity must be gone")
	}
	// deleting a missing key is not an error
	if err := b.Delete(db, key); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestBucketNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	NewBucket("Bad Name!")
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("test", "id")

	if n, _, err := s.Latest(db); err != nil || n != 0 {
		t.Fatalf("fresh sequence must be zero: %d %+v", n, err)
	}

	for i := int64(1); i < 10; i++ {
		n, err := s.NextInt(db)
		if err != nil {
			t.Fatalf("cannot increment: %+v", err)
		}
		if n != i {
			t.Fatalf("want %d, got %d", i, n)
		}
	}

	// byte representation keeps the order
	a, err := s.NextVal(db)
	if err != nil {
		t.Fatalf("cannot increment: %+v", err)
	}
	b, err := s.NextVal(db)
	if err != nil {
		t.Fatalf("cannot increment: %+v", err)
	}
	if bytes.Compare(a, b) != -1 {
		t.Fatal("sequence values must be ordered")
	}
}
