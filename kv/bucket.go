// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket is a key prefix that partitions a shared store.
type Bucket string

func (b Bucket) key(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	return append(append(k, b...), key...)
}

// NewGetter reads src through the bucket prefix.
func (b Bucket) NewGetter(src Getter) Getter {
	return bucketGetter{b, src}
}

// NewPutter writes src through the bucket prefix.
func (b Bucket) NewPutter(src Putter) Putter {
	return bucketPutter{b, src}
}

// NewStore scopes every read and write of src, including batches, to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return bucketStore{bucketGetter{b, src}, bucketPutter{b, src}, src}
}

type bucketGetter struct {
	bucket Bucket
	src    Getter
}

func (g bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.bucket.key(key)) }
func (g bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.bucket.key(key)) }
func (g bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	bucket Bucket
	src    Putter
}

func (p bucketPutter) Put(key, val []byte) error { return p.src.Put(p.bucket.key(key), val) }
func (p bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.bucket.key(key)) }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s bucketStore) Batch(fn func(Putter) error) error {
	return s.src.Batch(func(p Putter) error {
		return fn(s.bucketGetter.bucket.NewPutter(p))
	})
}
