// Package store persists the SPV client's trusted headers and
// transaction proofs in a single bbolt file.
package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"bitspv.dev/wallet/consensus"
	"bitspv.dev/wallet/spv"
)

var (
	bucketHeaders = []byte("headers_by_hash")
	bucketHeights = []byte("hash_by_height")
	bucketProofs  = []byte("proofs_by_txid")
	bucketMeta    = []byte("meta")
)

var keyTipHeight = []byte("tip_height")

type DB struct {
	path string
	db   *bolt.DB
}

func Open(datadir string) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := os.MkdirAll(datadir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(datadir, "spv.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	d := &DB{path: path, db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketHeaders, bucketHeights, bucketProofs, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) Path() string { return d.path }

// PutHeader stores an 80-byte header as the canonical header at height.
// Height 0 starts the chain; any later height must extend the previous
// canonical header, which pins the stored chain to one lineage.
func (d *DB) PutHeader(height uint64, headerBytes []byte) error {
	hash, err := consensus.BlockHash(headerBytes)
	if err != nil {
		return err
	}
	header, err := consensus.ParseBlockHeaderBytes(headerBytes)
	if err != nil {
		return err
	}

	return d.db.Update(func(tx *bolt.Tx) error {
		heights := tx.Bucket(bucketHeights)
		if height > 0 {
			prev := heights.Get(u64be(height - 1))
			if prev == nil {
				return consensus.Err(consensus.STORE_ERR_LINKAGE,
					fmt.Sprintf("no canonical header at height %d", height-1))
			}
			if !bytesEqual32(prev, header.PrevBlockHash) {
				return consensus.Err(consensus.STORE_ERR_LINKAGE,
					fmt.Sprintf("header at height %d does not extend canonical parent", height))
			}
		}
		if err := tx.Bucket(bucketHeaders).Put(hash[:], headerBytes); err != nil {
			return err
		}
		if err := heights.Put(u64be(height), hash[:]); err != nil {
			return err
		}

		meta := tx.Bucket(bucketMeta)
		if cur := meta.Get(keyTipHeight); cur == nil || binary.BigEndian.Uint64(cur) < height {
			return meta.Put(keyTipHeight, u64be(height))
		}
		return nil
	})
}

func (d *DB) HeaderByHash(hash [32]byte) ([]byte, error) {
	var out []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketHeaders).Get(hash[:])
		if v == nil {
			return consensus.Err(consensus.STORE_ERR_NOT_FOUND, "header not found")
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (d *DB) CanonicalHash(height uint64) ([32]byte, bool, error) {
	var out [32]byte
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketHeights).Get(u64be(height))
		if v == nil {
			return nil
		}
		copy(out[:], v)
		found = true
		return nil
	})
	return out, found, err
}

func (d *DB) Tip() (uint64, [32]byte, bool, error) {
	var (
		height uint64
		hash   [32]byte
		found  bool
	)
	err := d.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketMeta).Get(keyTipHeight)
		if cur == nil {
			return nil
		}
		height = binary.BigEndian.Uint64(cur)
		v := tx.Bucket(bucketHeights).Get(cur)
		if v == nil {
			return fmt.Errorf("tip height %d has no canonical hash", height)
		}
		copy(hash[:], v)
		found = true
		return nil
	})
	return height, hash, found, err
}

// PutProof stores a proof keyed by its txid, in the proof's own storage
// encoding.
func (d *DB) PutProof(pt *spv.ProvedTransaction) error {
	if pt == nil {
		return fmt.Errorf("nil proof")
	}
	txid := pt.Txid()
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProofs).Put(txid[:], pt.Encode())
	})
}

func (d *DB) GetProof(txid [32]byte) (*spv.ProvedTransaction, error) {
	var raw []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketProofs).Get(txid[:])
		if v == nil {
			return consensus.Err(consensus.STORE_ERR_NOT_FOUND, "proof not found")
		}
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return spv.Decode(raw)
}

// DeleteProof removes a stored proof, e.g. once the transaction is
// buried deep enough that the client no longer cares.
func (d *DB) DeleteProof(txid [32]byte) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProofs).Delete(txid[:])
	})
}

func u64be(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func bytesEqual32(b []byte, h [32]byte) bool {
	if len(b) != 32 {
		return false
	}
	var a [32]byte
	copy(a[:], b)
	return a == h
}
