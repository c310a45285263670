package node

import (
	"errors"

	"bitspv.dev/wallet/consensus"
	"bitspv.dev/wallet/node/store"
	"bitspv.dev/wallet/spv"
)

// Client is a minimal SPV client: it keeps a watch list of txids,
// accepts full blocks as they arrive, and persists a header plus an
// inclusion proof for every watched transaction it sees. Not safe for
// concurrent use; callers drive it from one goroutine, like the rest of
// the sync path.
type Client struct {
	db      *store.DB
	watched map[[32]byte]bool
}

func NewClient(db *store.DB) (*Client, error) {
	if db == nil {
		return nil, errors.New("nil store")
	}
	return &Client{
		db:      db,
		watched: make(map[[32]byte]bool),
	}, nil
}

// Watch adds a txid to the watch list. Blocks accepted from now on are
// scanned for it.
func (c *Client) Watch(txid [32]byte) {
	c.watched[txid] = true
}

// Unwatch removes a txid from the watch list. Any stored proof stays
// until DeleteProof.
func (c *Client) Unwatch(txid [32]byte) {
	delete(c.watched, txid)
}

// AcceptBlock validates a serialised block's merkle commitment, stores
// its header at the given height, and builds and persists a proof for
// every watched transaction found in it. It returns the txids proven
// from this block.
func (c *Client) AcceptBlock(raw []byte, height uint64) ([][32]byte, error) {
	blk, err := consensus.ParseBlock(raw)
	if err != nil {
		return nil, err
	}
	if err := consensus.CheckBlockMerkle(blk); err != nil {
		return nil, err
	}
	if err := c.db.PutHeader(height, blk.HeaderBytes); err != nil {
		return nil, err
	}

	var proven [][32]byte
	for txnr, txid := range blk.Txids {
		if !c.watched[txid] {
			continue
		}
		pt, err := spv.NewProvedTransaction(blk, txnr)
		if err != nil {
			return proven, err
		}
		if err := c.db.PutProof(pt); err != nil {
			return proven, err
		}
		proven = append(proven, txid)
	}
	return proven, nil
}

// Confirmed reports whether a stored proof for txid verifies against the
// stored header of its block. A missing proof or header means "not
// confirmed", not an error.
func (c *Client) Confirmed(txid [32]byte) (bool, error) {
	pt, err := c.db.GetProof(txid)
	if err != nil {
		if consensus.CodeOf(err) == consensus.STORE_ERR_NOT_FOUND {
			return false, nil
		}
		return false, err
	}
	headerBytes, err := c.db.HeaderByHash(pt.BlockHash())
	if err != nil {
		if consensus.CodeOf(err) == consensus.STORE_ERR_NOT_FOUND {
			return false, nil
		}
		return false, err
	}
	return VerifyProof(pt, headerBytes)
}
