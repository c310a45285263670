// Package spv builds and evaluates merkle inclusion proofs for
// transactions inside Bitcoin blocks. A ProvedTransaction carries a
// transaction, its authentication path and the hash of the block it was
// proven against; a consumer re-derives the merkle root from the path
// and compares it to a header it already trusts.
package spv

import (
	"fmt"

	"bitspv.dev/wallet/consensus"
)

// PathStep is one level of an authentication path. Sibling is the hash
// paired with the tracked node at this level; SiblingBefore reports
// whether the sibling is the left operand when re-hashing upward.
type PathStep struct {
	SiblingBefore bool
	Sibling       [32]byte
}

// ProvedTransaction is a transaction with the SPV proof of its inclusion
// in a block. Immutable after construction; accessors return copies.
type ProvedTransaction struct {
	txBytes   []byte
	txid      [32]byte
	path      []PathStep
	blockHash [32]byte
}

// NewProvedTransaction proves the txnr-th transaction of a parsed block.
func NewProvedTransaction(blk *consensus.Block, txnr int) (*ProvedTransaction, error) {
	if blk == nil {
		return nil, consensus.Err(consensus.PROOF_ERR_NO_LEAVES, "proof: nil block")
	}
	path, err := ComputeProof(blk.Txids, txnr)
	if err != nil {
		return nil, err
	}
	return &ProvedTransaction{
		txBytes:   append([]byte(nil), blk.TxBytes[txnr]...),
		txid:      blk.Txids[txnr],
		path:      path,
		blockHash: blk.Hash(),
	}, nil
}

// Transaction returns a copy of the proven transaction's raw bytes.
func (p *ProvedTransaction) Transaction() []byte {
	return append([]byte(nil), p.txBytes...)
}

func (p *ProvedTransaction) Txid() [32]byte {
	return p.txid
}

func (p *ProvedTransaction) BlockHash() [32]byte {
	return p.blockHash
}

// Path returns a copy of the authentication path, leaf pairing first.
func (p *ProvedTransaction) Path() []PathStep {
	return append([]PathStep(nil), p.path...)
}

// MerkleRoot folds the authentication path back into the root the source
// block must have committed to. The result is only meaningful once
// compared against a trusted header's merkle root; a forged or stale
// proof folds to a value that simply fails that comparison.
func (p *ProvedTransaction) MerkleRoot() [32]byte {
	acc := p.txid
	for _, step := range p.path {
		if step.SiblingBefore {
			acc = consensus.HashMerkleNode(step.Sibling, acc)
		} else {
			acc = consensus.HashMerkleNode(acc, step.Sibling)
		}
	}
	return acc
}

// ComputeProof derives the authentication path for ids[track] by
// rebuilding the merkle tree level by level. At each level the tracked
// node's pair partner is recorded together with its side; an odd level
// pairs its tail with a copy of itself, so a tracked tail records its own
// hash as the sibling. The path for a single-leaf tree is empty.
func ComputeProof(ids [][32]byte, track int) ([]PathStep, error) {
	if len(ids) == 0 {
		return nil, consensus.Err(consensus.PROOF_ERR_NO_LEAVES, "proof: empty leaf set")
	}
	if track < 0 || track >= len(ids) {
		return nil, consensus.Err(consensus.PROOF_ERR_TRACK_RANGE,
			fmt.Sprintf("proof: track %d outside [0,%d)", track, len(ids)))
	}

	level := append(make([][32]byte, 0, len(ids)), ids...)
	var path []PathStep
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left // duplication rule for the odd tail
			if i+1 < len(level) {
				right = level[i+1]
			}
			switch track {
			case i:
				path = append(path, PathStep{SiblingBefore: false, Sibling: right})
			case i + 1:
				path = append(path, PathStep{SiblingBefore: true, Sibling: left})
			}
			next = append(next, consensus.HashMerkleNode(left, right))
		}
		track /= 2
		level = next
	}
	return path, nil
}
