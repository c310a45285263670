package spv

import "bitspv.dev/wallet/consensus"

// Storage layout, in field order:
//
//	block_hash(32) | path_len CompactSize | (side(1) | sibling(32))* |
//	tx_len CompactSize | tx bytes
//
// The order and byte layout are load-bearing: reordering any field
// changes the root a decoder would fold to.

const (
	sideAfter  = 0x00
	sideBefore = 0x01
)

// Encode serialises the proof for storage or transmission.
func (p *ProvedTransaction) Encode() []byte {
	b := make([]byte, 0, 32+9+len(p.path)*33+9+len(p.txBytes))
	b = append(b, p.blockHash[:]...)
	b = consensus.AppendCompactSize(b, uint64(len(p.path)))
	for _, step := range p.path {
		side := byte(sideAfter)
		if step.SiblingBefore {
			side = sideBefore
		}
		b = append(b, side)
		b = append(b, step.Sibling[:]...)
	}
	b = consensus.AppendCompactSize(b, uint64(len(p.txBytes)))
	b = append(b, p.txBytes...)
	return b
}

// Decode rebuilds a proof from its storage form. The embedded
// transaction is re-parsed so the txid never has to be stored or
// trusted.
func Decode(b []byte) (*ProvedTransaction, error) {
	off := 0
	if len(b) < 32 {
		return nil, consensus.Err(consensus.PROOF_ERR_DECODE, "proof: truncated block hash")
	}
	var blockHash [32]byte
	copy(blockHash[:], b[:32])
	off = 32

	pathLen, n, err := consensus.DecodeCompactSize(b[off:])
	if err != nil {
		return nil, consensus.Err(consensus.PROOF_ERR_DECODE, "proof: bad path length")
	}
	off += n
	if uint64(pathLen) > uint64(len(b)-off)/33 {
		return nil, consensus.Err(consensus.PROOF_ERR_DECODE, "proof: path overflows input")
	}
	path := make([]PathStep, 0, int(pathLen))
	for i := 0; i < int(pathLen); i++ {
		side := b[off]
		if side != sideAfter && side != sideBefore {
			return nil, consensus.Err(consensus.PROOF_ERR_DECODE, "proof: invalid side byte")
		}
		var sibling [32]byte
		copy(sibling[:], b[off+1:off+33])
		path = append(path, PathStep{SiblingBefore: side == sideBefore, Sibling: sibling})
		off += 33
	}

	txLen, n, err := consensus.DecodeCompactSize(b[off:])
	if err != nil {
		return nil, consensus.Err(consensus.PROOF_ERR_DECODE, "proof: bad tx length")
	}
	off += n
	if uint64(txLen) != uint64(len(b)-off) {
		return nil, consensus.Err(consensus.PROOF_ERR_DECODE, "proof: tx length mismatch")
	}
	txBytes := append([]byte(nil), b[off:]...)
	txid, err := consensus.TxidFromBytes(txBytes)
	if err != nil {
		return nil, err
	}

	return &ProvedTransaction{
		txBytes:   txBytes,
		txid:      txid,
		path:      path,
		blockHash: blockHash,
	}, nil
}
