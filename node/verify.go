// Package node ties the proof core to a trusted header chain: it accepts
// blocks, builds proofs for watched transactions and answers whether a
// stored proof still binds to a stored header.
package node

import (
	"bitspv.dev/wallet/consensus"
	"bitspv.dev/wallet/spv"
)

// VerifyProof checks a proof against a header the caller trusts. It
// returns false when the header is not the proof's block or when the
// folded merkle root differs from the header's commitment. A mismatch is
// an outcome, not an error: errors are reserved for malformed headers.
func VerifyProof(pt *spv.ProvedTransaction, headerBytes []byte) (bool, error) {
	hash, err := consensus.BlockHash(headerBytes)
	if err != nil {
		return false, err
	}
	if hash != pt.BlockHash() {
		return false, nil
	}
	header, err := consensus.ParseBlockHeaderBytes(headerBytes)
	if err != nil {
		return false, err
	}
	return pt.MerkleRoot() == header.MerkleRoot, nil
}
