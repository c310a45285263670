package consensus

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // the consensus rules predate the deprecation
)

// DoubleSha256 is Bitcoin's two-pass SHA-256, used for txids, block
// hashes and every merkle tree level.
func DoubleSha256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// HashMerkleNode combines two child hashes into their parent node,
// left operand first.
func HashMerkleNode(left, right [32]byte) [32]byte {
	var pre [64]byte
	copy(pre[:32], left[:])
	copy(pre[32:], right[:])
	return DoubleSha256(pre[:])
}

// Hash160 is SHA-256 followed by RIPEMD-160, the digest behind P2PKH
// and P2SH script payloads.
func Hash160(b []byte) [20]byte {
	first := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(first[:])
	var out [20]byte
	copy(out[:], r.Sum(nil))
	return out
}
