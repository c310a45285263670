package consensus

// MerkleRootTxids computes the Bitcoin merkle root of an ordered txid
// list. Leaves are the txids themselves; at each level consecutive pairs
// hash into their parent, and an odd trailing hash pairs with a copy of
// itself. A single txid is its own root.
func MerkleRootTxids(txids [][32]byte) ([32]byte, error) {
	var zero [32]byte
	if len(txids) == 0 {
		return zero, Err(PROOF_ERR_NO_LEAVES, "merkle: empty tx list")
	}

	level := append(make([][32]byte, 0, len(txids)), txids...)
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left // duplication rule for the odd tail
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, HashMerkleNode(left, right))
		}
		level = next
	}
	return level[0], nil
}
