package consensus

import "testing"

func testTxid(i byte) [32]byte {
	return DoubleSha256([]byte{'t', 'x', i})
}

func TestMerkleRootTxidsSingle(t *testing.T) {
	id := testTxid(1)
	root, err := MerkleRootTxids([][32]byte{id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A lone txid is its own root; no hashing happens.
	if root != id {
		t.Fatalf("single-tx root must equal the txid")
	}
}

func TestMerkleRootTxidsTwo(t *testing.T) {
	a, b := testTxid(1), testTxid(2)
	root, err := MerkleRootTxids([][32]byte{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := HashMerkleNode(a, b); root != want {
		t.Fatalf("root mismatch")
	}
}

func TestMerkleRootTxidsOddDuplicatesTail(t *testing.T) {
	a, b, c := testTxid(1), testTxid(2), testTxid(3)
	root, err := MerkleRootTxids([][32]byte{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := HashMerkleNode(HashMerkleNode(a, b), HashMerkleNode(c, c))
	if root != want {
		t.Fatalf("odd level must pair the tail with itself")
	}
}

func TestMerkleRootTxidsEmpty(t *testing.T) {
	_, err := MerkleRootTxids(nil)
	if err == nil {
		t.Fatalf("expected error for empty leaf set")
	}
	if got := CodeOf(err); got != PROOF_ERR_NO_LEAVES {
		t.Fatalf("code=%s, want %s", got, PROOF_ERR_NO_LEAVES)
	}
}
