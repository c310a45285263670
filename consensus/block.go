package consensus

// Block is a parsed block: header plus the ordered tx list. TxBytes keeps
// each transaction's raw wire span (copied, so the block does not alias
// the input buffer).
type Block struct {
	Header      BlockHeader
	HeaderBytes []byte
	Txs         []*Tx
	Txids       [][32]byte
	TxBytes     [][]byte
}

// ParseBlock parses a complete serialised block and rejects trailing
// bytes.
func ParseBlock(b []byte) (*Block, error) {
	header, err := ParseBlockHeaderBytes(b)
	if err != nil {
		return nil, err
	}
	off := BLOCK_HEADER_BYTES

	txCountU64, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	if txCountU64 == 0 {
		return nil, Err(BLOCK_ERR_PARSE, "block has no transactions")
	}
	// Even an empty-script coinbase is 60 bytes; a looser floor still
	// rejects absurd counts before allocating.
	if txCountU64 > uint64(len(b)-off)/10+1 {
		return nil, Err(BLOCK_ERR_PARSE, "tx_count overflow")
	}
	txCount := int(txCountU64)

	blk := &Block{
		Header:      header,
		HeaderBytes: append([]byte(nil), b[:BLOCK_HEADER_BYTES]...),
		Txs:         make([]*Tx, 0, txCount),
		Txids:       make([][32]byte, 0, txCount),
		TxBytes:     make([][]byte, 0, txCount),
	}
	for i := 0; i < txCount; i++ {
		tx, txid, _, n, err := ParseTx(b[off:])
		if err != nil {
			return nil, err
		}
		blk.Txs = append(blk.Txs, tx)
		blk.Txids = append(blk.Txids, txid)
		blk.TxBytes = append(blk.TxBytes, append([]byte(nil), b[off:off+n]...))
		off += n
	}
	if off != len(b) {
		return nil, Err(BLOCK_ERR_PARSE, "trailing bytes after block")
	}
	return blk, nil
}

// Hash is the block's identifying hash, double-SHA256 of its header.
func (blk *Block) Hash() [32]byte {
	return DoubleSha256(blk.HeaderBytes)
}

// CheckBlockMerkle recomputes the merkle root over the block's txids and
// compares it to the root the header commits to.
func CheckBlockMerkle(blk *Block) error {
	root, err := MerkleRootTxids(blk.Txids)
	if err != nil {
		return err
	}
	if root != blk.Header.MerkleRoot {
		return Err(BLOCK_ERR_MERKLE_INVALID, "merkle_root mismatch")
	}
	return nil
}
