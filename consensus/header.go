package consensus

// BlockHeader is the 80-byte Bitcoin block header.
type BlockHeader struct {
	Version       uint32
	PrevBlockHash [32]byte
	MerkleRoot    [32]byte
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

const BLOCK_HEADER_BYTES = 80

// ParseBlockHeaderBytes parses the first 80 bytes of b as a block header.
// Trailing bytes are the caller's concern (a header inside a full block
// is followed by the tx list).
func ParseBlockHeaderBytes(b []byte) (BlockHeader, error) {
	var h BlockHeader
	off := 0

	version, err := readU32le(b, &off)
	if err != nil {
		return h, err
	}
	prev, err := readBytes(b, &off, 32)
	if err != nil {
		return h, err
	}
	merkle, err := readBytes(b, &off, 32)
	if err != nil {
		return h, err
	}
	ts, err := readU32le(b, &off)
	if err != nil {
		return h, err
	}
	bits, err := readU32le(b, &off)
	if err != nil {
		return h, err
	}
	nonce, err := readU32le(b, &off)
	if err != nil {
		return h, err
	}
	if off != BLOCK_HEADER_BYTES {
		return h, Err(BLOCK_ERR_PARSE, "block header length mismatch")
	}

	h.Version = version
	copy(h.PrevBlockHash[:], prev)
	copy(h.MerkleRoot[:], merkle)
	h.Timestamp = ts
	h.Bits = bits
	h.Nonce = nonce
	return h, nil
}

// BlockHeaderBytes serialises a header back to its canonical 80 bytes.
// Exact inverse of ParseBlockHeaderBytes.
func BlockHeaderBytes(h BlockHeader) []byte {
	out := make([]byte, 0, BLOCK_HEADER_BYTES)
	out = AppendU32le(out, h.Version)
	out = append(out, h.PrevBlockHash[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = AppendU32le(out, h.Timestamp)
	out = AppendU32le(out, h.Bits)
	out = AppendU32le(out, h.Nonce)
	return out
}

// BlockHash is the double-SHA256 of the serialised header.
func BlockHash(headerBytes []byte) ([32]byte, error) {
	if len(headerBytes) != BLOCK_HEADER_BYTES {
		var zero [32]byte
		return zero, Err(BLOCK_ERR_PARSE, "block hash: invalid header length")
	}
	return DoubleSha256(headerBytes), nil
}
