package consensus

import "encoding/binary"

func readU32le(b []byte, off *int) (uint32, error) {
	if *off+4 > len(b) {
		return 0, Err(TX_ERR_PARSE, "unexpected EOF (u32le)")
	}
	v := binary.LittleEndian.Uint32(b[*off : *off+4])
	*off += 4
	return v, nil
}

func readU64le(b []byte, off *int) (uint64, error) {
	if *off+8 > len(b) {
		return 0, Err(TX_ERR_PARSE, "unexpected EOF (u64le)")
	}
	v := binary.LittleEndian.Uint64(b[*off : *off+8])
	*off += 8
	return v, nil
}

func readBytes(b []byte, off *int, n int) ([]byte, error) {
	if n < 0 {
		return nil, Err(TX_ERR_PARSE, "negative length")
	}
	if *off+n > len(b) {
		return nil, Err(TX_ERR_PARSE, "unexpected EOF (bytes)")
	}
	v := b[*off : *off+n]
	*off += n
	return v, nil
}

// csLen converts a CompactSize-decoded length to int, bounded by the
// buffer it will be read from.
func csLen(v uint64, b []byte, name string) (int, error) {
	if v > uint64(len(b)) {
		return 0, Err(TX_ERR_PARSE, name+" overflows input")
	}
	return int(v), nil
}
